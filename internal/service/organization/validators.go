package organization

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"samudra/internal/entities"
)

const (
	maxCodeLength = 50
	maxNameLength = 255
)

func isValidCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || utf8.RuneCountInString(code) > maxCodeLength {
		return false
	}
	return !strings.ContainsAny(code, " \t\n")
}

func isValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= maxNameLength
}

func validateModify(m entities.OrgUnitModify) error {
	if !m.Kind.IsValid() {
		return ErrInvalidKind
	}
	if m.Code != nil && !isValidCode(*m.Code) {
		return ErrInvalidCode
	}
	if m.Name != nil && !isValidName(*m.Name) {
		return ErrInvalidName
	}
	if m.Status != nil && !m.Status.IsValid() {
		return ErrInvalidStatus
	}
	if m.DivisionID != nil && m.Kind != entities.KindPosition {
		return ErrInvalidDivision
	}
	return nil
}

func validateCreate(m entities.OrgUnitModify) error {
	if m.Code == nil || m.Name == nil {
		return ErrMissingRequiredFields
	}
	return validateModify(m)
}

func validateUpdate(m entities.OrgUnitModify) error {
	if m.ID == nil {
		return ErrMissingRequiredFields
	}
	if m.Code == nil &&
		m.Name == nil &&
		m.Description == nil &&
		m.ParentID == nil &&
		!m.ClearParent &&
		m.DivisionID == nil &&
		m.Status == nil {
		return fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}
	if m.ParentID != nil && m.ClearParent {
		return fmt.Errorf("parent set and cleared at once: %w", ErrMissingRequiredFields)
	}
	return validateModify(m)
}
