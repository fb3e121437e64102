package shipment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"samudra/internal/entities"
)

const maxNameLength = 255

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validateCreate(create entities.ShipmentCreate) error {
	if isBlank(create.SenderName) ||
		isBlank(create.ReceiverName) ||
		isBlank(create.OriginArea) ||
		isBlank(create.DestinationArea) ||
		create.ServiceType == nil ||
		len(create.Items) == 0 {
		return ErrMissingRequiredFields
	}

	if utf8.RuneCountInString(*create.SenderName) > maxNameLength {
		return fmt.Errorf("%w: sender name is too long", ErrInvalidName)
	}
	if utf8.RuneCountInString(*create.ReceiverName) > maxNameLength {
		return fmt.Errorf("%w: receiver name is too long", ErrInvalidName)
	}
	if !create.ServiceType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidServiceType, *create.ServiceType)
	}
	return nil
}

func validateStatusChange(change entities.StatusChange) error {
	if strings.TrimSpace(change.Waybill) == "" || change.Status == "" {
		return ErrMissingRequiredFields
	}
	if !change.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, change.Status)
	}
	return nil
}
