package org_unit

import (
	"samudra/internal/entities"
)

func ToDomain(kind entities.OrgUnitKind, u *OrgUnitDB) *entities.OrgUnit {
	if u == nil {
		return nil
	}

	return &entities.OrgUnit{
		ID:          u.ID,
		Kind:        kind,
		Code:        u.Code,
		Name:        u.Name,
		Description: u.Description,
		ParentID:    u.ParentID,
		DivisionID:  u.DivisionID,
		Level:       u.Level,
		Status:      entities.OrgUnitStatus(u.Status),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromDomainModify(unitModify *entities.OrgUnitModify) *OrgUnitModifyDB {
	if unitModify == nil {
		return nil
	}

	unitDB := &OrgUnitModifyDB{
		ID:          unitModify.ID,
		Code:        unitModify.Code,
		Name:        unitModify.Name,
		Description: unitModify.Description,
		ParentID:    unitModify.ParentID,
		ClearParent: unitModify.ClearParent,
		Level:       unitModify.Level,
	}
	if unitModify.Kind == entities.KindPosition {
		unitDB.DivisionID = unitModify.DivisionID
	}
	if unitModify.Status != nil {
		status := unitModify.Status.String()
		unitDB.Status = &status
	}

	return unitDB
}

func ToDomainList(kind entities.OrgUnitKind, unitsDB []OrgUnitDB) []entities.OrgUnit {
	if len(unitsDB) == 0 {
		return []entities.OrgUnit{}
	}

	result := make([]entities.OrgUnit, len(unitsDB))
	for i, unitDB := range unitsDB {
		result[i] = *ToDomain(kind, &unitDB)
	}
	return result
}
