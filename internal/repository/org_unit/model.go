package org_unit

import "time"

type OrgUnitDB struct {
	ID          int64
	Code        string
	Name        string
	Description string
	ParentID    *int64
	DivisionID  *int64
	Level       int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrgUnitModifyDB struct {
	ID          *int64
	Code        *string
	Name        *string
	Description *string
	ParentID    *int64
	ClearParent bool
	DivisionID  *int64
	Level       *int
	Status      *string
}
