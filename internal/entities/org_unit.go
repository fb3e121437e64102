package entities

import "time"

type OrgUnitKind string

const (
	KindDivision OrgUnitKind = "division"
	KindPosition OrgUnitKind = "position"
)

func (k OrgUnitKind) String() string {
	return string(k)
}

type OrgUnitStatus string

const (
	OrgUnitActive   OrgUnitStatus = "active"
	OrgUnitInactive OrgUnitStatus = "inactive"
)

const DefaultOrgUnitStatus = OrgUnitActive

func (s OrgUnitStatus) String() string {
	return string(s)
}

// OrgUnit is a division or a position. Both form self-referential trees.
type OrgUnit struct {
	ID          int64
	Kind        OrgUnitKind
	Code        string
	Name        string
	Description string
	ParentID    *int64
	DivisionID  *int64 // только для должностей
	Level       int
	Status      OrgUnitStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u OrgUnit) NodeID() int64 {
	return u.ID
}

func (u OrgUnit) NodeParentID() *int64 {
	return u.ParentID
}

type OrgUnitModify struct {
	ID          *int64
	Kind        OrgUnitKind
	Code        *string
	Name        *string
	Description *string
	ParentID    *int64
	ClearParent bool
	DivisionID  *int64
	Level       *int
	Status      *OrgUnitStatus
}

type OrgUnitTree struct {
	Unit     OrgUnit
	Children []OrgUnitTree
}

func (k OrgUnitKind) IsValid() bool {
	return k == KindDivision || k == KindPosition
}

func (s OrgUnitStatus) IsValid() bool {
	return s == OrgUnitActive || s == OrgUnitInactive
}
