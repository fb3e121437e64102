package organization

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidKind           = errors.New("invalid unit kind")
	ErrInvalidCode           = errors.New("invalid code")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidDivision       = errors.New("division reference is allowed for positions only")

	ErrUnitNotFound     = errors.New("unit not found")
	ErrParentNotFound   = errors.New("parent unit not found")
	ErrDivisionNotFound = errors.New("division not found")
	ErrUnitCycle        = errors.New("unit hierarchy cycle")
	ErrConflict         = errors.New("resource already exists")
)
