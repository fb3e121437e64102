package tracking

import "errors"

var (
	ErrInvalidEvent  = errors.New("invalid tracking event")
	ErrUndefinedCode = errors.New("undefined tracking code")
)
