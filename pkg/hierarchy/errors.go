package hierarchy

import "errors"

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrCycle        = errors.New("cycle detected")
)
