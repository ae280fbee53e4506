package menus

import "errors"

var (
	// ErrValidation wraps every payload rejection.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an update or delete target does not exist.
	ErrNotFound = errors.New("menu not found")
)
