package errors

import "errors"

var (
	ErrNotFound  = errors.New("shift report not found")
	ErrInvalidID = errors.New("invalid shift report ID format")
)
