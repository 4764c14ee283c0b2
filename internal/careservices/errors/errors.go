package errors

import "errors"

var (
	ErrNotFound  = errors.New("care service not found")
	ErrInvalidID = errors.New("invalid care service ID format")
)
