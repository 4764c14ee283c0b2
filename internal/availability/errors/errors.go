package errors

import "errors"

var (
	ErrNotFound  = errors.New("carer day not found")
	ErrInvalidID = errors.New("invalid carer day ID format")
)
