package listing

import "errors"

var (
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("listing not found")
	ErrValidation          = errors.New("validation error")
	ErrInvalidPropertyType = errors.New("invalid property type")
)
