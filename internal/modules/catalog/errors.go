package catalog

import "errors"

var (
	ErrNotFound   = errors.New("not_found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
)
