package profile

import "errors"

var (
	ErrNotFound  = errors.New("mentor profile not found")
	ErrForbidden = errors.New("forbidden")
)
