package session

import "errors"

var (
	ErrNotFound                = errors.New("not_found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
)
