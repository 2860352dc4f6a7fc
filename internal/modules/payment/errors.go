package payment

import "errors"

var (
	ErrNotFound         = errors.New("payment not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid payment state")
	ErrInvalidSignature = errors.New("invalid signature")
)
