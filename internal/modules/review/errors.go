package review

import "errors"

var (
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrNotEligible     = errors.New("session not eligible for review")
	ErrAlreadyReviewed = errors.New("session already reviewed")
)
