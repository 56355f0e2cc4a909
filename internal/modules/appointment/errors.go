package appointment

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("appointment not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCancellationTooLate     = errors.New("cancellation window closed")
)
