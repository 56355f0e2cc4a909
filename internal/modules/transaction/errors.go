package transaction

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("transaction not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrTransactionExists       = errors.New("transaction already exists for appointment")
)
