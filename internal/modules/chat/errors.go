package chat

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("appointment not found")
	ErrForbidden  = errors.New("forbidden")
)
