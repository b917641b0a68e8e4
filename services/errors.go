package services

import "errors"

// Domain error taxonomy. Controllers map these onto HTTP status codes;
// anything not in this list is treated as an internal failure.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("operation not permitted")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)
