package apperrors

import "errors"

// Sentinel errors. Everything the handlers translate to an HTTP status
// wraps one of these.
var (
	ErrValidation    = errors.New("invalid request")
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("missing configuration")
	ErrProvider      = errors.New("provider failure")
	ErrStorage       = errors.New("storage failure")
	ErrQuotaExceeded = errors.New("free request limit reached")
)
