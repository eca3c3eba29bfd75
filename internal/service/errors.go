package service

import "errors"

// Sentinel errors the handlers translate into HTTP status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("quote source unavailable")
)
