package domain

import "errors"

// Error taxonomy shared across services. Handlers translate these to HTTP
// outcomes; the webhook path collapses everything to a failure redirect.
var (
	ErrNotFound         = errors.New("not found")
	ErrExpired          = errors.New("token has expired")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUpstreamRejected = errors.New("gateway rejected verification")
	ErrForbidden        = errors.New("forbidden")
)
