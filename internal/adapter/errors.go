package adapter

import "errors"

// Sentinel errors mapped from server responses.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrNoToken is returned before sending an authenticated request when no
	// token was stored.
	ErrNoToken = errors.New("no bearer token, log in first")

	ErrEmptyAddress = errors.New("empty address")
)
