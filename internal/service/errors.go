package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNotFound            = errors.New("record not found")

	// ErrConflict is matched by every [ConflictError].
	ErrConflict = errors.New("conflict with an existing record")

	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not enough permissions")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenExpired        = errors.New("token is expired")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrEmptyTokenSignKey   = errors.New("token sign key is empty")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Conflicting fields reported by [ConflictError].
const (
	ConflictFieldEmail    = "email"
	ConflictFieldUsername = "username"
)

// ConflictError reports the user attribute that is already taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case ConflictFieldEmail:
		return "Email already exists"
	case ConflictFieldUsername:
		return "Username already exists"
	default:
		return fmt.Sprintf("%s already exists", e.Field)
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
