package crypto

import "errors"

var (
	// ErrInvalidHash is returned when an encoded hash cannot be parsed or
	// carries unsupported parameters.
	ErrInvalidHash = errors.New("invalid argon2id hash")
	// ErrEmptyPassword is returned when an empty password is hashed.
	ErrEmptyPassword = errors.New("password is empty")
	// ErrInvalidParams is returned when the configured cost parameters are
	// unusable.
	ErrInvalidParams = errors.New("invalid argon2id parameters")
)
