// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries: handlers
// render [UserPublic] instead.
type User struct {
	// ID is the store-assigned identifier in its string form.
	ID string `json:"id,omitempty"`

	// Email is the unique login identifier and the subject of issued tokens.
	Email string `json:"email"`

	// Username is an optional display handle. Uniqueness is enforced by the
	// service layer, not by the store.
	Username string `json:"username,omitempty"`

	// Password stores the Argon2id PHC hash of the user's password.
	// This value MUST be a derived value, never plaintext.
	Password string `json:"password"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last successful update.
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the externally visible projection of the user.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserPublic is the user representation returned by the HTTP API.
type UserPublic struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// UserRegistration is the payload accepted when a new account is created.
type UserRegistration struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

// UserPatch describes a partial user update.
// Only non-nil fields will be written.
type UserPatch struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=256"`

	// UpdatedAt is set by the service layer and ignored in requests.
	UpdatedAt *time.Time `json:"updated_at,omitempty" validate:"-"`
}

// IsEmpty reports whether the patch carries no client-supplied field.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Username == nil && p.Password == nil
}

// Credentials holds the login form values. Username carries the email
// address, following the OAuth2 password form convention.
type Credentials struct {
	Username string
	Password string
}
