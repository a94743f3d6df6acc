// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the token_type reported alongside every issued token.
const TokenTypeBearer = "bearer"

// Token is a session token issued at login.
//
// It embeds [jwt.RegisteredClaims] so the same value serves as the claim set
// while signing and parsing. The "sub" claim carries the user's email.
// Tokens are never persisted.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, iss) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
