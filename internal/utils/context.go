// Package utils provides general-purpose helper utilities used across the
// application: typed context keys, HTTP response writing and request
// decoding, HTTP client initialization and UUID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-seed-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// CurrentUserCtxKey is the key under which the authenticated user is stored
// in the request context.
var CurrentUserCtxKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying user.
func WithCurrentUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, CurrentUserCtxKey, user)
}

// GetCurrentUserFromContext retrieves the authenticated user from ctx.
//
// ok is false when the value is missing or has an unexpected type.
func GetCurrentUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(models.User)
	return user, ok
}
