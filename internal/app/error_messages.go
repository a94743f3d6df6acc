// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-seed-api server handlers and middleware.
//
// All Msg* constants are human-readable messages written into the "detail"
// field of HTTP error bodies. Keeping them in one place ensures consistent
// wording throughout the API.
package app

const (
	// MsgItemNotFound is returned when no item carries the requested id.
	MsgItemNotFound = "Item not found"

	// MsgUserNotFound is returned when no user carries the requested id.
	MsgUserNotFound = "User not found"

	// MsgNotFound is returned for unknown paths and unsupported methods.
	MsgNotFound = "Not Found"

	// MsgNotAuthenticated is returned when a protected route is called
	// without a bearer token.
	MsgNotAuthenticated = "Not authenticated"

	// MsgCouldNotValidateCredentials is returned when the bearer token is
	// malformed, expired, or names an unknown user.
	MsgCouldNotValidateCredentials = "Could not validate credentials"

	// MsgNotEnoughPermissions is returned when a user modifies another
	// user's account.
	MsgNotEnoughPermissions = "Not enough permissions"

	// MsgIncorrectEmailOrPassword is returned by the token endpoint for an
	// unknown email or a wrong password.
	MsgIncorrectEmailOrPassword = "Incorrect email or password"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidForm is returned when the login form is missing or blank.
	MsgInvalidForm = "Invalid form data"

	// MsgInvalidGzip is returned when a gzip-encoded body cannot be read.
	MsgInvalidGzip = "Invalid gzip data"

	// MsgInvalidDataProvided is returned when a payload fails validation
	// without field-level details.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgTooManyRequests is returned when the login rate limit is exceeded.
	MsgTooManyRequests = "Too many requests"

	// MsgServiceUnavailable is returned when the document store cannot be
	// reached.
	MsgServiceUnavailable = "Service unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"
)
