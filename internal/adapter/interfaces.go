// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport for the go-seed-api
// server.
//
// The primary abstraction is [ServerAdapter], which hides the REST protocol
// from the client CLI. Error values defined in errors.go are mapped from HTTP
// status codes by mapHTTPError so that callers can use [errors.Is]
// (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-seed-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines communication with the go-seed-api server.
// Implementations are responsible for serialisation, bearer header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Login exchanges email and password for a bearer token and stores it
	// via SetToken.
	Login(ctx context.Context, email, password string) (models.TokenResponse, error)

	CreateUser(ctx context.Context, registration models.UserRegistration) (models.UserPublic, error)
	GetUser(ctx context.Context, id string) (models.UserPublic, error)
	ListUsers(ctx context.Context) ([]models.UserPublic, error)

	// CurrentUser returns the account the stored token belongs to.
	CurrentUser(ctx context.Context) (models.UserPublic, error)

	// UpdateUser and DeleteUser require a token issued to the same user.
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.UserPublic, error)
	DeleteUser(ctx context.Context, id string) error

	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)
}
