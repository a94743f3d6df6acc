// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-seed-api/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "currentUser", CurrentUserCtxKey.String())
}

func TestGetCurrentUserFromContext_Success(t *testing.T) {
	user := models.User{ID: "0190c8a0-0000-7000-8000-000000000001", Email: "a@x.com"}
	ctx := WithCurrentUser(context.Background(), user)

	got, ok := GetCurrentUserFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestGetCurrentUserFromContext_Missing(t *testing.T) {
	got, ok := GetCurrentUserFromContext(context.Background())

	assert.False(t, ok)
	assert.Equal(t, models.User{}, got)
}

func TestGetCurrentUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), CurrentUserCtxKey, "not-a-user")

	_, ok := GetCurrentUserFromContext(ctx)

	assert.False(t, ok)
}

func TestGetCurrentUserFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.User{Email: "a@x.com"})

	_, ok := GetCurrentUserFromContext(ctx)

	assert.False(t, ok)
}
