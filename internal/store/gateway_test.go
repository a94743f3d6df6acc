package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

func ptr[T any](v T) *T { return &v }

func TestItemRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(NewMemoryDocumentStore(), logger.Nop())

	created, err := repo.Create(ctx, models.Item{Name: "apple", Number: 7})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "apple", created.Name)
	assert.Equal(t, int64(7), created.Number)

	got, found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, created, got)

	updated, found, err := repo.Update(ctx, created.ID, models.ItemPatch{Name: ptr("pear")})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.Item{ID: created.ID, Name: "pear", Number: 7}, updated)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Item{updated}, all)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestItemRepository_LargeNumbersRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(NewMemoryDocumentStore(), logger.Nop())

	for _, number := range []int64{1<<53 + 1, math.MaxInt64, math.MinInt64} {
		created, err := repo.Create(ctx, models.Item{Name: "big", Number: number})
		require.NoError(t, err)
		assert.Equal(t, number, created.Number)

		got, found, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, number, got.Number)

		updated, found, err := repo.Update(ctx, created.ID, models.ItemPatch{Number: ptr(number / 3)})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, number/3, updated.Number)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGateway_MalformedIDIsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(NewMemoryDocumentStore(), logger.Nop())

	_, found, err := repo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = repo.Update(ctx, "123", models.ItemPatch{Name: ptr("x")})
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := repo.Delete(ctx, "123")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGateway_EmptyPatchReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(NewMemoryDocumentStore(), logger.Nop())

	created, err := repo.Create(ctx, models.Item{Name: "apple"})
	require.NoError(t, err)

	got, found, err := repo.Update(ctx, created.ID, models.ItemPatch{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, created, got)

	_, found, err = repo.Update(ctx, testUUID, models.ItemPatch{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGateway_EmptyListIsNotNil(t *testing.T) {
	repo := NewItemRepository(NewMemoryDocumentStore(), logger.Nop())

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	storages := NewStoragesFrom(NewMemoryDocumentStore(), logger.Nop())
	require.NoError(t, storages.Documents.EnsureUniqueIndex(ctx, UserCollection, "email"))
	repo := storages.UserRepository

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	neo, err := repo.Create(ctx, models.User{
		Email:     "neo@matrix.io",
		Username:  "neo",
		Password:  "$argon2id$hash",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, now, neo.CreatedAt)

	_, err = repo.Create(ctx, models.User{Email: "neo@matrix.io", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	trinity, err := repo.Create(ctx, models.User{Email: "trinity@matrix.io", Password: "x"})
	require.NoError(t, err)

	byEmail, found, err := repo.FindByEmail(ctx, "trinity@matrix.io")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, trinity.ID, byEmail.ID)

	_, found, err = repo.FindByEmail(ctx, "smith@matrix.io")
	require.NoError(t, err)
	assert.False(t, found)

	matches, err := repo.GetByAttribute(ctx, Fields{"username": "neo"}, Fields{"email": "trinity@matrix.io"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	none, err := repo.GetByAttribute(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)

	later := now.Add(time.Hour)
	updated, found, err := repo.Update(ctx, neo.ID, models.UserPatch{Username: ptr("the-one"), UpdatedAt: &later})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "the-one", updated.Username)
	assert.Equal(t, "neo@matrix.io", updated.Email)
	assert.Equal(t, "$argon2id$hash", updated.Password)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, now, updated.CreatedAt)
}

func TestStoragesClose(t *testing.T) {
	storages := NewStoragesFrom(NewMemoryDocumentStore(), logger.Nop())
	assert.NoError(t, storages.Close(context.Background()))
}

func TestNewDocumentStore_Schemes(t *testing.T) {
	ctx := context.Background()

	documents, err := NewDocumentStore(ctx, configDB("memory://"), logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, documents.Ping(ctx))

	_, err = NewDocumentStore(ctx, configDB("redis://localhost:6379"), logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)

	_, err = NewDocumentStore(ctx, configDB("://bad"), logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}
