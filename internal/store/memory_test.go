package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	doc, err := s.InsertOne(ctx, ItemCollection, Document{Fields: Fields{"name": "apple", "number": 3}})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)
	assert.Equal(t, json.Number("3"), doc.Fields["number"])

	got, err := s.FindOne(ctx, ItemCollection, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	matched, err := s.UpdateOne(ctx, ItemCollection, doc.ID, Fields{"name": "pear"})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err = s.FindOne(ctx, ItemCollection, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, Fields{"name": "pear", "number": json.Number("3")}, got.Fields)

	deleted, err := s.DeleteOne(ctx, ItemCollection, doc.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.FindOne(ctx, ItemCollection, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMemoryDocumentStore_MissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	_, err := s.FindOne(ctx, ItemCollection, "42")
	assert.ErrorIs(t, err, ErrMalformedID)

	_, err = s.FindOne(ctx, ItemCollection, testUUID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	matched, err := s.UpdateOne(ctx, ItemCollection, testUUID, Fields{"name": "x"})
	require.NoError(t, err)
	assert.False(t, matched)

	deleted, err := s.DeleteOne(ctx, ItemCollection, testUUID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.DeleteOne(ctx, ItemCollection, "not-an-id")
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestMemoryDocumentStore_FindAnyOf(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	a, _ := s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "a@x.io", "username": "alice"}})
	b, _ := s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "b@x.io"}})
	_, _ = s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "c@x.io", "username": "carol"}})

	all, err := s.Find(ctx, UserCollection)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := s.Find(ctx, UserCollection, Fields{"username": "alice"}, Fields{"email": "b@x.io"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, a.ID, found[0].ID)
	assert.Equal(t, b.ID, found[1].ID)

	both, err := s.Find(ctx, UserCollection, Fields{"username": "alice", "email": "b@x.io"})
	require.NoError(t, err)
	assert.Empty(t, both)

	missing, err := s.Find(ctx, "nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestMemoryDocumentStore_UniqueIndex(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	require.NoError(t, s.EnsureUniqueIndex(ctx, UserCollection, "email"))

	first, err := s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "a@x.io"}})
	require.NoError(t, err)

	_, err = s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "a@x.io"}})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	second, err := s.InsertOne(ctx, UserCollection, Document{Fields: Fields{"email": "b@x.io"}})
	require.NoError(t, err)

	_, err = s.UpdateOne(ctx, UserCollection, second.ID, Fields{"email": "a@x.io"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// rewriting its own value is not a conflict
	matched, err := s.UpdateOne(ctx, UserCollection, first.ID, Fields{"email": "a@x.io"})
	require.NoError(t, err)
	assert.True(t, matched)

	assert.ErrorIs(t, s.EnsureUniqueIndex(ctx, UserCollection, "bad field"), ErrInvalidIndex)
}

func TestMemoryDocumentStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	doc, err := s.InsertOne(ctx, ItemCollection, Document{Fields: Fields{"name": "apple"}})
	require.NoError(t, err)

	doc.Fields["name"] = "mutated"

	got, err := s.FindOne(ctx, ItemCollection, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple", got.Fields["name"])
}

func TestMemoryDocumentStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InsertOne(ctx, ItemCollection, Document{Fields: Fields{"name": "x"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.Find(ctx, ItemCollection)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
