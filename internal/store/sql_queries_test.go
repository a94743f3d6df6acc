package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertDocumentQuery(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect
		want    string
	}{
		{"postgres", postgresDialect{}, "INSERT INTO documents (collection,id,body) VALUES ($1,$2,$3::jsonb)"},
		{"sqlite", sqliteDialect{}, "INSERT INTO documents (collection,id,body) VALUES (?,?,json(?))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := insertDocumentQuery(tt.dialect, "item", "id-1", `{"name":"a"}`)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{"item", "id-1", `{"name":"a"}`}, args)
		})
	}
}

func TestFindDocumentQuery(t *testing.T) {
	query, args, err := findDocumentQuery(postgresDialect{}, "user", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, body FROM documents WHERE collection = $1 AND id = $2", query)
	assert.Equal(t, []any{"user", "id-1"}, args)
}

func TestFindDocumentsQuery_Postgres(t *testing.T) {
	t.Run("whole collection", func(t *testing.T) {
		query, args, err := findDocumentsQuery(postgresDialect{}, "item", nil)
		require.NoError(t, err)
		assert.Equal(t, "SELECT id, body FROM documents WHERE collection = $1 ORDER BY created_at, id", query)
		assert.Equal(t, []any{"item"}, args)
	})

	t.Run("any of two filters", func(t *testing.T) {
		query, args, err := findDocumentsQuery(postgresDialect{}, "user", []Fields{
			{"email": "a@b.c"},
			{"username": "neo"},
		})
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT id, body FROM documents WHERE collection = $1 AND (body @> $2::jsonb OR body @> $3::jsonb) ORDER BY created_at, id",
			query)
		assert.Equal(t, []any{"user", `{"email":"a@b.c"}`, `{"username":"neo"}`}, args)
	})
}

func TestFindDocumentsQuery_SQLite(t *testing.T) {
	query, args, err := findDocumentsQuery(sqliteDialect{}, "user", []Fields{
		{"username": "neo", "email": "a@b.c"},
		{"username": nil},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "json_extract(body, ?) = ?")
	assert.Contains(t, query, "json_extract(body, ?) IS NULL")
	assert.Contains(t, query, " OR ")
	assert.Equal(t, []any{"user", `$."email"`, "a@b.c", `$."username"`, "neo", `$."username"`}, args)
}

func TestSQLiteMatchFields_EmptyMatchesAll(t *testing.T) {
	cond, err := sqliteDialect{}.matchFields(Fields{})
	require.NoError(t, err)

	query, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "1 = 1", query)
	assert.Empty(t, args)
}

func TestSQLiteMatchFields_NestedValue(t *testing.T) {
	cond, err := sqliteDialect{}.matchFields(Fields{"tags": []any{"a", "b"}})
	require.NoError(t, err)

	query, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "json_extract(body, ?) = json(?)")
	assert.Equal(t, []any{`$."tags"`, `["a","b"]`}, args)
}

func TestUpdateDocumentQuery(t *testing.T) {
	query, args, err := updateDocumentQuery(postgresDialect{}, "item", "id-1", `{"name":"b"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE documents SET body = body || $1::jsonb, updated_at = NOW() WHERE collection = $2 AND id = $3",
		query)
	assert.Equal(t, []any{`{"name":"b"}`, "item", "id-1"}, args)

	query, _, err = updateDocumentQuery(sqliteDialect{}, "item", "id-1", `{"name":"b"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE documents SET body = json_patch(body, ?), updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?",
		query)
}

func TestDeleteDocumentQuery(t *testing.T) {
	query, args, err := deleteDocumentQuery(sqliteDialect{}, "item", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM documents WHERE collection = ? AND id = ?", query)
	assert.Equal(t, []any{"item", "id-1"}, args)
}

func TestUniqueIndexQuery(t *testing.T) {
	query, err := uniqueIndexQuery(postgresDialect{}, "user", "email")
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE UNIQUE INDEX IF NOT EXISTS documents_user_email_key ON documents ((body->>'email')) WHERE collection = 'user'",
		query)

	query, err = uniqueIndexQuery(sqliteDialect{}, "user", "email")
	require.NoError(t, err)
	assert.Contains(t, query, "json_extract(body, '$.email')")

	_, err = uniqueIndexQuery(postgresDialect{}, "user", "email'); DROP TABLE documents; --")
	assert.True(t, errors.Is(err, ErrInvalidIndex))
}
