package store

import (
	"context"

	"github.com/MKhiriev/go-seed-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentStore is the document database collaborator. Documents live in
// named collections and are addressed by a driver-assigned string id.
//
// Implementations are safe for concurrent use; one instance is shared by the
// whole process.
type DocumentStore interface {
	// InsertOne stores doc and returns it with its id. A store id is
	// generated when doc.ID is empty.
	InsertOne(ctx context.Context, collection string, doc Document) (Document, error)

	// FindOne returns the document with id, [ErrDocumentNotFound] when there
	// is none and [ErrMalformedID] when id cannot be a document id.
	FindOne(ctx context.Context, collection, id string) (Document, error)

	// Find returns the documents matching ANY of the filters. Within one
	// filter all fields must match. No filters return the whole collection.
	Find(ctx context.Context, collection string, anyOf ...Fields) ([]Document, error)

	// UpdateOne sets the given fields on the document with id and reports
	// whether a document matched, changed or not.
	UpdateOne(ctx context.Context, collection, id string, fields Fields) (bool, error)

	// DeleteOne removes the document with id and reports whether one was removed.
	DeleteOne(ctx context.Context, collection, id string) (bool, error)

	// EnsureUniqueIndex makes field unique across collection. Idempotent.
	EnsureUniqueIndex(ctx context.Context, collection, field string) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

// UserRepository persists user accounts in the "user" collection.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, bool, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByAttribute(ctx context.Context, filters ...Fields) ([]models.User, error)

	// FindByEmail returns the user whose email equals email.
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// ItemRepository persists items in the "item" collection.
type ItemRepository interface {
	Create(ctx context.Context, item models.Item) (models.Item, error)
	GetByID(ctx context.Context, id string) (models.Item, bool, error)
	GetAll(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
