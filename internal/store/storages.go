package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
)

// Storages holds the process-wide document store and the repositories built
// on top of it.
type Storages struct {
	Documents      DocumentStore
	UserRepository UserRepository
	ItemRepository ItemRepository
}

// NewStorages connects the document store configured in cfg, ensures the
// unique index on user emails and builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	documents, err := NewDocumentStore(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting document store: %w", err)
	}

	if err := documents.EnsureUniqueIndex(ctx, UserCollection, "email"); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error creating unique email index")
		_ = documents.Close(ctx)
		return nil, fmt.Errorf("error creating unique email index: %w", err)
	}

	return NewStoragesFrom(documents, log), nil
}

// NewStoragesFrom builds the repositories over an already connected store.
func NewStoragesFrom(documents DocumentStore, log *logger.Logger) *Storages {
	return &Storages{
		Documents:      documents,
		UserRepository: NewUserRepository(documents, log),
		ItemRepository: NewItemRepository(documents, log),
	}
}

// Close releases the document store.
func (s *Storages) Close(ctx context.Context) error {
	return s.Documents.Close(ctx)
}
