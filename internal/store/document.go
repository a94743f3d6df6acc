// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
)

// Collection names.
const (
	UserCollection = "user"
	ItemCollection = "item"
)

// idField is the record attribute carrying the document id.
const idField = "id"

// Fields is a flat set of document attributes keyed by their JSON names.
type Fields map[string]any

// Document is a stored record: its id plus every other attribute.
type Document struct {
	ID     string
	Fields Fields
}

// NewDocumentStore connects the driver selected by the scheme of cfg.DSN:
//
//	mongodb://, mongodb+srv://  MongoDB
//	postgres://, postgresql://  PostgreSQL (jsonb documents table)
//	sqlite://<path>, file:      SQLite (json1 documents table)
//	memory://                   in-process maps
//
// SQL drivers are migrated before being returned.
func NewDocumentStore(ctx context.Context, cfg config.DB, log *logger.Logger) (DocumentStore, error) {
	u, err := url.Parse(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDSN, err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return NewConnectMongo(ctx, cfg, log)
	case "postgres", "postgresql":
		db, err := NewConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return migratedSQLStore(db, log)
	case "sqlite", "file":
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return migratedSQLStore(db, log)
	case "memory":
		log.Info().Str("func", "NewDocumentStore").Msg("using in-memory document store")
		return NewMemoryDocumentStore(), nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, u.Scheme)
	}
}

func migratedSQLStore(db *DB, log *logger.Logger) (DocumentStore, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "migratedSQLStore").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return NewSQLDocumentStore(db), nil
}
