package store

import (
	"database/sql"

	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/migrations"
)

// ErrorClassificator translates a driver error into the store's error
// taxonomy ([ErrDuplicateKey], [ErrStoreUnavailable] or [ErrExecutingQuery]),
// keeping the original error in the chain.
type ErrorClassificator interface {
	Classify(err error) error
}

// DB is an open SQL connection pool together with the dialect it speaks.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the dialect's embedded migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.migrationDialect())
}

func (db *DB) classify(err error) error {
	return db.errorClassificator.Classify(err)
}
