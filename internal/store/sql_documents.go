// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/utils"
)

// sqlDocumentStore keeps documents as JSON bodies in the "documents" table,
// keyed by (collection, id). Ids are UUIDv7 strings.
type sqlDocumentStore struct {
	db  *DB
	ids *utils.UUIDGenerator
}

// NewSQLDocumentStore wraps a connected and migrated [DB] as a [DocumentStore].
func NewSQLDocumentStore(db *DB) DocumentStore {
	return &sqlDocumentStore{
		db:  db,
		ids: utils.NewUUIDGenerator(),
	}
}

func (s *sqlDocumentStore) InsertOne(ctx context.Context, collection string, doc Document) (Document, error) {
	log := logger.FromContext(ctx)

	id := doc.ID
	if id == "" {
		id = s.ids.Generate()
	} else if !utils.IsValidUUID(id) {
		return Document{}, ErrMalformedID
	}

	fields := doc.Fields
	if fields == nil {
		fields = Fields{}
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := insertDocumentQuery(s.db.dialect, collection, id, string(body))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.InsertOne").Str("sqlstate", postgresError(err)).Msg("error inserting document")
		return Document{}, s.db.classify(err)
	}

	return Document{ID: id, Fields: fields}, nil
}

func (s *sqlDocumentStore) FindOne(ctx context.Context, collection, id string) (Document, error) {
	log := logger.FromContext(ctx)

	if !utils.IsValidUUID(id) {
		return Document{}, ErrMalformedID
	}

	query, args, err := findDocumentQuery(s.db.dialect, collection, id)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrDocumentNotFound
	}
	if errors.Is(err, ErrDecodingDocument) {
		return Document{}, err
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.FindOne").Msg("error finding document")
		return Document{}, s.db.classify(err)
	}

	return doc, nil
}

func (s *sqlDocumentStore) Find(ctx context.Context, collection string, anyOf ...Fields) ([]Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := findDocumentsQuery(s.db.dialect, collection, anyOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.Find").Msg("error querying documents")
		return nil, s.db.classify(err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			log.Err(err).Str("func", "*sqlDocumentStore.Find").Msg("error scanning document")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.Find").Msg("error iterating documents")
		return nil, s.db.classify(err)
	}

	return docs, nil
}

func (s *sqlDocumentStore) UpdateOne(ctx context.Context, collection, id string, fields Fields) (bool, error) {
	log := logger.FromContext(ctx)

	if !utils.IsValidUUID(id) {
		return false, ErrMalformedID
	}

	if fields == nil {
		fields = Fields{}
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := updateDocumentQuery(s.db.dialect, collection, id, string(patch))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.UpdateOne").Str("sqlstate", postgresError(err)).Msg("error updating document")
		return false, s.db.classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, s.db.classify(err)
	}

	return affected == 1, nil
}

func (s *sqlDocumentStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	log := logger.FromContext(ctx)

	if !utils.IsValidUUID(id) {
		return false, ErrMalformedID
	}

	query, args, err := deleteDocumentQuery(s.db.dialect, collection, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlDocumentStore.DeleteOne").Msg("error deleting document")
		return false, s.db.classify(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, s.db.classify(err)
	}

	return affected == 1, nil
}

func (s *sqlDocumentStore) EnsureUniqueIndex(ctx context.Context, collection, field string) error {
	query, err := uniqueIndexQuery(s.db.dialect, collection, field)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlDocumentStore.EnsureUniqueIndex").Msg("error creating unique index")
		return s.db.classify(err)
	}

	return nil
}

func (s *sqlDocumentStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *sqlDocumentStore) Close(_ context.Context) error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		id   string
		body []byte
	)
	if err := row.Scan(&id, &body); err != nil {
		return Document{}, err
	}

	fields := Fields{}
	if err := decodeJSON(body, &fields); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return Document{ID: id, Fields: fields}, nil
}
