// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-seed-api/internal/logger"
)

// Gateway is the generic persistence gateway over one collection.
//
// R is the record shape and P the patch shape. Both are converted to and
// from document fields through their JSON tags; the record's "id" attribute
// maps onto the document id. An unknown or malformed id is reported as
// absent rather than as an error, so callers only see errors for genuine
// store failures.
type Gateway[R any, P any] struct {
	collection string
	documents  DocumentStore
}

// NewGateway binds a gateway to collection of documents.
func NewGateway[R any, P any](documents DocumentStore, collection string) *Gateway[R, P] {
	return &Gateway[R, P]{
		collection: collection,
		documents:  documents,
	}
}

// Create stores record and returns it as stored, with its assigned id.
func (g *Gateway[R, P]) Create(ctx context.Context, record R) (R, error) {
	log := logger.FromContext(ctx)
	var zero R

	doc, err := toDocument(record)
	if err != nil {
		log.Err(err).Str("func", "*Gateway.Create").Str("collection", g.collection).Msg("error encoding record")
		return zero, err
	}

	stored, err := g.documents.InsertOne(ctx, g.collection, doc)
	if err != nil {
		log.Err(err).Str("func", "*Gateway.Create").Str("collection", g.collection).Msg("error inserting record")
		return zero, err
	}

	return fromDocument[R](stored)
}

// GetByID returns the record with id. found is false for an unknown or
// malformed id.
func (g *Gateway[R, P]) GetByID(ctx context.Context, id string) (R, bool, error) {
	log := logger.FromContext(ctx)
	var zero R

	doc, err := g.documents.FindOne(ctx, g.collection, id)
	if isAbsent(err) {
		return zero, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*Gateway.GetByID").Str("collection", g.collection).Msg("error finding record")
		return zero, false, err
	}

	record, err := fromDocument[R](doc)
	if err != nil {
		return zero, false, err
	}

	return record, true, nil
}

// GetAll returns every record of the collection. Order is unspecified.
func (g *Gateway[R, P]) GetAll(ctx context.Context) ([]R, error) {
	log := logger.FromContext(ctx)

	docs, err := g.documents.Find(ctx, g.collection)
	if err != nil {
		log.Err(err).Str("func", "*Gateway.GetAll").Str("collection", g.collection).Msg("error listing records")
		return nil, err
	}

	return fromDocuments[R](docs)
}

// Update writes the fields present in patch to the record with id and
// returns the refreshed record. found is false when nothing matched. An
// empty patch writes nothing and returns the current record.
func (g *Gateway[R, P]) Update(ctx context.Context, id string, patch P) (R, bool, error) {
	log := logger.FromContext(ctx)
	var zero R

	fields, err := encodeFields(patch)
	if err != nil {
		log.Err(err).Str("func", "*Gateway.Update").Str("collection", g.collection).Msg("error encoding patch")
		return zero, false, err
	}
	delete(fields, idField)

	if len(fields) == 0 {
		return g.GetByID(ctx, id)
	}

	matched, err := g.documents.UpdateOne(ctx, g.collection, id, fields)
	if isAbsent(err) {
		return zero, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*Gateway.Update").Str("collection", g.collection).Msg("error updating record")
		return zero, false, err
	}
	if !matched {
		return zero, false, nil
	}

	return g.GetByID(ctx, id)
}

// Delete removes the record with id and reports whether exactly one record
// was removed.
func (g *Gateway[R, P]) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx)

	deleted, err := g.documents.DeleteOne(ctx, g.collection, id)
	if isAbsent(err) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*Gateway.Delete").Str("collection", g.collection).Msg("error deleting record")
		return false, err
	}

	return deleted, nil
}

// GetByAttribute returns the records matching ANY of filters. An empty
// filter list matches nothing.
func (g *Gateway[R, P]) GetByAttribute(ctx context.Context, filters ...Fields) ([]R, error) {
	log := logger.FromContext(ctx)

	if len(filters) == 0 {
		return []R{}, nil
	}

	docs, err := g.documents.Find(ctx, g.collection, filters...)
	if err != nil {
		log.Err(err).Str("func", "*Gateway.GetByAttribute").Str("collection", g.collection).Msg("error filtering records")
		return nil, err
	}

	return fromDocuments[R](docs)
}

func fromDocuments[R any](docs []Document) ([]R, error) {
	records := make([]R, 0, len(docs))
	for _, doc := range docs {
		record, err := fromDocument[R](doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func isAbsent(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrMalformedID)
}
