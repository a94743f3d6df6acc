// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
)

const mongoIDField = "_id"

// mongoDocumentStore maps collections onto MongoDB collections of one
// database. Document ids are ObjectID hex strings.
type mongoDocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// NewConnectMongo connects to MongoDB at cfg.DSN and pings the primary.
func NewConnectMongo(ctx context.Context, cfg config.DB, log *logger.Logger) (DocumentStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Name).Msg("connected to database successfully")

	return newMongoDocumentStore(client, cfg.Name, log), nil
}

func newMongoDocumentStore(client *mongo.Client, dbName string, log *logger.Logger) *mongoDocumentStore {
	return &mongoDocumentStore{
		client: client,
		db:     client.Database(dbName),
		logger: log,
	}
}

func (s *mongoDocumentStore) InsertOne(ctx context.Context, collection string, doc Document) (Document, error) {
	fields, err := normalizeFields(doc.Fields)
	if err != nil {
		return Document{}, err
	}

	oid := primitive.NewObjectID()
	if doc.ID != "" {
		if oid, err = primitive.ObjectIDFromHex(doc.ID); err != nil {
			return Document{}, ErrMalformedID
		}
	}

	body := bson.M{mongoIDField: oid}
	for k, v := range fields {
		body[k] = v
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, body); err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.InsertOne").Str("collection", collection).Msg("error inserting document")
		return Document{}, classifyMongoError(err)
	}

	return Document{ID: oid.Hex(), Fields: fields}, nil
}

func (s *mongoDocumentStore) FindOne(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Document{}, ErrMalformedID
	}

	var raw bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{mongoIDField: oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrDocumentNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.FindOne").Str("collection", collection).Msg("error finding document")
		return Document{}, classifyMongoError(err)
	}

	return fromMongoDocument(raw)
}

func (s *mongoDocumentStore) Find(ctx context.Context, collection string, anyOf ...Fields) ([]Document, error) {
	filter, err := mongoFilter(anyOf)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: mongoIDField, Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Find").Str("collection", collection).Msg("error querying documents")
		return nil, classifyMongoError(err)
	}

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Find").Str("collection", collection).Msg("error reading cursor")
		return nil, classifyMongoError(err)
	}

	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := fromMongoDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *mongoDocumentStore) UpdateOne(ctx context.Context, collection, id string, fields Fields) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrMalformedID
	}

	set, err := normalizeFields(fields)
	if err != nil {
		return false, err
	}
	delete(set, mongoIDField)

	coll := s.db.Collection(collection)
	byID := bson.M{mongoIDField: oid}

	// $set rejects an empty document
	if len(set) == 0 {
		n, err := coll.CountDocuments(ctx, byID)
		if err != nil {
			return false, classifyMongoError(err)
		}
		return n == 1, nil
	}

	res, err := coll.UpdateOne(ctx, byID, bson.M{"$set": bson.M(set)})
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.UpdateOne").Str("collection", collection).Msg("error updating document")
		return false, classifyMongoError(err)
	}

	return res.MatchedCount == 1, nil
}

func (s *mongoDocumentStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrMalformedID
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{mongoIDField: oid})
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.DeleteOne").Str("collection", collection).Msg("error deleting document")
		return false, classifyMongoError(err)
	}

	return res.DeletedCount == 1, nil
}

func (s *mongoDocumentStore) EnsureUniqueIndex(ctx context.Context, collection, field string) error {
	if !identifierPattern.MatchString(collection) || !identifierPattern.MatchString(field) {
		return fmt.Errorf("%w: %q.%q", ErrInvalidIndex, collection, field)
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(collection + "_" + field + "_key"),
	}
	if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.EnsureUniqueIndex").Str("collection", collection).Msg("error creating index")
		return classifyMongoError(err)
	}

	return nil
}

func (s *mongoDocumentStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *mongoDocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongoFilter builds {} for no filters, the filter itself for one and $or
// for several.
func mongoFilter(anyOf []Fields) (bson.M, error) {
	clauses := make([]bson.M, 0, len(anyOf))
	for _, f := range anyOf {
		normalized, err := normalizeFields(f)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, bson.M(normalized))
	}

	switch len(clauses) {
	case 0:
		return bson.M{}, nil
	case 1:
		return clauses[0], nil
	default:
		return bson.M{"$or": clauses}, nil
	}
}

func fromMongoDocument(raw bson.M) (Document, error) {
	var id string
	switch v := raw[mongoIDField].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		return Document{}, fmt.Errorf("%w: unexpected _id type %T", ErrDecodingDocument, v)
	}
	delete(raw, mongoIDField)

	fields, err := normalizeFields(Fields(raw))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return Document{ID: id, Fields: fields}, nil
}

// classifyMongoError maps driver errors onto the store taxonomy.
func classifyMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, topology.ErrServerSelectionTimeout):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
