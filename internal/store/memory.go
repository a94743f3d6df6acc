package store

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"

	"github.com/MKhiriev/go-seed-api/internal/utils"
)

// memoryDocumentStore keeps collections in process memory. It backs the
// memory:// DSN and the end-to-end tests.
type memoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	ids         *utils.UUIDGenerator
}

type memoryCollection struct {
	docs   map[string]Fields
	order  []string
	unique map[string]struct{}
}

// NewMemoryDocumentStore returns an empty in-memory [DocumentStore].
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{
		collections: make(map[string]*memoryCollection),
		ids:         utils.NewUUIDGenerator(),
	}
}

// collection returns the named collection, creating it. Caller holds mu.
func (s *memoryDocumentStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{
			docs:   make(map[string]Fields),
			unique: make(map[string]struct{}),
		}
		s.collections[name] = c
	}
	return c
}

func (s *memoryDocumentStore) InsertOne(_ context.Context, collection string, doc Document) (Document, error) {
	fields, err := normalizeFields(doc.Fields)
	if err != nil {
		return Document{}, err
	}

	id := doc.ID
	if id == "" {
		id = s.ids.Generate()
	} else if !utils.IsValidUUID(id) {
		return Document{}, ErrMalformedID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, exists := c.docs[id]; exists {
		return Document{}, fmt.Errorf("%w: id %s", ErrDuplicateKey, id)
	}
	if err := c.checkUnique("", fields); err != nil {
		return Document{}, err
	}

	c.docs[id] = fields
	c.order = append(c.order, id)

	return Document{ID: id, Fields: maps.Clone(fields)}, nil
}

func (s *memoryDocumentStore) FindOne(_ context.Context, collection, id string) (Document, error) {
	if !utils.IsValidUUID(id) {
		return Document{}, ErrMalformedID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}

	fields, ok := c.docs[id]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}

	return Document{ID: id, Fields: maps.Clone(fields)}, nil
}

func (s *memoryDocumentStore) Find(_ context.Context, collection string, anyOf ...Fields) ([]Document, error) {
	filters := make([]Fields, 0, len(anyOf))
	for _, f := range anyOf {
		normalized, err := normalizeFields(f)
		if err != nil {
			return nil, err
		}
		filters = append(filters, normalized)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0)
	c, ok := s.collections[collection]
	if !ok {
		return docs, nil
	}

	for _, id := range c.order {
		fields := c.docs[id]
		if len(filters) > 0 && !matchesAny(fields, filters) {
			continue
		}
		docs = append(docs, Document{ID: id, Fields: maps.Clone(fields)})
	}

	return docs, nil
}

func (s *memoryDocumentStore) UpdateOne(_ context.Context, collection, id string, fields Fields) (bool, error) {
	if !utils.IsValidUUID(id) {
		return false, ErrMalformedID
	}

	patch, err := normalizeFields(fields)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return false, nil
	}

	current, ok := c.docs[id]
	if !ok {
		return false, nil
	}

	updated := maps.Clone(current)
	maps.Copy(updated, patch)
	if err := c.checkUnique(id, updated); err != nil {
		return false, err
	}

	c.docs[id] = updated

	return true, nil
}

func (s *memoryDocumentStore) DeleteOne(_ context.Context, collection, id string) (bool, error) {
	if !utils.IsValidUUID(id) {
		return false, ErrMalformedID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return false, nil
	}

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}

	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return true, nil
}

func (s *memoryDocumentStore) EnsureUniqueIndex(_ context.Context, collection, field string) error {
	if !identifierPattern.MatchString(collection) || !identifierPattern.MatchString(field) {
		return fmt.Errorf("%w: %q.%q", ErrInvalidIndex, collection, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection(collection).unique[field] = struct{}{}

	return nil
}

func (s *memoryDocumentStore) Ping(context.Context) error { return nil }

func (s *memoryDocumentStore) Close(context.Context) error { return nil }

// checkUnique rejects fields that repeat a uniquely indexed value held by a
// document other than selfID. Documents missing the field are not indexed.
func (c *memoryCollection) checkUnique(selfID string, fields Fields) error {
	for field := range c.unique {
		value, ok := fields[field]
		if !ok {
			continue
		}
		for id, other := range c.docs {
			if id == selfID {
				continue
			}
			if otherValue, ok := other[field]; ok && reflect.DeepEqual(otherValue, value) {
				return fmt.Errorf("%w: %s", ErrDuplicateKey, field)
			}
		}
	}

	return nil
}

func matchesAny(fields Fields, filters []Fields) bool {
	for _, filter := range filters {
		if matchesAll(fields, filter) {
			return true
		}
	}
	return false
}

func matchesAll(fields, filter Fields) bool {
	for k, want := range filter {
		got, ok := fields[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
