// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
store.go - In-Memory JSON Document Store

This file implements the schemaless collection store backing the mock API.
The whole dataset is a single JSON object mapping collection names to
arrays of documents, loaded once at startup and held in memory.

Key Structures:
  - Store: Thread-safe collection store with monotonic id allocation
  - Document: Schemaless JSON object (map[string]any)

Concurrency:
  - A single RWMutex guards all collections. Reads take the read lock,
    writes the write lock. Documents returned to callers are deep copies
    so handlers can mutate them freely.

Usage:
  - CRUD handlers in internal/api/handlers.go
  - Album lookups in internal/access/rights.go
*/

package store

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/phototeka/phototeka/internal/logging"
	"github.com/phototeka/phototeka/internal/models"
)

// Document is a schemaless JSON object. The "id" field, when present, is
// normalized to int64 on load and insert.
type Document = map[string]any

// ErrNotFound is returned when a document or collection does not exist.
var ErrNotFound = fmt.Errorf("store: not found")

// Store holds every collection of the dataset in memory.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Document
	nextID      map[string]int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string][]Document),
		nextID:      make(map[string]int64),
	}
}

// Open loads a dataset from a JSON file. The file must contain a single
// object mapping collection names to arrays of documents.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read database file: %w", err)
	}

	var raw map[string][]Document
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse database file %s: %w", path, err)
	}

	s := New()
	for name, docs := range raw {
		for _, doc := range docs {
			normalizeIDs(doc)
		}
		s.collections[name] = docs
		s.nextID[name] = maxID(docs) + 1
	}

	logging.Info().
		Str("path", path).
		Int("collections", len(s.collections)).
		Msg("Database loaded")

	return s, nil
}

// Collections returns the sorted names of all collections.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the named collection exists.
func (s *Store) Has(collection string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collection]
	return ok
}

// List returns copies of all documents in a collection, optionally filtered
// by equality on the given fields. Numeric filter values compare after id
// normalization, so int64(5) matches a document loaded with id 5.
func (s *Store) List(collection string, filter map[string]any) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if matches(doc, filter) {
			out = append(out, copyDocument(doc))
		}
	}
	return out, nil
}

// Get returns a copy of the document with the given id.
func (s *Store) Get(collection string, id int64) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	for _, doc := range docs {
		if docID(doc) == id {
			return copyDocument(doc), nil
		}
	}
	return nil, ErrNotFound
}

// Insert adds a document to a collection, assigning a fresh id. The
// collection is created if it does not exist. Returns a copy of the stored
// document.
func (s *Store) Insert(collection string, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyDocument(doc)
	normalizeIDs(stored)

	next := s.nextID[collection]
	if next == 0 {
		next = maxID(s.collections[collection]) + 1
	}
	stored["id"] = next
	s.nextID[collection] = next + 1

	s.collections[collection] = append(s.collections[collection], stored)
	return copyDocument(stored), nil
}

// Replace swaps the document with the given id for a new one. The id field
// of the stored document is forced to the path id.
func (s *Store) Replace(collection string, id int64, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	for i, existing := range docs {
		if docID(existing) == id {
			stored := copyDocument(doc)
			normalizeIDs(stored)
			stored["id"] = id
			docs[i] = stored
			return copyDocument(stored), nil
		}
	}
	return nil, ErrNotFound
}

// Merge applies a partial update to the document with the given id. The id
// field cannot be changed through a merge.
func (s *Store) Merge(collection string, id int64, patch Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	for i, existing := range docs {
		if docID(existing) == id {
			merged := copyDocument(existing)
			for k, v := range patch {
				if k == "id" {
					continue
				}
				merged[k] = normalizeValue(k, v)
			}
			docs[i] = merged
			return copyDocument(merged), nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the document with the given id.
func (s *Store) Delete(collection string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	for i, existing := range docs {
		if docID(existing) == id {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Album returns the typed view of an album document. Missing albums and
// albums whose id or userId fields cannot be read both return ErrNotFound.
func (s *Store) Album(id int64) (*models.Album, error) {
	doc, err := s.Get("albums", id)
	if err != nil {
		return nil, err
	}

	al := &models.Album{ID: docID(doc)}
	if uid, ok := asInt64(doc["user_id"]); ok {
		al.UserID = uid
	}
	if title, ok := doc["title"].(string); ok {
		al.Title = title
	}
	if typ, ok := doc["type"].(string); ok {
		al.Type = models.ParseVisibility(typ)
	} else {
		al.Type = models.VisibilityPrivate
	}
	return al, nil
}

// docID extracts the normalized id of a document, or -1 when absent.
func docID(doc Document) int64 {
	if id, ok := asInt64(doc["id"]); ok {
		return id
	}
	return -1
}

func maxID(docs []Document) int64 {
	var max int64
	for _, doc := range docs {
		if id := docID(doc); id > max {
			max = id
		}
	}
	return max
}

// matches reports whether every filter field equals the document's field.
func matches(doc Document, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			return false
		}
		if wi, wok := asInt64(want); wok {
			gi, gok := asInt64(got)
			if !gok || gi != wi {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// normalizeIDs converts id-bearing fields parsed as float64 to int64 so
// comparisons behave uniformly across loaded and inserted documents.
func normalizeIDs(doc Document) {
	for k, v := range doc {
		doc[k] = normalizeValue(k, v)
	}
}

func normalizeValue(key string, v any) any {
	if !isIDField(key) {
		return v
	}
	if i, ok := asInt64(v); ok {
		return i
	}
	return v
}

func isIDField(key string) bool {
	if key == "id" {
		return true
	}
	return strings.HasSuffix(key, "_id") || strings.HasSuffix(key, "Id")
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Document:
		return copyDocument(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
