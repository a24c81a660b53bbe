// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
handlers.go - Generic Resource Handlers

Schemaless CRUD over the document store. Paths are alternating
collection/id segments:

  GET    /albums            list
  POST   /albums            create
  GET    /albums/3          read
  PUT    /albums/3          replace
  PATCH  /albums/3          merge
  DELETE /albums/3          delete

Nested paths resolve against the innermost parent pair, injecting its
foreign key into child writes and filtering child lists:

  GET  /users/1/albums            albums where user_id = 1
  POST /users/1/albums            create album with user_id forced to 1
  GET  /users/1/albums/3/photos   photos where album_id = 3

List endpoints also honor equality filters from the query string.
*/

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/phototeka/phototeka/internal/store"
)

// parentKeys maps a parent collection to the foreign key its children
// carry.
var parentKeys = map[string]string{
	"users":  "user_id",
	"albums": "album_id",
	"photos": "photo_id",
}

// Handler serves the generic resource routes.
type Handler struct {
	db *store.Store
}

// NewHandler creates a resource handler over the given store.
func NewHandler(db *store.Store) *Handler {
	return &Handler{db: db}
}

// Root lists the collections and their document counts.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	for _, name := range h.db.Collections() {
		docs, err := h.db.List(name, nil)
		if err != nil {
			continue
		}
		counts[name] = len(docs)
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"collections": counts})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// target is a parsed resource path.
type target struct {
	collection string
	id         int64
	hasID      bool

	// innermost parent pair preceding the collection segment
	fkKey string
	fkVal int64
}

// parseTarget resolves a resource path into its target. It fails when the
// collection does not exist, an id segment is not numeric, or a nested
// parent has no known foreign key.
func (h *Handler) parseTarget(path string) (target, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return target{}, false
	}

	var t target
	ci := len(segs) - 1
	if len(segs)%2 == 0 {
		ci = len(segs) - 2
		id, err := strconv.ParseInt(segs[len(segs)-1], 10, 64)
		if err != nil {
			return target{}, false
		}
		t.id = id
		t.hasID = true
	}
	t.collection = segs[ci]
	if !h.db.Has(t.collection) {
		return target{}, false
	}

	if ci >= 2 {
		parent, pid := segs[ci-2], segs[ci-1]
		key, ok := parentKeys[parent]
		if !ok {
			return target{}, false
		}
		val, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return target{}, false
		}
		t.fkKey = key
		t.fkVal = val
	}
	return t, true
}

// Resources is the catch-all handler for collection and document routes.
func (h *Handler) Resources(w http.ResponseWriter, r *http.Request) {
	t, ok := h.parseTarget(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "")
		return
	}

	if t.hasID {
		h.document(w, r, t)
		return
	}
	h.collection(w, r, t)
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request, t target) {
	switch r.Method {
	case http.MethodGet:
		filter := queryFilter(r)
		if t.fkKey != "" {
			filter[t.fkKey] = t.fkVal
		}
		docs, err := h.db.List(t.collection, filter)
		if err != nil {
			writeError(w, r, http.StatusNotFound, "")
			return
		}
		writeJSON(w, r, http.StatusOK, docs)

	case http.MethodPost:
		doc, err := decodeBody(r)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if t.fkKey != "" {
			doc[t.fkKey] = t.fkVal
		}
		created, err := h.db.Insert(t.collection, doc)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "")
			return
		}
		writeJSON(w, r, http.StatusCreated, created)

	default:
		writeError(w, r, http.StatusMethodNotAllowed, "")
	}
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request, t target) {
	var (
		doc store.Document
		err error
	)

	switch r.Method {
	case http.MethodGet:
		doc, err = h.db.Get(t.collection, t.id)

	case http.MethodPut:
		doc, err = decodeBody(r)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if t.fkKey != "" {
			doc[t.fkKey] = t.fkVal
		}
		doc, err = h.db.Replace(t.collection, t.id, doc)

	case http.MethodPatch:
		doc, err = decodeBody(r)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if t.fkKey != "" {
			doc[t.fkKey] = t.fkVal
		}
		doc, err = h.db.Merge(t.collection, t.id, doc)

	case http.MethodDelete:
		if err = h.db.Delete(t.collection, t.id); err == nil {
			doc = store.Document{}
		}

	default:
		writeError(w, r, http.StatusMethodNotAllowed, "")
		return
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

// decodeBody parses the request body as a JSON object. An empty body is an
// empty document.
func decodeBody(r *http.Request) (store.Document, error) {
	doc := store.Document{}
	if r.Body == nil {
		return doc, nil
	}
	err := json.NewDecoder(r.Body).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return doc, nil
}

// queryFilter builds an equality filter from the query string. Numeric
// values compare as integers; parameters starting with an underscore are
// reserved and skipped.
func queryFilter(r *http.Request) map[string]any {
	filter := make(map[string]any)
	for key, vals := range r.URL.Query() {
		if len(vals) == 0 || strings.HasPrefix(key, "_") {
			continue
		}
		if n, err := strconv.ParseInt(vals[0], 10, 64); err == nil {
			filter[key] = n
			continue
		}
		filter[key] = vals[0]
	}
	return filter
}
