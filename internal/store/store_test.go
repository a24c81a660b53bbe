// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/phototeka/phototeka/internal/models"
)

const testDB = `{
  "users": [
    {"id": 1, "username": "alice"},
    {"id": 2, "username": "bob"}
  ],
  "albums": [
    {"id": 10, "user_id": 1, "title": "holiday", "type": "PUBLIC"},
    {"id": 11, "user_id": 1, "title": "family", "type": "RESTRICTED"},
    {"id": 12, "user_id": 2, "title": "drafts", "type": "PRIVATE"},
    {"id": 13, "user_id": 2, "title": "untyped"}
  ],
  "photos": [
    {"id": 100, "album_id": 10, "title": "beach"},
    {"id": 101, "album_id": 12, "title": "sketch"}
  ],
  "comments": []
}`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(testDB), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/db.json"); err == nil {
		t.Error("Open() on missing file should fail")
	}
}

func TestOpenBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open() on malformed JSON should fail")
	}
}

func TestCollections(t *testing.T) {
	s := openTestStore(t)
	got := s.Collections()
	want := []string{"albums", "comments", "photos", "users"}
	if len(got) != len(want) {
		t.Fatalf("Collections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Collections()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !s.Has("users") {
		t.Error("Has(users) = false")
	}
	if s.Has("movies") {
		t.Error("Has(movies) = true for unknown collection")
	}
}

func TestListWithFilter(t *testing.T) {
	s := openTestStore(t)

	all, err := s.List("albums", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("List(albums) returned %d docs, want 4", len(all))
	}

	mine, err := s.List("albums", map[string]any{"user_id": int64(1)})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("List(albums, user_id=1) returned %d docs, want 2", len(mine))
	}

	if _, err := s.List("movies", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("List(movies) error = %v, want ErrNotFound", err)
	}
}

func TestGetNormalizesIDs(t *testing.T) {
	s := openTestStore(t)

	doc, err := s.Get("photos", 100)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if id, ok := doc["album_id"].(int64); !ok || id != 10 {
		t.Errorf("album_id = %v (%T), want int64(10)", doc["album_id"], doc["album_id"])
	}

	if _, err := s.Get("photos", 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := openTestStore(t)

	doc, _ := s.Get("users", 1)
	doc["username"] = "mallory"

	again, _ := s.Get("users", 1)
	if again["username"] != "alice" {
		t.Error("mutation of returned document leaked into the store")
	}
}

func TestInsertAssignsIDs(t *testing.T) {
	s := openTestStore(t)

	doc, err := s.Insert("users", Document{"username": "carol"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id := docID(doc); id != 3 {
		t.Errorf("inserted id = %d, want 3", id)
	}

	// id counters are monotonic even after a delete
	if err := s.Delete("users", 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	doc, _ = s.Insert("users", Document{"username": "dave"})
	if id := docID(doc); id != 4 {
		t.Errorf("id after delete = %d, want 4", id)
	}
}

func TestInsertCreatesCollection(t *testing.T) {
	s := New()
	doc, err := s.Insert("tags", Document{"name": "sunset"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id := docID(doc); id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}
	if !s.Has("tags") {
		t.Error("Insert should create the collection")
	}
}

func TestReplace(t *testing.T) {
	s := openTestStore(t)

	doc, err := s.Replace("albums", 10, Document{"user_id": 1, "title": "renamed", "type": "PRIVATE"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if doc["title"] != "renamed" {
		t.Errorf("title = %v, want renamed", doc["title"])
	}
	if id := docID(doc); id != 10 {
		t.Errorf("id = %d, want path id 10", id)
	}

	if _, err := s.Replace("albums", 999, Document{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace(999) error = %v, want ErrNotFound", err)
	}
}

func TestMergeKeepsID(t *testing.T) {
	s := openTestStore(t)

	doc, err := s.Merge("albums", 11, Document{"title": "relatives", "id": float64(999)})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if doc["title"] != "relatives" {
		t.Errorf("title = %v, want relatives", doc["title"])
	}
	if id := docID(doc); id != 11 {
		t.Errorf("id = %d, merge must not change it", id)
	}
	if doc["type"] != "RESTRICTED" {
		t.Errorf("type = %v, untouched fields must survive a merge", doc["type"])
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Delete("photos", 101); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get("photos", 101); !errors.Is(err, ErrNotFound) {
		t.Error("deleted document still present")
	}
	if err := s.Delete("photos", 101); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestAlbumTypedAccessor(t *testing.T) {
	s := openTestStore(t)

	al, err := s.Album(10)
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if al.UserID != 1 || al.Type != models.VisibilityPublic {
		t.Errorf("Album(10) = %+v, want user_id 1 type PUBLIC", al)
	}

	// missing type field fails closed to private
	al, err = s.Album(13)
	if err != nil {
		t.Fatalf("Album() error = %v", err)
	}
	if al.Type != models.VisibilityPrivate {
		t.Errorf("untyped album Type = %q, want PRIVATE", al.Type)
	}

	if _, err := s.Album(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Album(999) error = %v, want ErrNotFound", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = s.List("albums", nil)
				_, _ = s.Get("users", 1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = s.Insert("comments", Document{"body": "hi"})
			}
		}()
	}
	wg.Wait()

	docs, err := s.List("comments", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 400 {
		t.Errorf("comments = %d, want 400", len(docs))
	}
}
