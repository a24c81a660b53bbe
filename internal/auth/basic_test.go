// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/phototeka/phototeka/internal/models"
)

func testAccounts() []models.Account {
	return []models.Account{
		{UserID: 1, Username: "alice", Password: "wonderland", Role: models.RoleUser},
		{UserID: 2, Username: "Bob", Password: "Builder", Role: models.RoleUser},
		{Username: "admin", Password: "nimda", Role: models.RoleAdmin},
	}
}

func TestAuthenticate(t *testing.T) {
	b := NewBasic(testAccounts(), "JSON-Server test")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantUser string
	}{
		{"exact match", "alice", "wonderland", nil, "alice"},
		{"username case-insensitive", "ALICE", "wonderland", nil, "alice"},
		{"mixed stored case", "bob", "Builder", nil, "Bob"},
		{"password case-sensitive", "bob", "builder", ErrInvalidCredentials, ""},
		{"wrong password", "alice", "hatter", ErrInvalidCredentials, ""},
		{"unknown user", "mallory", "secret", ErrInvalidCredentials, ""},
		{"empty password rejected", "alice", "", ErrInvalidCredentials, ""},
		{"admin account", "admin", "nimda", nil, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := b.Authenticate(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if id.Username != tt.wantUser {
				t.Errorf("Username = %q, want %q", id.Username, tt.wantUser)
			}
		})
	}
}

func TestAuthenticateIdentityFields(t *testing.T) {
	b := NewBasic(testAccounts(), "JSON-Server test")

	id, err := b.Authenticate("alice", "wonderland")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if id.UserID != 1 || id.Role != models.RoleUser {
		t.Errorf("identity = %+v, want userId 1 role user", id)
	}
	if id.IsAdmin() {
		t.Error("user identity should not be admin")
	}

	admin, err := b.Authenticate("admin", "nimda")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if admin.UserID != 0 {
		t.Errorf("admin UserID = %d, want 0", admin.UserID)
	}
	if !admin.IsAdmin() {
		t.Error("admin identity should report IsAdmin")
	}
}

func TestAuthenticateRequest(t *testing.T) {
	b := NewBasic(testAccounts(), "JSON-Server test")

	t.Run("no header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/users", nil)
		if _, err := b.AuthenticateRequest(r); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("error = %v, want ErrNoCredentials", err)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/users", nil)
		r.Header.Set("Authorization", "Basic !!!not-base64!!!")
		if _, err := b.AuthenticateRequest(r); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("error = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/users", nil)
		r.Header.Set("Authorization", "Bearer abc123")
		if _, err := b.AuthenticateRequest(r); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("error = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/users", nil)
		r.SetBasicAuth("alice", "wonderland")
		id, err := b.AuthenticateRequest(r)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if id.Username != "alice" {
			t.Errorf("Username = %q, want alice", id.Username)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/users", nil)
		r.SetBasicAuth("alice", "nope")
		if _, err := b.AuthenticateRequest(r); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestChallenge(t *testing.T) {
	b := NewBasic(nil, "JSON-Server test")
	want := `Basic realm="JSON-Server test"`
	if got := b.Challenge(); got != want {
		t.Errorf("Challenge() = %q, want %q", got, want)
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := IdentityFromContext(ctx); ok {
		t.Error("empty context should carry no identity")
	}

	id := &Identity{UserID: 1, Username: "alice", Role: models.RoleUser}
	ctx = ContextWithIdentity(ctx, id)

	got, ok := IdentityFromContext(ctx)
	if !ok {
		t.Fatal("identity not found in context")
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want alice", got.Username)
	}

	// storing nil behaves like no identity
	ctx = ContextWithIdentity(context.Background(), nil)
	if _, ok := IdentityFromContext(ctx); ok {
		t.Error("nil identity should not be retrievable")
	}
}
