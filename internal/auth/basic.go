// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
basic.go - HTTP Basic Authenticator

This file implements credential verification against the in-memory account
list loaded at startup.

Matching rules:
  - Usernames compare case-insensitively
  - Passwords compare exactly, in constant time
  - Absent or malformed Authorization headers are distinct from wrong
    credentials; callers decide which failures draw a challenge

Usage:
  - Authorization engine in internal/access/
  - Identity endpoint in internal/api/handlers_auth.go
*/

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phototeka/phototeka/internal/models"
)

// Sentinel errors distinguishing the ways authentication can fail.
var (
	// ErrNoCredentials means the request carried no Authorization header.
	ErrNoCredentials = errors.New("auth: no credentials presented")

	// ErrMalformedHeader means the Authorization header was present but not
	// a decodable Basic credential.
	ErrMalformedHeader = errors.New("auth: malformed authorization header")

	// ErrInvalidCredentials means the credentials did not match any account.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// Identity is an authenticated principal derived from an account record.
type Identity struct {
	// UserID is the owner id the identity is bound to. Zero when the
	// account owns no data.
	UserID int64 `json:"userId,omitempty"`

	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// Basic verifies HTTP Basic credentials against a fixed account list.
type Basic struct {
	accounts []models.Account
	realm    string
}

// NewBasic creates an authenticator over the given accounts. The realm is
// echoed in the WWW-Authenticate challenge.
func NewBasic(accounts []models.Account, realm string) *Basic {
	return &Basic{accounts: accounts, realm: realm}
}

// Challenge returns the WWW-Authenticate header value for 401 responses.
func (b *Basic) Challenge() string {
	return fmt.Sprintf("Basic realm=%q", b.realm)
}

// Authenticate verifies a username/password pair. Usernames match
// case-insensitively, passwords exactly.
func (b *Basic) Authenticate(username, password string) (*Identity, error) {
	for i := range b.accounts {
		acc := &b.accounts[i]
		if !strings.EqualFold(acc.Username, username) {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password)) != 1 {
			return nil, ErrInvalidCredentials
		}
		return &Identity{
			UserID:   acc.UserID,
			Username: acc.Username,
			Role:     acc.Role,
		}, nil
	}
	return nil, ErrInvalidCredentials
}

// AuthenticateRequest extracts and verifies Basic credentials from a
// request. Returns ErrNoCredentials when the header is absent and
// ErrMalformedHeader when it cannot be decoded.
func (b *Basic) AuthenticateRequest(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrNoCredentials
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrMalformedHeader
	}
	return b.Authenticate(username, password)
}
