// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
models.go - Core Domain Models

This file defines the data structures shared across the access-control
engine, store, and API layers.

Key Structures:
  - Account: Credential record loaded from the accounts file
  - Album: Typed view of an album document, used by the visibility gate
  - Visibility: Album visibility levels (PUBLIC, RESTRICTED, PRIVATE)
  - Role constants: Standard role names (user, admin)

Role Hierarchy:
  - user: Authenticated account tied to a resource owner
  - admin: Full access to every collection and resource

Usage:
  - Credential loading in internal/auth/accounts.go
  - Authorization gates in internal/access/
  - Document access in internal/store/
*/

package models

import "strings"

// Role constants define the standard roles in the system.
const (
	// RoleUser is an authenticated account bound to a specific owner id.
	RoleUser = "user"

	// RoleAdmin has full access to every collection and resource.
	RoleAdmin = "admin"
)

// ValidRoles contains all valid role names for validation.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Visibility is an album's access classification.
type Visibility string

// Album visibility levels. An album document with an unknown or missing
// type is treated as private.
const (
	VisibilityPublic     Visibility = "PUBLIC"
	VisibilityRestricted Visibility = "RESTRICTED"
	VisibilityPrivate    Visibility = "PRIVATE"
)

// ParseVisibility normalizes a raw album type string. Unknown values map
// to VisibilityPrivate so that malformed documents fail closed.
func ParseVisibility(s string) Visibility {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic
	case VisibilityRestricted:
		return VisibilityRestricted
	default:
		return VisibilityPrivate
	}
}

// Account is a credential record from the accounts file. Passwords are
// plain text by design of the mock server; there is nothing real to protect.
type Account struct {
	// UserID links the account to its owner's documents. Zero for accounts
	// that own no data (e.g. the admin account).
	UserID int64 `json:"userId,omitempty"`

	// Username is matched case-insensitively during authentication.
	Username string `json:"username"`

	// Password is matched exactly, including case.
	Password string `json:"password"`

	// Role is one of RoleUser or RoleAdmin.
	Role string `json:"role"`
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Album is the typed view of an album document that the visibility gate
// needs. Remaining fields stay in the raw document.
type Album struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"user_id"`
	Title  string     `json:"title,omitempty"`
	Type   Visibility `json:"type"`
}

// Visible reports whether the album may be read by the given requester.
// authenticated indicates a valid identity was presented, ownerRequest
// indicates the request targets the album owner's own subtree, and admin
// indicates the requester holds the admin role.
func (al *Album) Visible(authenticated, ownerRequest, admin bool) bool {
	if admin || ownerRequest {
		return true
	}
	switch al.Type {
	case VisibilityPublic:
		return true
	case VisibilityRestricted:
		return authenticated
	default:
		return false
	}
}
