// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

package models

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleUser, true},
		{RoleAdmin, true},
		{"editor", false},
		{"", false},
		{"ADMIN", false},
	}

	for _, tt := range tests {
		if got := IsValidRole(tt.role); got != tt.want {
			t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want Visibility
	}{
		{"PUBLIC", VisibilityPublic},
		{"public", VisibilityPublic},
		{" Restricted ", VisibilityRestricted},
		{"PRIVATE", VisibilityPrivate},
		{"", VisibilityPrivate},
		{"hidden", VisibilityPrivate},
	}

	for _, tt := range tests {
		if got := ParseVisibility(tt.in); got != tt.want {
			t.Errorf("ParseVisibility(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlbumVisible(t *testing.T) {
	tests := []struct {
		name          string
		vis           Visibility
		authenticated bool
		owner         bool
		admin         bool
		want          bool
	}{
		{"public anonymous", VisibilityPublic, false, false, false, true},
		{"public authenticated", VisibilityPublic, true, false, false, true},
		{"restricted anonymous", VisibilityRestricted, false, false, false, false},
		{"restricted authenticated", VisibilityRestricted, true, false, false, true},
		{"private stranger", VisibilityPrivate, true, false, false, false},
		{"private owner", VisibilityPrivate, true, true, false, true},
		{"private admin", VisibilityPrivate, true, false, true, true},
		{"unknown type fails closed", Visibility("SECRET"), true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			al := &Album{ID: 1, UserID: 10, Type: tt.vis}
			if got := al.Visible(tt.authenticated, tt.owner, tt.admin); got != tt.want {
				t.Errorf("Visible(%v, %v, %v) = %v, want %v",
					tt.authenticated, tt.owner, tt.admin, got, tt.want)
			}
		})
	}
}

func TestAccountIsAdmin(t *testing.T) {
	admin := &Account{Username: "root", Role: RoleAdmin}
	user := &Account{UserID: 1, Username: "alice", Role: RoleUser}

	if !admin.IsAdmin() {
		t.Error("admin account should report IsAdmin")
	}
	if user.IsAdmin() {
		t.Error("user account should not report IsAdmin")
	}
}
