// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
rights.go - Album Visibility Gate

Runs after the access levels for reads inside a user's album subtree,
GET /users/{userId}/albums/{albumId} and deeper. Owners and admins skip
the lookup entirely; everyone else is checked against the album's
visibility:

  PUBLIC      anyone
  RESTRICTED  any verified identity
  PRIVATE     nobody but owner and admin

Missing albums yield 404 regardless of the requester. Denials here never
carry the challenge header; the requester either has an identity that is
simply not enough (403) or presented nothing on a resource that demands
it (401).
*/

package access

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/phototeka/phototeka/internal/models"
	"github.com/phototeka/phototeka/internal/store"
)

// albumTarget extracts the userId and albumId segments when the path is a
// read inside an album subtree.
func albumTarget(method, path string) (userID, albumID string, ok bool) {
	if method != http.MethodGet {
		return "", "", false
	}
	segs := splitPath(path)
	if len(segs) < 4 || segs[0] != "users" || segs[2] != "albums" {
		return "", "", false
	}
	return segs[1], segs[3], true
}

// checkVisibility applies the album visibility rules.
func checkVisibility(e *evaluation, db *store.Store, userID, albumID string) Decision {
	id, err := e.authenticate()
	authenticated := err == nil && id != nil

	if authenticated {
		owner := id.UserID != 0 && strconv.FormatInt(id.UserID, 10) == userID
		if id.IsAdmin() || owner {
			return Accept()
		}
	}

	aid, perr := strconv.ParseInt(albumID, 10, 64)
	if perr != nil {
		return Deny(http.StatusNotFound)
	}
	album, serr := db.Album(aid)
	if serr != nil {
		if errors.Is(serr, store.ErrNotFound) {
			return Deny(http.StatusNotFound)
		}
		return Deny(http.StatusInternalServerError)
	}

	switch album.Type {
	case models.VisibilityPublic:
		return Accept()
	case models.VisibilityRestricted:
		if authenticated {
			return Accept()
		}
	}

	if authenticated {
		return Deny(http.StatusForbidden)
	}
	return Deny(http.StatusUnauthorized)
}
