// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

package api

import (
	"net/http"

	"github.com/phototeka/phototeka/internal/auth"
)

// AuthInfo returns the verified identity for the request. The
// authorization engine guarantees a valid identity reaches this handler;
// credentials never appear in the response.
func (h *Handler) AuthInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "")
		return
	}

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "")
		return
	}
	writeJSON(w, r, http.StatusOK, id)
}
