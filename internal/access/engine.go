// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
engine.go - Authorization Engine Middleware

Composes the tiers into a single chi middleware, evaluated in order:

 1. /me alias rewrite (may deny outright)
 2. Access-level gate chain for the effective path
 3. Album visibility gate on reads inside an album subtree

Accepted requests proceed with the verified identity, if any, stored in
the request context. Denials are written here and never reach the
resource router.
*/

package access

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/phototeka/phototeka/internal/auth"
	"github.com/phototeka/phototeka/internal/logging"
	"github.com/phototeka/phototeka/internal/metrics"
	"github.com/phototeka/phototeka/internal/store"
)

// Engine is the four-tier authorization engine.
type Engine struct {
	authn *auth.Basic
	db    *store.Store
}

// NewEngine creates an engine over the given authenticator and store.
func NewEngine(authn *auth.Basic, db *store.Store) *Engine {
	return &Engine{authn: authn, db: db}
}

// Middleware returns the chi middleware enforcing the engine's rules.
func (en *Engine) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := newEvaluation(r, en.authn)

		if d := rewriteMe(e); d.Verdict == VerdictDeny {
			en.deny(w, r, "me", d)
			return
		}

		rt := classify(r.Method, r.URL.Path)
		d := rt.evaluate(e)
		if d.Verdict == VerdictDeny {
			en.deny(w, r, rt.name, d)
			return
		}

		if userID, albumID, ok := albumTarget(r.Method, r.URL.Path); ok {
			if d := checkVisibility(e, en.db, userID, albumID); d.Verdict == VerdictDeny {
				en.deny(w, r, "album", d)
				return
			}
		}

		metrics.RecordAccessDecision(rt.name, "accept", http.StatusOK)

		if id, err := e.authenticate(); err == nil && id != nil {
			r = r.WithContext(auth.ContextWithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// deny writes a denial response.
func (en *Engine) deny(w http.ResponseWriter, r *http.Request, routeName string, d Decision) {
	metrics.RecordAccessDecision(routeName, "deny", d.Status)

	logging.Ctx(r.Context()).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("route", routeName).
		Int("status", d.Status).
		Msg("Access denied")

	if d.Challenge {
		w.Header().Set("WWW-Authenticate", en.authn.Challenge())
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(d.Status)

	body := map[string]string{"error": http.StatusText(d.Status)}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write denial response")
	}
}
