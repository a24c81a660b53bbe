// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
gates.go - Access-Level Gates

Each gate inspects the request's credentials and returns a Decision. Gates
are composed into ordered chains per route class in levels.go.

Authentication is lazy and memoized on the evaluation: the first gate that
needs an identity triggers credential verification, repeated gates in a
chain reuse the cached result. This keeps concatenated gate chains
equivalent to evaluating each sub-chain with its own auth step.
*/

package access

import (
	"net/http"
	"strconv"

	"github.com/phototeka/phototeka/internal/auth"
)

// evaluation carries per-request state across a gate chain.
type evaluation struct {
	r     *http.Request
	authn *auth.Basic

	// memoized authentication result
	done     bool
	identity *auth.Identity
	authErr  error
}

func newEvaluation(r *http.Request, authn *auth.Basic) *evaluation {
	return &evaluation{r: r, authn: authn}
}

// authenticate verifies the request credentials once and caches the result.
func (e *evaluation) authenticate() (*auth.Identity, error) {
	if !e.done {
		e.identity, e.authErr = e.authn.AuthenticateRequest(e.r)
		e.done = true
	}
	return e.identity, e.authErr
}

// hasHeader reports whether the request carries an Authorization header at
// all, without verifying it.
func (e *evaluation) hasHeader() bool {
	return e.r.Header.Get("Authorization") != ""
}

// gate is a single access-level predicate.
type gate func(e *evaluation) Decision

// allowAnonymous accepts requests that present no credentials. Requests
// with an Authorization header fall through to the rest of the chain, so
// bad credentials are still rejected on otherwise public routes.
func allowAnonymous(e *evaluation) Decision {
	if !e.hasHeader() {
		return Accept()
	}
	return Defer()
}

// requireAuth verifies credentials. Valid credentials defer to the next
// gate; anything else, including an absent header, draws a 401 with the
// challenge.
func requireAuth(e *evaluation) Decision {
	if _, err := e.authenticate(); err != nil {
		return DenyWithChallenge(http.StatusUnauthorized)
	}
	return Defer()
}

// allowUsers accepts any authenticated identity.
func allowUsers(e *evaluation) Decision {
	if id, err := e.authenticate(); err == nil && id != nil {
		return Accept()
	}
	return Defer()
}

// requireUser accepts the identity whose user id matches the userId path
// segment. Identities without an owner id never match.
func requireUser(userID string) gate {
	return func(e *evaluation) Decision {
		id, err := e.authenticate()
		if err != nil || id == nil || id.UserID == 0 {
			return Defer()
		}
		if strconv.FormatInt(id.UserID, 10) == userID {
			return Accept()
		}
		return Defer()
	}
}

// requireAdmin accepts identities carrying the admin role.
func requireAdmin(e *evaluation) Decision {
	if id, err := e.authenticate(); err == nil && id.IsAdmin() {
		return Accept()
	}
	return Defer()
}
