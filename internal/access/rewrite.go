// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
rewrite.go - Current-User Alias

Requests under /me are rewritten to the verified identity's own subtree,
/users/{id}, before the access levels run. Only identities bound to an
owner id qualify; anonymous requests and owner-less identities such as
the admin account get a 404, since /me names no resource for them.
*/

package access

import (
	"net/http"
	"strconv"
	"strings"
)

// rewriteMe resolves the /me alias in place. It returns Accept when the
// path was rewritten (or never referred to /me) and the chain should be
// classified against the effective path, or a denial that stops the
// request.
func rewriteMe(e *evaluation) Decision {
	segs := splitPath(e.r.URL.Path)
	if len(segs) == 0 || segs[0] != "me" {
		return Accept()
	}

	if !e.hasHeader() {
		return Deny(http.StatusNotFound)
	}

	id, err := e.authenticate()
	if err != nil {
		return DenyWithChallenge(http.StatusUnauthorized)
	}
	if id.UserID == 0 {
		return Deny(http.StatusNotFound)
	}

	rest := ""
	if len(segs) > 1 {
		rest = "/" + strings.Join(segs[1:], "/")
	}
	e.r.URL.Path = "/users/" + strconv.FormatInt(id.UserID, 10) + rest
	e.r.URL.RawPath = ""
	return Accept()
}
