// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
levels.go - Route Classification

Maps a request's method and path onto an ordered gate chain plus the
terminal decision applied when every gate defers.

Route classes, most specific first:
  - /                      GET is public, everything else is 405
  - /auth                  any verified identity passes (handler owns 405s)
  - /users                 list needs a registered user, writes need admin
  - /users/{id}...         reads are public, writes owner-or-admin
  - /albums|/photos|/comments...  flat collections are admin-only
  - anything else          passes through to the resource router

The userId path segment is captured during classification so the owner
gate can compare it against the verified identity.
*/

package access

import (
	"net/http"
	"strings"
)

// route is a classified request: the gates to run in order and the
// decision when the chain is exhausted.
type route struct {
	name     string
	gates    []gate
	terminal Decision
}

// adminCollections are reachable only through their owning user subtree,
// except for admins.
var adminCollections = map[string]struct{}{
	"albums":   {},
	"photos":   {},
	"comments": {},
}

// splitPath returns the cleaned path segments of a request path.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// classify resolves the gate chain for a method and path.
func classify(method, path string) route {
	segs := splitPath(path)

	if len(segs) == 0 {
		if method == http.MethodGet {
			return route{
				name:     "root",
				gates:    []gate{allowAnonymous, requireAuth, allowUsers},
				terminal: Deny(http.StatusMethodNotAllowed),
			}
		}
		return route{name: "root", terminal: Deny(http.StatusMethodNotAllowed)}
	}

	head := segs[0]

	if head == "auth" && len(segs) == 1 {
		return route{
			name:     "auth",
			gates:    []gate{requireAuth},
			terminal: Accept(),
		}
	}

	if head == "users" {
		if len(segs) == 1 {
			if method == http.MethodGet {
				return route{
					name:     "users",
					gates:    []gate{requireAuth, allowUsers, requireAuth, requireAdmin},
					terminal: Deny(http.StatusForbidden),
				}
			}
			return route{
				name:     "users",
				gates:    []gate{requireAuth, requireAdmin},
				terminal: Deny(http.StatusForbidden),
			}
		}

		userID := segs[1]
		if method == http.MethodGet {
			return route{
				name: "user",
				gates: []gate{
					allowAnonymous, requireAuth, allowUsers,
					requireAuth, requireUser(userID),
					requireAuth, requireAdmin,
				},
				terminal: Deny(http.StatusForbidden),
			}
		}
		return route{
			name: "user",
			gates: []gate{
				requireAuth, requireUser(userID),
				requireAuth, requireAdmin,
			},
			terminal: Deny(http.StatusForbidden),
		}
	}

	if _, ok := adminCollections[head]; ok {
		return route{
			name:     head,
			gates:    []gate{requireAuth, requireAdmin},
			terminal: Deny(http.StatusForbidden),
		}
	}

	// Unknown collections fall through; the resource router 404s them.
	return route{name: "passthrough", terminal: Accept()}
}

// evaluate runs the chain and returns the effective decision.
func (rt route) evaluate(e *evaluation) Decision {
	for _, g := range rt.gates {
		d := g(e)
		if d.Verdict != VerdictDefer {
			return d
		}
	}
	return rt.terminal
}
