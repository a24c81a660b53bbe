// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

/*
decision.go - Three-Valued Gate Decisions

Gates evaluate to one of three verdicts:
  - Defer: this gate has no opinion, continue with the next gate
  - Accept: the request may proceed to the resource router
  - Deny: stop with the given status code

A Deny carries the HTTP status and whether the response must include the
WWW-Authenticate challenge. Only denials raised while verifying
credentials carry the challenge; downstream gates deny without it.
*/

package access

import "fmt"

// Verdict is the outcome of a single gate.
type Verdict int

const (
	// VerdictDefer passes the request to the next gate in the chain.
	VerdictDefer Verdict = iota

	// VerdictAccept lets the request through to the resource router.
	VerdictAccept

	// VerdictDeny stops the request with a status code.
	VerdictDeny
)

// String returns the verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictDefer:
		return "defer"
	case VerdictAccept:
		return "accept"
	case VerdictDeny:
		return "deny"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Decision is a verdict plus the response details for denials.
type Decision struct {
	Verdict Verdict

	// Status is the HTTP status for VerdictDeny, zero otherwise.
	Status int

	// Challenge marks denials that must carry the WWW-Authenticate header.
	Challenge bool
}

// Defer returns the no-opinion decision.
func Defer() Decision {
	return Decision{Verdict: VerdictDefer}
}

// Accept returns the pass-through decision.
func Accept() Decision {
	return Decision{Verdict: VerdictAccept}
}

// Deny returns a denial with the given status.
func Deny(status int) Decision {
	return Decision{Verdict: VerdictDeny, Status: status}
}

// DenyWithChallenge returns a credential denial that carries the
// WWW-Authenticate header.
func DenyWithChallenge(status int) Decision {
	return Decision{Verdict: VerdictDeny, Status: status, Challenge: true}
}
