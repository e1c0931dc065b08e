// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package guard decides whether the client may show a view for the current
// session state.
//
// The guard makes no role distinction. Admin-only views are still gated by
// the server on every request.
package guard

import (
	"strings"
	"sync"

	"github.com/MKhiriev/pos-backoffice/internal/service"
)

// View paths of the client.
const (
	PathMenu     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathUsers    = "/users"
)

var publicPaths = map[string]struct{}{
	PathMenu:     {},
	PathLogin:    {},
	PathRegister: {},
}

// IsPublic reports whether path is shown regardless of the session.
func IsPublic(path string) bool {
	_, ok := publicPaths[normalize(path)]
	return ok
}

// Outcome is the kind of a navigation decision.
type Outcome int

const (
	// Pending means the session is still loading; show a neutral indicator.
	Pending Outcome = iota
	// Redirect means go to Decision.To instead.
	Redirect
	// Allow means show the requested view.
	Allow
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating a navigation.
type Decision struct {
	Outcome Outcome

	// To is the redirect target.
	To string

	// ReturnTo is the originally requested path of a redirect.
	ReturnTo string
}

// Evaluate decides a navigation to path for the given session state.
func Evaluate(state service.SessionState, path string) Decision {
	path = normalize(path)

	if IsPublic(path) {
		return Decision{Outcome: Allow}
	}

	switch state.Status {
	case service.SessionAuthenticated:
		return Decision{Outcome: Allow}
	case service.SessionAnonymous:
		return Decision{Outcome: Redirect, To: PathLogin, ReturnTo: path}
	default:
		return Decision{Outcome: Pending}
	}
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathMenu
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// Navigator evaluates navigations and keeps the return path of the last
// redirect until it is taken. Nothing is persisted.
type Navigator struct {
	mu       sync.Mutex
	returnTo string
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

// Navigate evaluates path and remembers the return path of a redirect.
func (n *Navigator) Navigate(state service.SessionState, path string) Decision {
	d := Evaluate(state, path)
	if d.Outcome == Redirect {
		n.mu.Lock()
		n.returnTo = d.ReturnTo
		n.mu.Unlock()
	}
	return d
}

// TakeReturnTo hands out the remembered return path once.
func (n *Navigator) TakeReturnTo() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	path := n.returnTo
	n.returnTo = ""
	return path, path != ""
}

// Forget drops a remembered return path, e.g. when the operator leaves the
// login view without logging in.
func (n *Navigator) Forget() {
	n.mu.Lock()
	n.returnTo = ""
	n.mu.Unlock()
}
