// Package session turns the identity provider's authentication stream into
// screen routing decisions.
package session

import (
	"context"
	"sync"
)

type Route string

const (
	RouteLoading Route = "loading"
	RouteShell   Route = "shell"
	RouteLogin   Route = "login"
)

// User is the signed-in identity as the provider reports it.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// State is one element of the authentication stream.
type State struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

func Authenticated(u User) State { return State{Authenticated: true, User: &u} }
func Unauthenticated() State     { return State{} }

// Decision is emitted by the gate whenever the route or the signed-in user
// changes.
type Decision struct {
	Route Route `json:"route"`
	User  *User `json:"user,omitempty"`
}

// Gate starts in RouteLoading and settles on RouteShell or RouteLogin once
// the first state arrives. Repeated identical states are ignored.
type Gate struct {
	mu      sync.Mutex
	current Decision
}

func NewGate() *Gate {
	return &Gate{current: Decision{Route: RouteLoading}}
}

func (g *Gate) Current() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Observe feeds one state into the gate. It returns the new decision and
// true when it differs from the previous one.
func (g *Gate) Observe(s State) (Decision, bool) {
	next := Decision{Route: RouteLogin}
	if s.Authenticated && s.User != nil {
		u := *s.User
		next = Decision{Route: RouteShell, User: &u}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if sameDecision(g.current, next) {
		return g.current, false
	}
	g.current = next
	return next, true
}

// Run drains states until ctx is done or the stream closes, calling emit
// once per actual change.
func (g *Gate) Run(ctx context.Context, states <-chan State, emit func(Decision)) {
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-states:
			if !ok {
				return
			}
			if d, changed := g.Observe(s); changed {
				emit(d)
			}
		}
	}
}

func sameDecision(a, b Decision) bool {
	if a.Route != b.Route {
		return false
	}
	if a.User == nil || b.User == nil {
		return a.User == nil && b.User == nil
	}
	return *a.User == *b.User
}
