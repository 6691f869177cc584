// Package session tracks the client's sign-in state across the three
// stages of the CLI flow: anonymous, signed in without a profile, and
// fully active.
package session

import (
	"fmt"
	"sync"
)

type State int

const (
	// StateAnonymous is the initial state: no token pair is held.
	StateAnonymous State = iota
	// StateNeedsProfile means the principal is authenticated but has
	// not picked a display name yet; the app gates everything except
	// profile creation.
	StateNeedsProfile
	// StateActive means the profile exists and all commands for the
	// session's role are available.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateNeedsProfile:
		return "needs-profile"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the client-side view of who is signed in. Safe for
// concurrent use.
type Session struct {
	mu          sync.RWMutex
	state       State
	email       string
	displayName string
	isAdmin     bool
}

func New() *Session {
	return &Session{state: StateAnonymous}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayName
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// SignedIn moves anonymous to needs-profile after a successful login.
func (s *Session) SignedIn(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnonymous {
		return fmt.Errorf("cannot sign in from state %s", s.state)
	}
	s.state = StateNeedsProfile
	s.email = email
	return nil
}

// ProfileLoaded activates the session once an existing profile is
// fetched from the server.
func (s *Session) ProfileLoaded(displayName string, isAdmin bool) error {
	return s.activate(displayName, isAdmin)
}

// ProfileCreated activates the session after the name-selection step.
func (s *Session) ProfileCreated(displayName string, isAdmin bool) error {
	return s.activate(displayName, isAdmin)
}

func (s *Session) activate(displayName string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNeedsProfile {
		return fmt.Errorf("cannot activate from state %s", s.state)
	}
	s.state = StateActive
	s.displayName = displayName
	s.isAdmin = isAdmin
	return nil
}

// SignedOut drops back to anonymous from any signed-in state.
func (s *Session) SignedOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAnonymous {
		return fmt.Errorf("cannot sign out from state %s", s.state)
	}
	s.state = StateAnonymous
	s.email = ""
	s.displayName = ""
	s.isAdmin = false
	return nil
}
