package selection

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/veestore/storefront-backend/internal/catalog"
)

var ErrSessionNotFound = errors.New("selection session not found")

// Session owns one selection state plus the rotator advancing its gallery.
type Session struct {
	ID string

	mu      sync.Mutex
	state   State
	rotator *Rotator
}

// State returns the current selection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs a transition against the session's state.
func (s *Session) Apply(transition func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transition(s.state)
	return s.state
}

// close stops the rotator; the session must not be used afterwards.
func (s *Session) close() {
	if s.rotator != nil {
		s.rotator.Stop()
	}
}

// Sessions holds the open selection sessions.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Open creates a session for the product and starts its gallery rotation.
// The rotator stops itself once the state stops rotating (last image reached
// or an explicit choice made) and is cancelled outright on Close.
func (ss *Sessions) Open(p catalog.Product) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		state: Open(p),
	}
	if s.state.Rotating() {
		s.rotator = NewRotator(RotationInterval, func() bool {
			s.mu.Lock()
			s.state = GalleryTick(s.state)
			rotating := s.state.Rotating()
			s.mu.Unlock()
			return rotating
		})
	}

	ss.mu.Lock()
	ss.sessions[s.ID] = s
	ss.mu.Unlock()
	return s
}

func (ss *Sessions) Get(id string) (*Session, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears a session down, cancelling its rotation timer.
func (ss *Sessions) Close(id string) {
	ss.mu.Lock()
	s, ok := ss.sessions[id]
	if ok {
		delete(ss.sessions, id)
	}
	ss.mu.Unlock()
	if ok {
		s.close()
	}
}
