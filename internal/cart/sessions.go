package cart

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the opaque cart session ID. The server issues one on
// first contact and echoes it back on every cart response.
const SessionHeader = "X-Session-ID"

// Sessions maps session IDs to their ledgers. A ledger lives for the
// duration of one browsing session and has no persisted identity beyond it.
type Sessions struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewSessions() *Sessions {
	return &Sessions{ledgers: make(map[string]*Ledger)}
}

// Ledger returns the session's ledger, creating it on first use.
func (s *Sessions) Ledger(id string) *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[id]
	if !ok {
		l = NewLedger()
		s.ledgers[id] = l
	}
	return l
}

// Drop discards a session's ledger entirely.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, id)
}

// EnsureSession resolves the request's cart session ID, issuing a fresh one
// when the client sent none, and echoes it in the response header.
func EnsureSession(c *fiber.Ctx) string {
	id := c.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(SessionHeader, id)
	return id
}
