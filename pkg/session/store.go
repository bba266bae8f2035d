package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = time.Hour

// Factory builds a session for a new id.
type Factory func(id string) *Session

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL overrides DefaultTTL. Non-positive values disable expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithStoreClock overrides time.Now for expiry checks.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the random id source.
func WithIDGenerator(next func() string) StoreOption {
	return func(s *Store) {
		if next != nil {
			s.nextID = next
		}
	}
}

// Store keeps sessions in memory keyed by a random id. Idle sessions are
// removed lazily whenever a session is looked up or created.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
	nextID   func() string
}

// NewStore returns an empty store.
func NewStore(factory Factory, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      DefaultTTL,
		now:      time.Now,
		nextID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns a live session.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Create registers a new session under a fresh id.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return s.createLocked()
}

func (s *Store) createLocked() *Session {
	id := s.nextID()
	for _, exists := s.sessions[id]; exists; _, exists = s.sessions[id] {
		id = s.nextID()
	}
	sess := s.factory(id)
	s.sessions[id] = sess
	return sess
}

// GetOrCreate returns the session for id, creating one when id is unknown or
// expired. The boolean reports whether a new session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	if sess, ok := s.sessions[id]; ok && id != "" {
		return sess, false
	}
	return s.createLocked(), true
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
