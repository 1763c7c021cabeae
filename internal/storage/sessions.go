// Package storage keeps per-browser editing sessions in memory. Sessions
// live for one editing sitting only; nothing is persisted across restarts.
package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dialoguebuilder/internal/dialogue"
)

// DefaultTTL is how long an idle session is kept before eviction.
const DefaultTTL = 2 * time.Hour

type entry struct {
	session  *dialogue.Session
	lastSeen time.Time
}

// SessionStore is a mutex-guarded in-memory session map keyed by session
// id. Idle sessions are evicted lazily on access.
type SessionStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionStore constructs a store with the default idle TTL.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[uuid.UUID]*entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
}

// Get returns the session with the given id, or nil if it is unknown or
// expired.
func (s *SessionStore) Get(id uuid.UUID) *dialogue.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()

	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	e.lastSeen = s.now()
	return e.session
}

// Put stores a session under its own id.
func (s *SessionStore) Put(session *dialogue.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.entries[session.ID] = &entry{session: session, lastSeen: s.now()}
}

// Delete removes a session.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// evictExpired drops idle sessions. Caller holds the lock.
func (s *SessionStore) evictExpired() {
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
