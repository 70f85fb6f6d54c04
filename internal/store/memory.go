package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/crop-dashboard/internal/dashboard"
)

var (
	// ErrNotFound is returned when no session exists for an id.
	ErrNotFound = errors.New("session not found")
)

// Session is one client's dashboard instance.
type Session struct {
	ID        string
	Dashboard dashboard.Dashboard
	CreatedAt time.Time

	mu        sync.Mutex
	touchedAt time.Time
}

// Kind reports the dashboard variant.
func (s *Session) Kind() dashboard.Kind {
	return s.Dashboard.Kind()
}

// TouchedAt is the last time the session was read or written.
func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

// SessionStore is a concurrency-safe in-memory registry of dashboard sessions.
type SessionStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*Session

	// retention configuration
	maxCount int           // max number of live sessions
	maxAge   time.Duration // idle time after which a session is pruned

	now func() time.Time
}

// NewSessionStore creates a new SessionStore with optional limits.
// If maxCount or maxAge is <= 0, it is treated as unlimited.
func NewSessionStore(maxCount int, maxAge time.Duration) *SessionStore {
	return &SessionStore{
		data:     make(map[string]*Session),
		maxCount: maxCount,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Create registers d under a fresh id and enforces the count limit by
// evicting the least recently touched sessions.
func (s *SessionStore) Create(d dashboard.Dashboard) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Dashboard: d,
		CreatedAt: now,
		touchedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sess.ID] = sess

	if s.maxCount > 0 && len(s.data) > s.maxCount {
		s.evictOldestLocked(len(s.data)-s.maxCount, sess.ID)
	}
	return sess
}

// Get returns the session for id and marks it as used.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Prune drops sessions idle for longer than maxAge and returns how many were
// removed. In-flight background fetches of a pruned session still complete;
// their results are simply never read.
func (s *SessionStore) Prune(now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := now.Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.data {
		if sess.TouchedAt().Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) evictOldestLocked(n int, keep string) {
	sessions := make([]*Session, 0, len(s.data))
	for _, sess := range s.data {
		if sess.ID != keep {
			sessions = append(sessions, sess)
		}
	}
	if n > len(sessions) {
		n = len(sessions)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].TouchedAt().Before(sessions[j].TouchedAt())
	})
	for _, sess := range sessions[:n] {
		delete(s.data, sess.ID)
	}
}
