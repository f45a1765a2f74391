package session

import (
	"sync"
	"time"
)

// Store is the single process-wide registry mapping tokens to sessions. It is
// read on every authenticated request and swept by the idle-session janitor,
// so every method is safe for arbitrary concurrent use. Values are stored and
// returned by copy: a session handed out by Get cannot be torn by a concurrent
// eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]Session),
	}
}

func (s *Store) Put(token string, principal Principal, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = Session{
		Token:        token,
		Principal:    principal,
		LastActiveAt: now,
	}
}

// Get returns a copy of the session for the token. A missing session is a
// normal outcome, not an error; callers map it to an authorization failure.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	return sess, ok
}

// Touch refreshes the session's last-active timestamp. It reports whether the
// session still existed.
func (s *Store) Touch(token string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}

	sess.LastActiveAt = now
	s.sessions[token] = sess

	return true
}

func (s *Store) Remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// EvictIdle removes every session whose last activity is older than
// idleTimeout and returns how many were removed. The timestamp comparison and
// the removal happen under one write lock, so a session touched after the
// sweep started is never evicted on a stale deadline.
func (s *Store) EvictIdle(now time.Time, idleTimeout time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for token, sess := range s.sessions {
		if now.Sub(sess.LastActiveAt) > idleTimeout {
			delete(s.sessions, token)
			evicted++
		}
	}

	return evicted
}
