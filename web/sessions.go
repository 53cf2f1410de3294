package web

import (
	"errors"
	"sync"
	"time"

	"gobill/billing"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// sessionStore keeps one billing sheet per open page. Sheets are values, so
// readers get a snapshot that later mutations cannot change.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
}

type session struct {
	sheet    billing.Sheet
	lastSeen time.Time
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	if now == nil {
		now = time.Now
	}
	return &sessionStore{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*session),
	}
}

// create opens a session holding a fresh sheet and drops idle ones.
func (s *sessionStore) create() (string, billing.Sheet) {
	id := uuid.NewString()
	sheet := billing.NewSheet()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(now)
	s.sessions[id] = &session{sheet: sheet, lastSeen: now}
	return id, sheet
}

func (s *sessionStore) snapshot(id string) (billing.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookupLocked(id)
	if err != nil {
		return billing.Sheet{}, err
	}
	return current.sheet, nil
}

// update replaces the session sheet with fn's result.
func (s *sessionStore) update(id string, fn func(billing.Sheet) billing.Sheet) (billing.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookupLocked(id)
	if err != nil {
		return billing.Sheet{}, err
	}
	current.sheet = fn(current.sheet)
	return current.sheet, nil
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) lookupLocked(id string) (*session, error) {
	current, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(current, now) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	current.lastSeen = now
	return current, nil
}

func (s *sessionStore) evictExpiredLocked(now time.Time) {
	for id, current := range s.sessions {
		if s.expired(current, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) expired(current *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(current.lastSeen) > s.ttl
}
