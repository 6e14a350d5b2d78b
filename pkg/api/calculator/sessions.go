package calculator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"alight_calculator/pkg/core/calculator"
)

// Session limits.
const (
	MaxSessions = 1000
	SessionTTL  = 30 * time.Minute
)

type sessionEntry struct {
	mu      sync.Mutex
	session *calculator.Session
	touched time.Time
}

// SessionStore keeps scenario sessions between requests so bull and bear keep scaling the
// same frozen base.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*sessionEntry), now: time.Now}
}

// Put stores s and returns its new ID.
func (st *SessionStore) Put(s *calculator.Session) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.evictLocked()
	id := uuid.NewString()
	st.sessions[id] = &sessionEntry{session: s, touched: st.now()}
	return id
}

// With runs fn on the session stored under id while holding its lock. Expired sessions
// are dropped and reported as not found.
func (st *SessionStore) With(id string, fn func(*calculator.Session) error) (bool, error) {
	st.mu.Lock()
	now := st.now()
	e, ok := st.sessions[id]
	if ok && e.touched.Before(now.Add(-SessionTTL)) {
		delete(st.sessions, id)
		ok = false
	}
	if ok {
		e.touched = now
	}
	st.mu.Unlock()
	if !ok {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return true, fn(e.session)
}

func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// evictLocked drops expired sessions, then the least recently used ones over the cap.
func (st *SessionStore) evictLocked() {
	cutoff := st.now().Add(-SessionTTL)
	for id, e := range st.sessions {
		if e.touched.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
	for len(st.sessions) >= MaxSessions {
		var oldestID string
		var oldest time.Time
		for id, e := range st.sessions {
			if oldestID == "" || e.touched.Before(oldest) {
				oldestID, oldest = id, e.touched
			}
		}
		delete(st.sessions, oldestID)
	}
}
