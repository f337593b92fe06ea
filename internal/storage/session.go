package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/quiz"
)

type sessionEntry struct {
	session   *quiz.Session
	touchedAt time.Time
}

// SessionStorage provides in-memory storage for quiz sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	now      func() time.Time
	sessions map[int64]*sessionEntry
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		now:      time.Now,
		sessions: make(map[int64]*sessionEntry),
	}
}

// Store saves the session of a chat, replacing any previous one.
func (s *SessionStorage) Store(chatID int64, session *quiz.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = &sessionEntry{session: session, touchedAt: s.now()}
}

// Get retrieves the session of a chat and marks it as recently used.
func (s *SessionStorage) Get(chatID int64) (*quiz.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}
	e.touchedAt = s.now()
	return e.session, true
}

// Delete removes the session of a chat.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions last used before the given time and returns how many were removed.
func (s *SessionStorage) EvictIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for chatID, e := range s.sessions {
		if e.touchedAt.Before(before) {
			delete(s.sessions, chatID)
			evicted++
		}
	}
	return evicted
}
