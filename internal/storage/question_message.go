package storage

import "sync"

// QuestionMessages remembers the message that carries the open question of each chat.
type QuestionMessages struct {
	mu       sync.RWMutex
	messages map[int64]int
}

func NewQuestionMessages() *QuestionMessages {
	return &QuestionMessages{
		messages: make(map[int64]int),
	}
}

func (s *QuestionMessages) Get(chatID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.messages[chatID]
	return id, ok
}

func (s *QuestionMessages) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// Swap records messageID for the chat and returns the one it replaces.
func (s *QuestionMessages) Swap(chatID int64, messageID int) (prev int, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]
	s.messages[chatID] = messageID

	return prev, hadPrev
}
