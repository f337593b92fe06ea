package entities

import (
	"time"

	"github.com/google/uuid"
)

// Question is a read-only view of the question a session currently shows.
type Question struct {
	Position    int      // zero-based index into the catalog
	Total       int      // catalog length
	Station     Station  // record being asked
	Options     []string // shuffled reading and wrong readings
	Score       int      // correct answers in the current pass
	Revealed    bool     // whether the question was answered already
	LastCorrect bool     // correctness of the answer, meaningful when Revealed
}

// Number returns the one-based question number for display.
func (q Question) Number() int {
	return q.Position + 1
}

// AnswerResult describes the outcome of answering a question.
type AnswerResult struct {
	Position int    // question that was answered
	Selected string // option chosen by the user
	Reading  string // correct reading, shown on reveal
	Correct  bool   // whether Selected equals Reading
	Score    int    // score after the answer
	Total    int    // catalog length
}

// Completion is raised when the last catalog record was answered.
type Completion struct {
	Score int // final score of the pass
	Total int // catalog length
}

// Percentage returns the share of correct answers in percent.
func (c Completion) Percentage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Score) / float64(c.Total) * 100
}

// QuizResult is a finished pass recorded for a chat.
type QuizResult struct {
	ID          uuid.UUID
	ChatID      int64
	Score       int
	Total       int
	CompletedAt time.Time
}

// NewQuizResult creates a result for a completed pass.
func NewQuizResult(chatID int64, c Completion, completedAt time.Time) *QuizResult {
	return &QuizResult{
		ID:          uuid.New(),
		ChatID:      chatID,
		Score:       c.Score,
		Total:       c.Total,
		CompletedAt: completedAt,
	}
}

// ChatStats aggregates finished passes of a chat.
type ChatStats struct {
	ChatID       int64
	Passes       int       // number of finished passes
	BestScore    int       // best score over all passes
	BestTotal    int       // catalog length of the best pass
	LastScore    int       // score of the latest pass
	LastTotal    int       // catalog length of the latest pass
	LastPlayedAt time.Time // completion time of the latest pass

	Recent []QuizResult // latest passes, newest first
}
