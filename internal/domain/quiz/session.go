// Package quiz implements the quiz session state machine over a station catalog.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

var (
	ErrNotInitialized    = errors.New("quiz session is not initialized")
	ErrInvalidTransition = errors.New("invalid quiz session transition")
	ErrOptionOutOfRange  = errors.New("option index out of range")
)

// State is a quiz session state.
type State int

const (
	StateLoading State = iota
	StateAwaitingAnswer
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateRevealed:
		return "revealed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session walks a catalog one station at a time and keeps the score.
// It is not safe for concurrent use.
type Session struct {
	rng     *rand.Rand
	catalog *entities.Catalog

	state       State
	position    int
	options     []string
	score       int
	lastCorrect bool
	passes      int
}

// NewSession creates a session in the loading state.
// A nil rng is replaced by a time-seeded one.
func NewSession(rng *rand.Rand) *Session {
	if rng == nil {
		rng = NewRand()
	}
	return &Session{rng: rng, state: StateLoading}
}

// Initialize starts the first pass over catalog.
func (s *Session) Initialize(catalog *entities.Catalog) error {
	if catalog == nil || catalog.Len() == 0 {
		return entities.ErrEmptyCatalog
	}

	s.catalog = catalog
	s.passes = 0
	s.restart()

	return nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Position returns the index of the current station.
func (s *Session) Position() int {
	return s.position
}

// Score returns the number of correct answers in the current pass.
func (s *Session) Score() int {
	return s.score
}

// Passes returns how many passes were completed.
func (s *Session) Passes() int {
	return s.passes
}

// Options returns a copy of the current options.
func (s *Session) Options() []string {
	return append([]string(nil), s.options...)
}

// Answer scores selected against the current station.
// Only one answer per question is accepted.
func (s *Session) Answer(selected string) (*entities.AnswerResult, error) {
	switch s.state {
	case StateLoading:
		return nil, ErrNotInitialized
	case StateRevealed:
		return nil, fmt.Errorf("%w: question %d already answered", ErrInvalidTransition, s.position+1)
	}

	station := s.catalog.At(s.position)
	correct := selected == station.Reading
	if correct {
		s.score++
	}
	s.lastCorrect = correct
	s.state = StateRevealed

	return &entities.AnswerResult{
		Position: s.position,
		Selected: selected,
		Reading:  station.Reading,
		Correct:  correct,
		Score:    s.score,
		Total:    s.catalog.Len(),
	}, nil
}

// AnswerIndex answers with the option at index i.
func (s *Session) AnswerIndex(i int) (*entities.AnswerResult, error) {
	if s.state == StateLoading {
		return nil, ErrNotInitialized
	}
	if i < 0 || i >= len(s.options) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, i, len(s.options))
	}
	return s.Answer(s.options[i])
}

// Advance moves to the next station. After the last station it returns the
// completion of the pass and starts a new one at the first station.
func (s *Session) Advance() (*entities.Completion, error) {
	switch s.state {
	case StateLoading:
		return nil, ErrNotInitialized
	case StateAwaitingAnswer:
		return nil, fmt.Errorf("%w: question %d not answered", ErrInvalidTransition, s.position+1)
	}

	if s.position+1 < s.catalog.Len() {
		s.position++
		s.options = BuildOptions(s.rng, s.catalog.At(s.position))
		s.lastCorrect = false
		s.state = StateAwaitingAnswer
		return nil, nil
	}

	completion := &entities.Completion{Score: s.score, Total: s.catalog.Len()}
	s.passes++
	s.restart()

	return completion, nil
}

// Snapshot returns a view of the current question.
func (s *Session) Snapshot() (*entities.Question, error) {
	if s.state == StateLoading {
		return nil, ErrNotInitialized
	}

	return &entities.Question{
		Position:    s.position,
		Total:       s.catalog.Len(),
		Station:     s.catalog.At(s.position),
		Options:     s.Options(),
		Score:       s.score,
		Revealed:    s.state == StateRevealed,
		LastCorrect: s.lastCorrect,
	}, nil
}

func (s *Session) restart() {
	s.position = 0
	s.score = 0
	s.lastCorrect = false
	s.options = BuildOptions(s.rng, s.catalog.At(0))
	s.state = StateAwaitingAnswer
}
