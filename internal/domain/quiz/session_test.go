package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

func mustCatalog(t *testing.T, stations ...entities.Station) *entities.Catalog {
	t.Helper()
	c, err := entities.NewCatalog(stations)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func twoStationCatalog(t *testing.T) *entities.Catalog {
	return mustCatalog(t,
		entities.Station{StationID: 1, StationName: "安足間", Reading: "あ", WrongReadings: []string{"い"}},
		entities.Station{StationID: 2, StationName: "雨竜", Reading: "う", WrongReadings: []string{"え"}},
	)
}

func newTestSession(t *testing.T, c *entities.Catalog) *Session {
	t.Helper()
	s := NewSession(rand.New(rand.NewSource(3)))
	if err := s.Initialize(c); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s
}

// TestSessionStartsLoading verifies operations are rejected before initialization.
func TestSessionStartsLoading(t *testing.T) {
	s := NewSession(nil)
	if s.State() != StateLoading {
		t.Fatalf("expected loading, got %s", s.State())
	}
	if _, err := s.Answer("あ"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected not initialized on answer, got %v", err)
	}
	if _, err := s.Advance(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected not initialized on advance, got %v", err)
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected not initialized on snapshot, got %v", err)
	}
}

// TestSessionInitializeRejectsEmptyCatalog verifies the empty catalog policy.
func TestSessionInitializeRejectsEmptyCatalog(t *testing.T) {
	s := NewSession(nil)
	if err := s.Initialize(nil); !errors.Is(err, entities.ErrEmptyCatalog) {
		t.Fatalf("expected empty catalog error, got %v", err)
	}
	if s.State() != StateLoading {
		t.Fatalf("expected session to stay loading, got %s", s.State())
	}
}

// TestSessionInitialize verifies the first question is prepared.
func TestSessionInitialize(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	if s.State() != StateAwaitingAnswer {
		t.Fatalf("expected awaiting answer, got %s", s.State())
	}
	q, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if q.Position != 0 || q.Score != 0 || q.Total != 2 || q.Revealed {
		t.Fatalf("unexpected initial question %+v", q)
	}
	if q.Station.StationID != 1 {
		t.Fatalf("expected station 1, got %d", q.Station.StationID)
	}
	if len(q.Options) != 2 || CorrectIndex(q.Options, "あ") < 0 {
		t.Fatalf("unexpected options %v", q.Options)
	}
}

// TestSessionAnswerCorrect verifies a correct answer increments the score.
func TestSessionAnswerCorrect(t *testing.T) {
	c := mustCatalog(t, entities.Station{StationID: 1, Reading: "A", WrongReadings: []string{"B", "C"}})
	s := newTestSession(t, c)

	res, err := s.Answer("A")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !res.Correct || res.Score != 1 || s.Score() != 1 {
		t.Fatalf("expected correct answer with score 1, got %+v", res)
	}
	if s.State() != StateRevealed {
		t.Fatalf("expected revealed, got %s", s.State())
	}
}

// TestSessionAnswerWrongRevealsReading verifies a wrong answer keeps the score and reveals the reading.
func TestSessionAnswerWrongRevealsReading(t *testing.T) {
	c := mustCatalog(t, entities.Station{StationID: 1, Reading: "A", WrongReadings: []string{"B", "C"}})
	s := newTestSession(t, c)

	res, err := s.Answer("B")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.Correct || res.Score != 0 {
		t.Fatalf("expected wrong answer with score 0, got %+v", res)
	}
	if res.Reading != "A" {
		t.Fatalf("expected reading A to be revealed, got %q", res.Reading)
	}

	q, _ := s.Snapshot()
	if !q.Revealed || q.LastCorrect {
		t.Fatalf("expected revealed wrong answer, got %+v", q)
	}
}

// TestSessionRejectsSecondAnswer verifies answering twice cannot inflate the score.
func TestSessionRejectsSecondAnswer(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	if _, err := s.Answer("あ"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := s.Answer("あ"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
}

// TestSessionRejectsAdvanceBeforeAnswer verifies advance requires a revealed question.
func TestSessionRejectsAdvanceBeforeAnswer(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	if _, err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if s.Position() != 0 {
		t.Fatalf("expected position 0, got %d", s.Position())
	}
}

// TestSessionAnswerIndex verifies index-based answers and range checks.
func TestSessionAnswerIndex(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	if _, err := s.AnswerIndex(2); !errors.Is(err, ErrOptionOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if s.State() != StateAwaitingAnswer {
		t.Fatalf("expected awaiting answer after rejected index, got %s", s.State())
	}

	idx := CorrectIndex(s.Options(), "あ")
	res, err := s.AnswerIndex(idx)
	if err != nil {
		t.Fatalf("answer index: %v", err)
	}
	if !res.Correct {
		t.Fatalf("expected correct answer at index %d", idx)
	}
}

// TestSessionTwoStationScenario walks the two-station sequence through a full cycle.
func TestSessionTwoStationScenario(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	res, err := s.Answer("あ")
	if err != nil || res.Score != 1 || s.State() != StateRevealed {
		t.Fatalf("first answer: %+v, %v", res, err)
	}

	completion, err := s.Advance()
	if err != nil || completion != nil {
		t.Fatalf("first advance: %+v, %v", completion, err)
	}
	if s.Position() != 1 || s.State() != StateAwaitingAnswer {
		t.Fatalf("expected position 1 awaiting answer, got %d %s", s.Position(), s.State())
	}

	res, err = s.Answer("え")
	if err != nil || res.Correct || res.Score != 1 {
		t.Fatalf("second answer: %+v, %v", res, err)
	}

	completion, err = s.Advance()
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if completion == nil || completion.Score != 1 || completion.Total != 2 {
		t.Fatalf("expected completion 1/2, got %+v", completion)
	}
	if s.Position() != 0 || s.Score() != 0 || s.State() != StateAwaitingAnswer {
		t.Fatalf("expected reset to position 0 score 0, got %d %d %s", s.Position(), s.Score(), s.State())
	}
	if s.Passes() != 1 {
		t.Fatalf("expected 1 pass, got %d", s.Passes())
	}
	if len(s.Options()) != 2 {
		t.Fatalf("expected options rebuilt for station 1, got %v", s.Options())
	}
}

// TestSessionScoreMatchesSelections verifies the final score counts matching selections.
func TestSessionScoreMatchesSelections(t *testing.T) {
	stations := []entities.Station{
		{StationID: 1, Reading: "a", WrongReadings: []string{"x"}},
		{StationID: 2, Reading: "b", WrongReadings: []string{"y"}},
		{StationID: 3, Reading: "c", WrongReadings: []string{"z"}},
		{StationID: 4, Reading: "d", WrongReadings: []string{"w"}},
	}
	answers := []string{"a", "y", "c", "d"}
	s := newTestSession(t, mustCatalog(t, stations...))

	var completion *entities.Completion
	for _, a := range answers {
		if _, err := s.Answer(a); err != nil {
			t.Fatalf("answer %q: %v", a, err)
		}
		var err error
		completion, err = s.Advance()
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if completion == nil || completion.Score != 3 || completion.Total != 4 {
		t.Fatalf("expected completion 3/4, got %+v", completion)
	}
	if s.Position() != 0 || s.Score() != 0 {
		t.Fatalf("expected cycle reset, got position %d score %d", s.Position(), s.Score())
	}
}

// TestSessionOptionsAreCopies verifies callers cannot mutate session options.
func TestSessionOptionsAreCopies(t *testing.T) {
	s := newTestSession(t, twoStationCatalog(t))

	opts := s.Options()
	opts[0] = "かいざん"
	if CorrectIndex(s.Options(), "あ") < 0 {
		t.Fatalf("session options were mutated: %v", s.Options())
	}
}
