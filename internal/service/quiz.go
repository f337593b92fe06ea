package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/quiz"
)

var (
	ErrNoActiveSession = errors.New("no active quiz session")
	ErrStaleQuestion   = errors.New("question is no longer current")
	ErrStatsDisabled   = errors.New("quiz statistics are disabled")
)

const recentResultsLimit = 3

// QuizService runs one quiz session per chat over the shared catalog.
type QuizService struct {
	catalog  CatalogSource
	sessions SessionStorage
	results  ResultRepository
	logger   *zap.Logger

	now     func() time.Time
	newRand func() *rand.Rand

	mu sync.Mutex
}

// NewQuizService creates a new QuizService. results may be nil, in which case
// finished passes are not recorded.
func NewQuizService(
	catalog CatalogSource,
	sessions SessionStorage,
	results ResultRepository,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		catalog:  catalog,
		sessions: sessions,
		results:  results,
		logger:   logger,
		now:      time.Now,
		newRand:  quiz.NewRand,
	}
}

// Start begins a new pass for the chat, replacing any previous session.
func (s *QuizService) Start(_ context.Context, chatID int64) (*entities.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.catalog.Catalog()
	if err != nil {
		return nil, err
	}

	session := quiz.NewSession(s.newRand())
	if err := session.Initialize(c); err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	s.sessions.Store(chatID, session)

	s.logger.Debug("quiz session started",
		zap.Int64("chat_id", chatID),
		zap.Int("total_questions", c.Len()),
	)

	return session.Snapshot()
}

// Current returns the question the chat is on.
func (s *QuizService) Current(_ context.Context, chatID int64) (*entities.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.Get(chatID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session.Snapshot()
}

// Answer selects the option at optionIndex for the question at position.
func (s *QuizService) Answer(
	_ context.Context,
	chatID int64,
	position int,
	optionIndex int,
) (*entities.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.currentSession(chatID, position)
	if err != nil {
		return nil, err
	}

	res, err := session.AnswerIndex(optionIndex)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("quiz answer checked",
		zap.Int64("chat_id", chatID),
		zap.Int("position", position),
		zap.Bool("correct", res.Correct),
		zap.Int("score", res.Score),
	)

	return res, nil
}

// Advance moves the chat from the revealed question at position to the next one.
// At the end of the catalog the completion is returned along with the first
// question of the next pass.
func (s *QuizService) Advance(
	ctx context.Context,
	chatID int64,
	position int,
) (*entities.Question, *entities.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.currentSession(chatID, position)
	if err != nil {
		return nil, nil, err
	}

	completion, err := session.Advance()
	if err != nil {
		return nil, nil, err
	}

	if completion != nil {
		s.logger.Info("quiz pass completed",
			zap.Int64("chat_id", chatID),
			zap.Int("score", completion.Score),
			zap.Int("total", completion.Total),
		)
		s.record(ctx, chatID, *completion)
	}

	q, err := session.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	return q, completion, nil
}

// Stats returns the recorded history of the chat with its latest passes.
func (s *QuizService) Stats(ctx context.Context, chatID int64) (*entities.ChatStats, error) {
	if s.results == nil {
		return nil, ErrStatsDisabled
	}

	stats, err := s.results.GetStats(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if stats.Passes == 0 {
		return stats, nil
	}

	recent, err := s.results.Recent(ctx, chatID, recentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("get recent results: %w", err)
	}
	stats.Recent = recent

	return stats, nil
}

// EvictIdle drops sessions that were not used for longer than idle.
func (s *QuizService) EvictIdle(_ context.Context, idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.EvictIdle(s.now().Add(-idle))
}

func (s *QuizService) currentSession(chatID int64, position int) (*quiz.Session, error) {
	session, ok := s.sessions.Get(chatID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	if session.Position() != position {
		return nil, fmt.Errorf("%w: got %d, current %d", ErrStaleQuestion, position, session.Position())
	}
	return session, nil
}

func (s *QuizService) record(ctx context.Context, chatID int64, c entities.Completion) {
	if s.results == nil {
		return
	}

	result := entities.NewQuizResult(chatID, c, s.now())
	if err := s.results.Save(ctx, result); err != nil {
		s.logger.Error("failed to save quiz result",
			zap.Int64("chat_id", chatID),
			zap.String("result_id", result.ID.String()),
			zap.Error(err),
		)
	}
}
