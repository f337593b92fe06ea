package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionEvictor drops sessions that were idle for too long.
type SessionEvictor interface {
	EvictIdle(ctx context.Context, idle time.Duration) int
}

// SessionJanitor periodically evicts idle quiz sessions.
type SessionJanitor struct {
	evictor  SessionEvictor
	schedule string
	idle     time.Duration
	logger   *zap.Logger
}

// NewSessionJanitor creates a janitor running on the given cron schedule.
func NewSessionJanitor(evictor SessionEvictor, schedule string, idle time.Duration, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		evictor:  evictor,
		schedule: schedule,
		idle:     idle,
		logger:   logger,
	}
}

// Start schedules the eviction job and blocks until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.schedule, func() { j.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("add janitor job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("idle_ttl", j.idle),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

// RunOnce evicts idle sessions immediately.
func (j *SessionJanitor) RunOnce(ctx context.Context) int {
	n := j.evictor.EvictIdle(ctx, j.idle)
	if n > 0 {
		j.logger.Info("evicted idle quiz sessions", zap.Int("count", n))
	}
	return n
}
