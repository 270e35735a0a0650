package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// SessionPurger deletes sessions that were last saved before a cutoff
type SessionPurger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	purger    SessionPurger
	ttl       time.Duration
	interval  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a new scheduler instance that drops sessions idle for longer
// than ttl, checking every interval.
func New(purger SessionPurger, ttl, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		purger:    purger,
		ttl:       ttl,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks. The first purge runs immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.purgeExpiredSessions)
	if err != nil {
		return fmt.Errorf("failed to schedule session purge: %v", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("session purge scheduled",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval),
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce purges expired sessions right away
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	return s.purger.PurgeExpired(ctx, s.now().Add(-s.ttl))
}

func (s *Scheduler) purgeExpiredSessions() {
	removed, err := s.RunOnce(context.Background())
	if err != nil {
		s.logger.Error("failed to purge expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("purged expired sessions", zap.Int64("count", removed))
	}
}
