package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the two periodic jobs: the sweep that expires
// stale sessions, and the daily quiz sent to subscribed users.
type Scheduler struct {
	engine   *SessionEngine
	store    ScheduleStore
	notifier QuizNotifier
	logger   *zap.Logger

	sweepInterval time.Duration
	dailyHour     int // UTC
}

// NewScheduler creates a Scheduler. The notifier is set later, once
// the delivery layer exists.
func NewScheduler(engine *SessionEngine, store ScheduleStore, sweepInterval time.Duration, dailyHour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		engine:        engine,
		store:         store,
		logger:        logger,
		sweepInterval: sweepInterval,
		dailyHour:     dailyHour,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *Scheduler) SetNotifier(notifier QuizNotifier) {
	s.notifier = notifier
}

// Subscribe toggles the daily quiz for a user.
func (s *Scheduler) Subscribe(ctx context.Context, userID int64, enabled bool) error {
	return s.store.SetDailyQuiz(ctx, userID, enabled)
}

// Start runs the cron loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started",
		zap.Duration("sweep_interval", s.sweepInterval),
		zap.Int("daily_hour", s.dailyHour),
	)

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.sweepInterval), func() {
		if n := s.engine.ExpireStaleSessions(ctx, time.Now().UTC()); n > 0 {
			s.logger.Info("expired stale sessions", zap.Int("count", n))
		}
	})
	if err != nil {
		s.logger.Error("failed to add sweep job", zap.Error(err))
		return
	}

	_, err = c.AddFunc(fmt.Sprintf("0 %d * * *", s.dailyHour), func() {
		if err := s.sendDailyQuizzes(ctx); err != nil {
			s.logger.Error("failed to send daily quizzes", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add daily quiz job", zap.Error(err))
		return
	}

	c.Start()

	<-ctx.Done()

	c.Stop()
	s.logger.Info("scheduler stopped")
}

// sendDailyQuizzes starts a quiz for every subscribed user and pushes
// the question to their chat. Per-user failures are logged and do not
// stop the batch.
func (s *Scheduler) sendDailyQuizzes(ctx context.Context) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not set")
	}

	subscribers, err := s.store.DailySubscribers(ctx)
	if err != nil {
		return fmt.Errorf("daily subscribers: %w", err)
	}

	sent := 0
	for _, u := range subscribers {
		view, err := s.engine.StartQuiz(ctx, u.ID, "", "")
		if err != nil {
			s.logger.Warn("daily quiz start failed",
				zap.Int64("user_id", u.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.notifier.SendQuiz(u.ChatID, view); err != nil {
			s.logger.Warn("daily quiz send failed",
				zap.Int64("user_id", u.ID),
				zap.Error(err),
			)
			// The session stays pending; it will expire on its own.
			continue
		}
		sent++
	}

	s.logger.Info("daily quizzes sent",
		zap.Int("subscribers", len(subscribers)),
		zap.Int("sent", sent),
	)

	return nil
}
