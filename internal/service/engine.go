package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"time"

	"go.uber.org/zap"

	"triviabot/internal/domain/entities"
)

// EngineConfig carries the session parameters of the engine.
type EngineConfig struct {
	AnswerDeadline  time.Duration // how long a question stays answerable
	MinOptions      int           // presented options, correct answer included
	ProviderTimeout time.Duration // bounded wait for one provider fetch
	Scoring         Scoring
}

// SessionEngine owns all active quiz attempts. It enforces the
// one-pending-session-per-user invariant, validates answers exactly
// once, and commits score deltas through the ledger.
type SessionEngine struct {
	provider QuestionProvider
	store    Store
	cfg      EngineConfig
	logger   *zap.Logger
	registry *sessionRegistry

	now func() time.Time
}

// NewSessionEngine creates a SessionEngine with an empty session registry.
func NewSessionEngine(provider QuestionProvider, store Store, cfg EngineConfig, logger *zap.Logger) *SessionEngine {
	return &SessionEngine{
		provider: provider,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		registry: newSessionRegistry(),
		now:      time.Now,
	}
}

// StartQuiz fetches a question and opens a pending session for the
// user. An unresolved previous session is cancelled: a new request
// always supersedes it, with no score effect. The provider call runs
// before the registry critical section so a slow upstream never
// blocks other operations for the same user.
func (e *SessionEngine) StartQuiz(ctx context.Context, userID int64, category, difficulty string) (*entities.QuestionView, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	q, err := e.provider.FetchQuestion(fetchCtx, category, difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	distractors := distinctDistractors(q.CorrectAnswer, q.Incorrect)
	if len(distractors) < e.cfg.MinOptions-1 {
		return nil, fmt.Errorf("%w: only %d usable distractors", ErrProviderUnavailable, len(distractors))
	}

	options, correctIndex := shuffleOptions(q.CorrectAnswer, distractors[:e.cfg.MinOptions-1])

	now := e.now()
	session := entities.NewQuizSession(
		newSessionID(),
		userID,
		q,
		options,
		correctIndex,
		e.cfg.Scoring.Points(q),
		now,
		e.cfg.AnswerDeadline,
	)

	slot := e.registry.slot(userID)
	slot.mu.Lock()
	if old := slot.session; old != nil && old.State == entities.SessionPending {
		old.State = entities.SessionCancelled
		e.logger.Debug("superseded pending session",
			zap.Int64("user_id", userID),
			zap.String("session_id", old.ID),
		)
	}
	slot.session = session
	slot.mu.Unlock()

	e.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.String("category", session.Category),
		zap.String("difficulty", session.Difficulty),
	)

	return session.View(), nil
}

// SubmitAnswer resolves a pending session with the chosen option.
// A session that is already answered, expired, cancelled, or unknown
// yields ErrSessionNotFound, so a duplicated or raced submission can
// never score twice. A submission past the deadline expires the
// session with a zero-delta ledger entry and returns
// ErrSessionExpired.
func (e *SessionEngine) SubmitAnswer(ctx context.Context, userID int64, sessionID string, chosen int) (*entities.AnswerResult, error) {
	slot := e.registry.slot(userID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	s := slot.session
	if s == nil || s.ID != sessionID || s.State != entities.SessionPending {
		return nil, ErrSessionNotFound
	}

	now := e.now()
	if !now.Before(s.ExpiresAt) {
		if err := e.expireLocked(ctx, slot, s); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}

	if chosen < 0 || chosen >= len(s.Options) {
		return nil, fmt.Errorf("option index %d out of range", chosen)
	}

	correct := chosen == s.CorrectIndex
	delta := e.cfg.Scoring.Delta(correct, s.Points)

	reason := entities.ReasonCorrect
	if !correct {
		reason = entities.ReasonIncorrect
	}

	entry := entities.NewScoreHistoryEntry(userID, delta, reason)
	total, err := e.store.CommitResolution(ctx, entry, &entities.QuizRecord{
		UserID:     userID,
		Text:       s.Text,
		Answer:     s.Options[s.CorrectIndex],
		Category:   s.Category,
		Difficulty: s.Difficulty,
		Outcome:    entities.SessionAnswered,
		Correct:    correct,
		Delta:      delta,
	})
	if err != nil {
		// The session stays pending: nothing was committed, and the
		// user may retry before the deadline.
		return nil, fmt.Errorf("commit answer: %w", err)
	}

	s.State = entities.SessionAnswered
	slot.session = nil

	e.logger.Info("answer resolved",
		zap.Int64("user_id", userID),
		zap.String("session_id", s.ID),
		zap.Bool("correct", correct),
		zap.Int("delta", delta),
	)

	return &entities.AnswerResult{
		Correct:       correct,
		Delta:         delta,
		CorrectIndex:  s.CorrectIndex,
		CorrectAnswer: s.Options[s.CorrectIndex],
		NewTotal:      total,
	}, nil
}

// ExpireStaleSessions transitions every pending session past its
// deadline to expired, each with a zero-delta ledger entry. Safe to
// run concurrently with itself and with submissions: a session
// claimed by a racing submit is simply skipped. Returns the number of
// sessions expired.
func (e *SessionEngine) ExpireStaleSessions(ctx context.Context, now time.Time) int {
	count := 0
	for _, userID := range e.registry.userIDs() {
		slot := e.registry.slot(userID)
		slot.mu.Lock()
		s := slot.session
		if s != nil && s.State == entities.SessionPending && !now.Before(s.ExpiresAt) {
			if err := e.expireLocked(ctx, slot, s); err != nil {
				e.logger.Error("failed to expire session",
					zap.Int64("user_id", userID),
					zap.String("session_id", s.ID),
					zap.Error(err),
				)
			} else {
				count++
			}
		}
		slot.mu.Unlock()
	}
	return count
}

// expireLocked commits the zero-delta expiry for a pending session.
// The caller must hold the slot lock. On storage failure the session
// stays pending so a later sweep can retry.
func (e *SessionEngine) expireLocked(ctx context.Context, slot *userSlot, s *entities.QuizSession) error {
	entry := entities.NewScoreHistoryEntry(s.UserID, 0, entities.ReasonExpired)
	_, err := e.store.CommitResolution(ctx, entry, &entities.QuizRecord{
		UserID:     s.UserID,
		Text:       s.Text,
		Answer:     s.Options[s.CorrectIndex],
		Category:   s.Category,
		Difficulty: s.Difficulty,
		Outcome:    entities.SessionExpired,
		Correct:    false,
		Delta:      0,
	})
	if err != nil {
		return fmt.Errorf("commit expiry: %w", err)
	}

	s.State = entities.SessionExpired
	slot.session = nil
	return nil
}

// CancelActive aborts the user's pending session, if any, with no
// score effect. Reports whether a session was cancelled.
func (e *SessionEngine) CancelActive(userID int64) bool {
	slot := e.registry.slot(userID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	s := slot.session
	if s == nil || s.State != entities.SessionPending {
		return false
	}

	s.State = entities.SessionCancelled
	slot.session = nil
	return true
}

// AdjustScore applies an admin-driven delta through the same ledger
// path as quiz-driven score changes. Returns the new total.
func (e *SessionEngine) AdjustScore(ctx context.Context, userID int64, delta int) (int, error) {
	entry := entities.NewScoreHistoryEntry(userID, delta, entities.ReasonAdmin)
	total, err := e.store.AppendHistory(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("adjust score: %w", err)
	}

	e.logger.Info("score adjusted",
		zap.Int64("user_id", userID),
		zap.Int("delta", delta),
		zap.Int("total", total),
	)

	return total, nil
}

// ResetScore brings the user's total back to zero by appending a
// compensating ledger entry. Deltas always flow through the ledger,
// so the entry sum stays equal to the total.
func (e *SessionEngine) ResetScore(ctx context.Context, userID int64) (int, error) {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("reset score: %w", err)
	}

	if user.Score == 0 {
		return 0, nil
	}

	return e.AdjustScore(ctx, userID, -user.Score)
}

// distinctDistractors drops distractors that duplicate each other or
// the correct answer, so every presented option is distinguishable.
func distinctDistractors(correct string, candidates []string) []string {
	seen := map[string]bool{correct: true}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// shuffleOptions randomizes the presentation order of the correct
// answer and its distractors, returning the options and the position
// of the correct answer.
func shuffleOptions(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	mrand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}

func newSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
