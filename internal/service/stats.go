package service

import (
	"context"
	"fmt"

	"triviabot/internal/domain/entities"
)

// StatsService derives ranked and per-user views from committed
// scores. It is read-only and eventually consistent with in-flight
// submissions, which is fine for a display path.
type StatsService struct {
	store StatsStore
}

// NewStatsService creates a StatsService over the given store.
func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// TopN returns the top n users by total score. Ties are broken by
// earliest account creation, so the ordering is deterministic.
func (s *StatsService) TopN(ctx context.Context, n int) ([]entities.LeaderboardEntry, error) {
	users, err := s.store.UsersByScore(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("top n: %w", err)
	}

	entries := make([]entities.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = entities.LeaderboardEntry{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			Score:       u.Score,
			Rank:        i + 1,
		}
	}

	return entries, nil
}

// UserStats summarizes a user's performance by scanning their ledger.
// The streak counts consecutive correct answers starting from the
// most recent quiz entry; admin adjustments are not quiz outcomes and
// do not affect it.
func (s *StatsService) UserStats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	// Newest first; 0 means the full ledger.
	history, err := s.store.GetHistory(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	stats := entities.UserStats{Total: user.Score}
	streakDone := false
	for _, e := range history {
		switch e.Reason {
		case entities.ReasonCorrect:
			stats.CorrectCount++
			if !streakDone {
				stats.Streak++
			}
		case entities.ReasonIncorrect, entities.ReasonExpired:
			stats.IncorrectCount++
			streakDone = true
		}
	}

	return &stats, nil
}

// RecentQuizzes returns the user's latest archived quizzes.
func (s *StatsService) RecentQuizzes(ctx context.Context, userID int64, limit int) ([]entities.QuizRecord, error) {
	records, err := s.store.RecentQuizzes(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent quizzes: %w", err)
	}
	return records, nil
}

// History returns the user's latest ledger entries.
func (s *StatsService) History(ctx context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error) {
	entries, err := s.store.GetHistory(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return entries, nil
}
