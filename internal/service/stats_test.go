package service

import (
	"context"
	"errors"
	"testing"

	"triviabot/internal/domain/entities"
)

type fakeStatsStore struct {
	users   map[int64]*entities.User
	ranked  []entities.User
	history map[int64][]entities.ScoreHistoryEntry
	quizzes map[int64][]entities.QuizRecord
}

func (s *fakeStatsStore) GetUser(_ context.Context, userID int64) (*entities.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	copied := *u
	return &copied, nil
}

func (s *fakeStatsStore) GetHistory(_ context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error) {
	entries := s.history[userID]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *fakeStatsStore) UsersByScore(_ context.Context, limit int) ([]entities.User, error) {
	users := s.ranked
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (s *fakeStatsStore) RecentQuizzes(_ context.Context, userID int64, limit int) ([]entities.QuizRecord, error) {
	records := s.quizzes[userID]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func TestTopNAssignsRanks(t *testing.T) {
	store := &fakeStatsStore{
		ranked: []entities.User{
			{ID: 1, DisplayName: "alice", Score: 30},
			{ID: 2, DisplayName: "bob", Score: 20},
			{ID: 3, DisplayName: "carol", Score: 20},
			{ID: 4, DisplayName: "dave", Score: 5},
		},
	}
	svc := NewStatsService(store)

	entries, err := svc.TopN(context.Background(), 3)
	if err != nil {
		t.Fatalf("top n: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, e.Rank)
		}
	}
	// Equal scores keep the store's deterministic order.
	if entries[1].UserID != 2 || entries[2].UserID != 3 {
		t.Fatalf("tie break broken: %+v", entries)
	}
}

func TestTopNZeroMeansAll(t *testing.T) {
	store := &fakeStatsStore{
		ranked: []entities.User{
			{ID: 1, Score: 10},
			{ID: 2, Score: 5},
		},
	}
	svc := NewStatsService(store)

	entries, err := svc.TopN(context.Background(), 0)
	if err != nil {
		t.Fatalf("top n: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected all users, got %d", len(entries))
	}
}

func TestUserStatsCountsAndStreak(t *testing.T) {
	// Ledger is newest first: two correct answers, then an admin bump,
	// then a wrong answer breaking an older run of correct ones.
	store := &fakeStatsStore{
		users: map[int64]*entities.User{
			1: {ID: 1, Score: 42},
		},
		history: map[int64][]entities.ScoreHistoryEntry{
			1: {
				{Reason: entities.ReasonCorrect, Delta: 10},
				{Reason: entities.ReasonAdmin, Delta: 5},
				{Reason: entities.ReasonCorrect, Delta: 10},
				{Reason: entities.ReasonIncorrect, Delta: 0},
				{Reason: entities.ReasonCorrect, Delta: 10},
				{Reason: entities.ReasonExpired, Delta: 0},
			},
		},
	}
	svc := NewStatsService(store)

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}

	if stats.Total != 42 {
		t.Fatalf("total = %d, want 42", stats.Total)
	}
	if stats.CorrectCount != 3 {
		t.Fatalf("correct = %d, want 3", stats.CorrectCount)
	}
	// Expired questions count against the user like wrong answers.
	if stats.IncorrectCount != 2 {
		t.Fatalf("incorrect = %d, want 2", stats.IncorrectCount)
	}
	// Admin adjustments do not interrupt the streak.
	if stats.Streak != 2 {
		t.Fatalf("streak = %d, want 2", stats.Streak)
	}
}

func TestUserStatsStreakBrokenImmediately(t *testing.T) {
	store := &fakeStatsStore{
		users: map[int64]*entities.User{1: {ID: 1}},
		history: map[int64][]entities.ScoreHistoryEntry{
			1: {
				{Reason: entities.ReasonExpired},
				{Reason: entities.ReasonCorrect, Delta: 10},
			},
		},
	}
	svc := NewStatsService(store)

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if stats.Streak != 0 {
		t.Fatalf("streak = %d, want 0", stats.Streak)
	}
}
