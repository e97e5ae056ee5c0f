package service

import (
	"context"
	"errors"

	"triviabot/internal/domain/entities"
)

// Core error taxonomy. Races between two submissions for the same
// session resolve to ErrSessionNotFound for the loser; that is an
// expected outcome, not a fault.
var (
	ErrSessionNotFound     = errors.New("no answerable session")
	ErrSessionExpired      = errors.New("session expired")
	ErrProviderUnavailable = errors.New("question provider unavailable")
)

// QuestionProvider supplies normalized trivia questions. Empty
// category or difficulty means "any".
type QuestionProvider interface {
	FetchQuestion(ctx context.Context, category, difficulty string) (*entities.Question, error)
}

// Store is the persistence contract of the session engine. Both
// AppendHistory and CommitResolution must apply the score delta and
// the ledger entry atomically; no score change bypasses the ledger.
type Store interface {
	UpsertUser(ctx context.Context, user *entities.User) error
	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	AppendHistory(ctx context.Context, entry *entities.ScoreHistoryEntry) (int, error)
	CommitResolution(ctx context.Context, entry *entities.ScoreHistoryEntry, rec *entities.QuizRecord) (int, error)
}

// StatsStore is the read-only contract of the leaderboard aggregator.
type StatsStore interface {
	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	GetHistory(ctx context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error)
	UsersByScore(ctx context.Context, limit int) ([]entities.User, error)
	RecentQuizzes(ctx context.Context, userID int64, limit int) ([]entities.QuizRecord, error)
}

// ScheduleStore manages daily quiz subscriptions.
type ScheduleStore interface {
	SetDailyQuiz(ctx context.Context, userID int64, enabled bool) error
	DailySubscribers(ctx context.Context) ([]entities.User, error)
}

// QuizNotifier delivers a scheduled quiz question to a chat.
type QuizNotifier interface {
	SendQuiz(chatID int64, view *entities.QuestionView) error
}
