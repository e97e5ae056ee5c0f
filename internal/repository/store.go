package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"triviabot/internal/domain/entities"
	"triviabot/internal/infra/postgres"
)

// Store is the persistence facade the services work against. It owns
// the transactional boundary: a score delta and its ledger entry (and,
// for session resolutions, the archived quiz record) commit together
// or not at all.
type Store struct {
	pool *pgxpool.Pool
	tr   *postgres.Transactor

	users   *UserRepository
	history *HistoryRepository
	quizzes *QuizRepository
}

// NewStore creates a Store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		tr:      postgres.NewTransactor(pool),
		users:   NewUserRepository(pool),
		history: NewHistoryRepository(pool),
		quizzes: NewQuizRepository(pool),
	}
}

// UpsertUser inserts or refreshes a user record.
func (s *Store) UpsertUser(ctx context.Context, user *entities.User) error {
	return s.users.Upsert(ctx, user)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	return s.users.Get(ctx, userID)
}

// AppendHistory applies the entry's delta to the user's score and
// appends the ledger entry in a single transaction. The resulting
// total is written back to the entry and returned.
func (s *Store) AppendHistory(ctx context.Context, entry *entities.ScoreHistoryEntry) (int, error) {
	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return appendEntry(ctx, tx, entry)
	})
	if err != nil {
		return 0, err
	}

	return entry.Total, nil
}

// CommitResolution commits a session resolution: score delta, ledger
// entry and archived quiz record in one transaction.
func (s *Store) CommitResolution(ctx context.Context, entry *entities.ScoreHistoryEntry, rec *entities.QuizRecord) (int, error) {
	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := appendEntry(ctx, tx, entry); err != nil {
			return err
		}
		return NewQuizRepository(tx).Archive(ctx, rec)
	})
	if err != nil {
		return 0, err
	}

	return entry.Total, nil
}

func appendEntry(ctx context.Context, tx pgx.Tx, entry *entities.ScoreHistoryEntry) error {
	total, err := NewUserRepository(tx).ApplyDelta(ctx, entry.UserID, entry.Delta)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}

	entry.Total = total
	return NewHistoryRepository(tx).Append(ctx, entry)
}

// GetHistory returns up to limit ledger entries for a user, newest first.
func (s *Store) GetHistory(ctx context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error) {
	return s.history.ListByUser(ctx, userID, limit)
}

// UsersByScore returns up to limit users ordered by score descending,
// ties broken by earliest account creation.
func (s *Store) UsersByScore(ctx context.Context, limit int) ([]entities.User, error) {
	return s.users.ListByScore(ctx, limit)
}

// RecentQuizzes returns a user's most recent archived quizzes.
func (s *Store) RecentQuizzes(ctx context.Context, userID int64, limit int) ([]entities.QuizRecord, error) {
	return s.quizzes.ListRecent(ctx, userID, limit)
}

// SetDailyQuiz toggles the daily quiz subscription for a user.
func (s *Store) SetDailyQuiz(ctx context.Context, userID int64, enabled bool) error {
	return s.users.SetDailyQuiz(ctx, userID, enabled)
}

// DailySubscribers returns users subscribed to the daily quiz.
func (s *Store) DailySubscribers(ctx context.Context) ([]entities.User, error) {
	return s.users.ListDailySubscribers(ctx)
}
