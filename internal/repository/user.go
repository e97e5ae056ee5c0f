package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"triviabot/internal/domain/entities"
	"triviabot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided pool or transaction.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts a new user or refreshes chat id and display name of an
// existing one. Score is never touched here; it only moves through the
// ledger. Score, DailyQuiz and CreatedAt are read back from the database.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			display_name = EXCLUDED.display_name
		RETURNING score, daily_quiz, created_at
	`

	err := r.db.QueryRow(ctx, query, user.ID, user.ChatID, user.DisplayName).
		Scan(&user.Score, &user.DailyQuiz, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID. Returns ErrUserNotFound if the user does not exist.
func (r *UserRepository) Get(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, display_name, score, daily_quiz, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.ChatID,
		&user.DisplayName,
		&user.Score,
		&user.DailyQuiz,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// ApplyDelta adds a signed delta to the user's score and returns the
// resulting total. Meant to run inside the same transaction as the
// matching ledger append.
func (r *UserRepository) ApplyDelta(ctx context.Context, userID int64, delta int) (int, error) {
	query := `UPDATE users SET score = score + $2 WHERE id = $1 RETURNING score`

	var total int
	err := r.db.QueryRow(ctx, query, userID, delta).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("apply score delta: %w", err)
	}

	return total, nil
}

// ListByScore returns up to limit users ordered by score descending,
// ties broken by earliest account creation. A limit of zero or less
// returns all users.
func (r *UserRepository) ListByScore(ctx context.Context, limit int) ([]entities.User, error) {
	query := `
		SELECT id, chat_id, display_name, score, daily_quiz, created_at
		FROM users
		ORDER BY score DESC, created_at ASC
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users by score: %w", err)
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		err = rows.Scan(&u.ID, &u.ChatID, &u.DisplayName, &u.Score, &u.DailyQuiz, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list users by score: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users by score: %w", err)
	}

	return users, nil
}

// SetDailyQuiz toggles the daily scheduled quiz subscription for a user.
func (r *UserRepository) SetDailyQuiz(ctx context.Context, userID int64, enabled bool) error {
	query := `UPDATE users SET daily_quiz = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, enabled)
	if err != nil {
		return fmt.Errorf("set daily quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListDailySubscribers returns users subscribed to the daily quiz.
func (r *UserRepository) ListDailySubscribers(ctx context.Context) ([]entities.User, error) {
	query := `
		SELECT id, chat_id, display_name, score, daily_quiz, created_at
		FROM users
		WHERE daily_quiz
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list daily subscribers: %w", err)
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		err = rows.Scan(&u.ID, &u.ChatID, &u.DisplayName, &u.Score, &u.DailyQuiz, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list daily subscribers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list daily subscribers: %w", err)
	}

	return users, nil
}
