package repository

import (
	"context"
	"fmt"

	"triviabot/internal/domain/entities"
	"triviabot/internal/infra/postgres"
)

// QuizRepository stores archived quiz records for resolved sessions.
type QuizRepository struct {
	db postgres.DBTX
}

// NewQuizRepository creates a new QuizRepository with the provided pool or transaction.
func NewQuizRepository(db postgres.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// Archive inserts the record of a resolved session.
func (r *QuizRepository) Archive(ctx context.Context, rec *entities.QuizRecord) error {
	query := `
		INSERT INTO quizzes (user_id, question, answer, category, difficulty, outcome, correct, delta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		rec.UserID,
		rec.Text,
		rec.Answer,
		rec.Category,
		rec.Difficulty,
		rec.Outcome,
		rec.Correct,
		rec.Delta,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("archive quiz: %w", err)
	}

	return nil
}

// ListRecent returns up to limit archived quizzes for a user, newest first.
func (r *QuizRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]entities.QuizRecord, error) {
	query := `
		SELECT id, user_id, question, answer, category, difficulty, outcome, correct, delta, created_at
		FROM quizzes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent quizzes: %w", err)
	}
	defer rows.Close()

	var records []entities.QuizRecord
	for rows.Next() {
		var rec entities.QuizRecord
		err = rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Text,
			&rec.Answer,
			&rec.Category,
			&rec.Difficulty,
			&rec.Outcome,
			&rec.Correct,
			&rec.Delta,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list recent quizzes: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent quizzes: %w", err)
	}

	return records, nil
}
