package repository

import (
	"context"
	"fmt"

	"triviabot/internal/domain/entities"
	"triviabot/internal/infra/postgres"
)

// HistoryRepository provides access to the append-only score ledger.
type HistoryRepository struct {
	db postgres.DBTX
}

// NewHistoryRepository creates a new HistoryRepository with the provided pool or transaction.
func NewHistoryRepository(db postgres.DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts one ledger entry. Entry.Total must already hold the
// resulting total; ID and CreatedAt are read back from the database.
func (r *HistoryRepository) Append(ctx context.Context, entry *entities.ScoreHistoryEntry) error {
	query := `
		INSERT INTO score_history (user_id, delta, reason, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Delta, entry.Reason, entry.Total).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

// ListByUser returns up to limit ledger entries for a user, newest
// first. A limit of zero or less returns the full ledger.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error) {
	query := `
		SELECT id, user_id, delta, reason, total, created_at
		FROM score_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []entities.ScoreHistoryEntry
	for rows.Next() {
		var e entities.ScoreHistoryEntry
		err = rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.Reason, &e.Total, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}
