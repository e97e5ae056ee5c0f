package entities

import "time"

// ScoreReason explains why a score delta was applied.
type ScoreReason string

const (
	ReasonCorrect   ScoreReason = "correct"
	ReasonIncorrect ScoreReason = "incorrect"
	ReasonExpired   ScoreReason = "expired"
	ReasonAdmin     ScoreReason = "admin-adjustment"
)

// ScoreHistoryEntry is one immutable record in the score ledger.
// A user's total score is always the sum of their entry deltas.
type ScoreHistoryEntry struct {
	ID        int64
	UserID    int64
	Delta     int
	Reason    ScoreReason
	Total     int // resulting total after applying Delta
	CreatedAt time.Time
}

// NewScoreHistoryEntry creates a ledger entry for a user. Total is
// filled in by the store when the entry commits.
func NewScoreHistoryEntry(userID int64, delta int, reason ScoreReason) *ScoreHistoryEntry {
	return &ScoreHistoryEntry{
		UserID: userID,
		Delta:  delta,
		Reason: reason,
	}
}
