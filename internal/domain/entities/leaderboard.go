package entities

// LeaderboardEntry is a derived ranked view of a user. It is computed
// on demand and never stored.
type LeaderboardEntry struct {
	UserID      int64
	DisplayName string
	Score       int
	Rank        int
}

// UserStats summarizes a user's quiz performance from the ledger.
type UserStats struct {
	Total          int
	CorrectCount   int
	IncorrectCount int
	Streak         int // consecutive correct answers, counted from the latest entry
}
