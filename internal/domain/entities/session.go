package entities

import "time"

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	SessionPending   SessionState = "pending"
	SessionAnswered  SessionState = "answered"
	SessionExpired   SessionState = "expired"
	SessionCancelled SessionState = "cancelled"
)

// QuizSession represents a single outstanding quiz question for a user.
// It holds the full question snapshot, including the correct option
// index, which never leaves the session.
type QuizSession struct {
	ID           string
	UserID       int64
	Text         string
	Options      []string // shuffled presentation order
	CorrectIndex int      // index into Options
	Category     string
	Difficulty   string
	Points       int // value of a correct answer, already difficulty-scaled
	State        SessionState
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// NewQuizSession creates a pending session for a user with the given
// question snapshot and answer deadline.
func NewQuizSession(id string, userID int64, q *Question, options []string, correctIndex, points int, now time.Time, deadline time.Duration) *QuizSession {
	return &QuizSession{
		ID:           id,
		UserID:       userID,
		Text:         q.Text,
		Options:      options,
		CorrectIndex: correctIndex,
		Category:     q.Category,
		Difficulty:   q.Difficulty,
		Points:       points,
		State:        SessionPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(deadline),
	}
}

// Answerable reports whether the session can still accept an answer at the given time.
func (s *QuizSession) Answerable(now time.Time) bool {
	return s.State == SessionPending && now.Before(s.ExpiresAt)
}

// View returns the caller-visible payload for the session.
func (s *QuizSession) View() *QuestionView {
	options := make([]string, len(s.Options))
	copy(options, s.Options)

	return &QuestionView{
		SessionID:  s.ID,
		Text:       s.Text,
		Options:    options,
		Category:   s.Category,
		Difficulty: s.Difficulty,
		ExpiresAt:  s.ExpiresAt,
	}
}

// AnswerResult summarizes the outcome of a submitted answer.
type AnswerResult struct {
	Correct       bool
	Delta         int
	CorrectIndex  int
	CorrectAnswer string
	NewTotal      int
}

// QuizRecord is the archived form of a resolved session, kept for the
// user's quiz history.
type QuizRecord struct {
	ID         int64
	UserID     int64
	Text       string
	Answer     string
	Category   string
	Difficulty string
	Outcome    SessionState // answered or expired
	Correct    bool
	Delta      int
	CreatedAt  time.Time
}
