package entities

import "time"

// Question is a normalized trivia question as returned by the provider.
type Question struct {
	Text          string
	CorrectAnswer string
	Incorrect     []string // distractor answers
	Category      string
	Difficulty    string // "easy", "medium", "hard"
	Points        int    // suggested point value, 0 means "use scoring default"
}

// QuestionView is the caller-visible presentation of an active session.
// The position of the correct answer is deliberately absent.
type QuestionView struct {
	SessionID  string
	Text       string
	Options    []string // shuffled: distractors plus the correct answer
	Category   string
	Difficulty string
	ExpiresAt  time.Time
}
