package entities

import (
	"testing"
	"time"
)

func TestQuizSessionAnswerable(t *testing.T) {
	now := time.Now()
	q := &Question{Text: "q", CorrectAnswer: "a", Category: "general", Difficulty: "easy"}
	s := NewQuizSession("s1", 1, q, []string{"a", "b", "c", "d"}, 0, 10, now, time.Minute)

	if s.State != SessionPending {
		t.Fatalf("new session state = %q", s.State)
	}
	if !s.Answerable(now) {
		t.Fatalf("expected session answerable at creation")
	}
	if !s.Answerable(now.Add(59 * time.Second)) {
		t.Fatalf("expected session answerable before deadline")
	}
	if s.Answerable(now.Add(time.Minute)) {
		t.Fatalf("expected session not answerable at deadline")
	}

	s.State = SessionAnswered
	if s.Answerable(now) {
		t.Fatalf("answered session must not be answerable")
	}
}

func TestQuizSessionViewIsDetached(t *testing.T) {
	now := time.Now()
	q := &Question{Text: "q", CorrectAnswer: "a", Category: "general", Difficulty: "easy"}
	s := NewQuizSession("s1", 1, q, []string{"a", "b", "c", "d"}, 0, 10, now, time.Minute)

	v := s.View()
	if v.SessionID != "s1" || v.Text != "q" || len(v.Options) != 4 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !v.ExpiresAt.Equal(s.ExpiresAt) {
		t.Fatalf("view deadline %v differs from session %v", v.ExpiresAt, s.ExpiresAt)
	}

	v.Options[0] = "tampered"
	if s.Options[0] != "a" {
		t.Fatalf("view mutation leaked into the session")
	}
}
