package service

import (
	"testing"

	"triviabot/internal/domain/entities"
)

func TestScoringPoints(t *testing.T) {
	s := DefaultScoring(10, 0)

	tests := []struct {
		name string
		q    entities.Question
		want int
	}{
		{"easy", entities.Question{Difficulty: "easy"}, 10},
		{"medium", entities.Question{Difficulty: "medium"}, 20},
		{"hard", entities.Question{Difficulty: "hard"}, 30},
		{"unknown with suggestion", entities.Question{Difficulty: "expert", Points: 50}, 50},
		{"unknown without suggestion", entities.Question{Difficulty: "expert"}, 10},
		{"empty difficulty", entities.Question{}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Points(&tt.q); got != tt.want {
				t.Fatalf("Points() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoringDelta(t *testing.T) {
	s := DefaultScoring(10, 5)

	if got := s.Delta(true, 20); got != 20 {
		t.Fatalf("correct delta = %d, want 20", got)
	}
	if got := s.Delta(false, 20); got != -5 {
		t.Fatalf("wrong delta = %d, want -5", got)
	}

	s.WrongPenalty = 0
	if got := s.Delta(false, 20); got != 0 {
		t.Fatalf("wrong delta with disabled penalty = %d, want 0", got)
	}
}
