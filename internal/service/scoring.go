package service

import "triviabot/internal/domain/entities"

// Scoring computes score deltas for quiz outcomes. The formula is a
// product-policy knob, so everything here comes from configuration.
type Scoring struct {
	BasePoints   int
	WrongPenalty int            // subtracted on a wrong answer, 0 disables the penalty
	Multipliers  map[string]int // per-difficulty multiplier of BasePoints
}

// DefaultScoring returns the stock difficulty table: easy x1,
// medium x2, hard x3.
func DefaultScoring(basePoints, wrongPenalty int) Scoring {
	return Scoring{
		BasePoints:   basePoints,
		WrongPenalty: wrongPenalty,
		Multipliers:  map[string]int{"easy": 1, "medium": 2, "hard": 3},
	}
}

// Points returns the value of a correct answer for the question.
// Unknown difficulties fall back to the provider's suggested value,
// then to the base.
func (s Scoring) Points(q *entities.Question) int {
	if m, ok := s.Multipliers[q.Difficulty]; ok {
		return s.BasePoints * m
	}
	if q.Points > 0 {
		return q.Points
	}
	return s.BasePoints
}

// Delta returns the signed score change for an answer with the given
// point value.
func (s Scoring) Delta(correct bool, points int) int {
	if correct {
		return points
	}
	return -s.WrongPenalty
}
