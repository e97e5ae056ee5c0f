package telegram

import "testing"

func TestCallbackDataRoundTrip(t *testing.T) {
	data := buildAnswerCallback("a1b2c3d4", "2")
	if data != "answer:a1b2c3d4:2" {
		t.Fatalf("unexpected encoding: %q", data)
	}

	cd := decodeCallback(data)
	if cd.Action != actionAnswer {
		t.Fatalf("action = %q, want %q", cd.Action, actionAnswer)
	}
	if len(cd.Params) != 2 || cd.Params[0] != "a1b2c3d4" || cd.Params[1] != "2" {
		t.Fatalf("params = %v", cd.Params)
	}
	if cd.Raw != data {
		t.Fatalf("raw = %q, want %q", cd.Raw, data)
	}
}

func TestDecodeCallbackBareAction(t *testing.T) {
	cd := decodeCallback("quiz")
	if cd.Action != "quiz" {
		t.Fatalf("action = %q", cd.Action)
	}
	if len(cd.Params) != 0 {
		t.Fatalf("expected no params, got %v", cd.Params)
	}
}

func TestNewQuizCallback(t *testing.T) {
	cd := decodeCallback(buildNewQuizCallback())
	if cd.Action != actionQuiz || len(cd.Params) != 1 || cd.Params[0] != quizNew {
		t.Fatalf("unexpected callback: %+v", cd)
	}
}
