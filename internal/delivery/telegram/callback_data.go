package telegram

import "strings"

// Callback action constants.
const (
	actionAnswer = "answer"
	actionQuiz   = "quiz"
)

// Quiz sub-actions.
const (
	quizNew = "new"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildAnswerCallback(sessionID string, optionIndex string) string {
	return callbackData{Action: actionAnswer, Params: []string{sessionID, optionIndex}}.encode()
}

func buildNewQuizCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizNew}}.encode()
}
