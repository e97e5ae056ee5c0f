package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"triviabot/internal/domain/entities"
)

// buildAnswerKeyboard builds one button per shuffled option. The
// callback carries only the session id and the chosen position; the
// correct index never reaches the client.
func buildAnswerKeyboard(view *entities.QuestionView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range view.Options {
		data := buildAnswerCallback(view.SessionID, strconv.Itoa(i))
		button := tgbotapi.NewInlineKeyboardButtonData(option, data)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Another question", buildNewQuizCallback()),
		),
	)
}
