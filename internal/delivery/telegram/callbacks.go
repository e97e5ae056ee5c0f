package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"triviabot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionAnswer:
		h.handleAnswerCallback(ctx, cb, cd)
	case actionQuiz:
		h.handleQuizCallback(ctx, cb, cd)
	default:
		return
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

// handleAnswerCallback resolves an answer button press. A press on a
// stale keyboard (already answered, expired, cancelled, superseded)
// is a benign no-op from the engine's point of view and just tells
// the user the question is gone.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if len(cd.Params) != 2 {
		h.logger.Warn("invalid answer callback", zap.String("data", cd.Raw))
		return
	}

	sessionID := cd.Params[0]
	chosen, err := strconv.Atoi(cd.Params[1])
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.String("data", cd.Raw))
		return
	}

	result, err := h.engine.SubmitAnswer(ctx, userID, sessionID, chosen)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			h.editText(chatID, cb.Message.MessageID, msgNoActiveQuestion)
		case errors.Is(err, service.ErrSessionExpired):
			h.editText(chatID, cb.Message.MessageID, msgTimeUp)
		default:
			h.logger.Error("failed to submit answer",
				zap.Int64("user_id", userID),
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			h.editText(chatID, cb.Message.MessageID, msgInternalError)
		}
		return
	}

	var text string
	if result.Correct {
		text = fmt.Sprintf("✅ Correct! +%d points.\n\nThe answer is: %s\n\nYour total: %d", result.Delta, result.CorrectAnswer, result.NewTotal)
	} else {
		text = fmt.Sprintf("❌ Sorry, that's incorrect.\n\nThe correct answer is: %s\n\nYour total: %d", result.CorrectAnswer, result.NewTotal)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, text, buildQuizResultKeyboard())
	h.send(edit)
}

// handleQuizCallback starts a fresh quiz from the "another question" button.
func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) {
	if len(cd.Params) != 1 || cd.Params[0] != quizNew {
		return
	}

	chatID := cb.Message.Chat.ID

	view, err := h.engine.StartQuiz(ctx, cb.From.ID, "", "")
	if err != nil {
		if errors.Is(err, service.ErrProviderUnavailable) {
			h.sendError(chatID, msgQuizUnavailable)
			return
		}
		h.logger.Error("failed to start quiz from callback",
			zap.Int64("user_id", cb.From.ID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.SendQuiz(chatID, view)
}

func (h *Handler) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	h.send(edit)
}
