package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"triviabot/internal/service"
)

// quizHandler starts a new quiz and sends the question with answer
// buttons. Optional args: category, then difficulty.
func (h *Handler) quizHandler(userID int64, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var category, difficulty string
		if len(args) > 0 {
			category = args[0]
		}
		if len(args) > 1 {
			difficulty = args[1]
		}

		view, err := h.engine.StartQuiz(ctx, userID, category, difficulty)
		if err != nil {
			if errors.Is(err, service.ErrProviderUnavailable) {
				h.logger.Warn("question provider unavailable",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return h.send(newPlainMessage(chatID, msgQuizUnavailable))
			}
			return err
		}

		return h.SendQuiz(chatID, view)
	}
}

func (h *Handler) leaderboardHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.stats.TopN(ctx, h.opts.LeaderboardTop)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return h.send(newPlainMessage(chatID, msgLeaderboardEmpty))
		}

		return h.send(newHTMLMessage(chatID, formatLeaderboard(entries, userID)))
	}
}

func (h *Handler) myScoreHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.users.Get(ctx, userID)
		if err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, fmt.Sprintf("Your current score is: %d", user.Score)))
	}
}

func (h *Handler) scoreHistoryHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.stats.History(ctx, userID, h.opts.HistoryLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return h.send(newPlainMessage(chatID, msgNoHistory))
		}

		return h.send(newHTMLMessage(chatID, formatHistory(entries)))
	}
}

func (h *Handler) statsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.stats.UserStats(ctx, userID)
		if err != nil {
			return err
		}

		return h.send(newHTMLMessage(chatID, formatStats(stats)))
	}
}

func (h *Handler) myQuizzesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		records, err := h.stats.RecentQuizzes(ctx, userID, h.opts.HistoryLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			return h.send(newPlainMessage(chatID, msgNoQuizzes))
		}

		return h.send(newHTMLMessage(chatID, formatRecentQuizzes(records)))
	}
}

func (h *Handler) userInfoHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.users.Get(ctx, userID)
		if err != nil {
			return err
		}

		text := fmt.Sprintf(
			"<b>User info</b>\nName: %s\nScore: %d\nDaily quiz: %s\nMember since: %s",
			esc(user.DisplayName),
			user.Score,
			onOff(user.DailyQuiz),
			user.CreatedAt.Format("2 Jan 2006"),
		)
		return h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) handleCancel(userID, chatID int64) {
	if h.engine.CancelActive(userID) {
		h.send(newPlainMessage(chatID, msgCancelled))
		return
	}
	h.send(newPlainMessage(chatID, msgNothingToCancel))
}

// resetHandler zeroes the user's score through the ledger.
func (h *Handler) resetHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.engine.ResetScore(ctx, userID); err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, msgScoreReset))
	}
}

func (h *Handler) scheduleHandler(userID int64, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return h.send(newPlainMessage(chatID, msgScheduleUsage))
		}

		enabled := args[0] == "on"
		if err := h.scheduler.Subscribe(ctx, userID, enabled); err != nil {
			return err
		}

		if enabled {
			return h.send(newPlainMessage(chatID, msgDailyOn))
		}
		return h.send(newPlainMessage(chatID, msgDailyOff))
	}
}

func (h *Handler) allUsersHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if userID != h.opts.AdminID {
			return h.send(newPlainMessage(chatID, msgNotAuthorized))
		}

		// The full user list is an admin view; reuse the score ordering.
		users, err := h.stats.TopN(ctx, 0)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return h.send(newPlainMessage(chatID, msgLeaderboardEmpty))
		}

		return h.send(newHTMLMessage(chatID, formatAllUsers(users)))
	}
}

// adjustHandler applies an admin score adjustment: /adjust <user_id> <delta>.
func (h *Handler) adjustHandler(userID int64, args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if userID != h.opts.AdminID {
			return h.send(newPlainMessage(chatID, msgNotAuthorized))
		}

		if len(args) != 2 {
			return h.send(newPlainMessage(chatID, msgAdjustUsage))
		}

		target, err1 := strconv.ParseInt(args[0], 10, 64)
		delta, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return h.send(newPlainMessage(chatID, msgAdjustUsage))
		}

		total, err := h.engine.AdjustScore(ctx, target, delta)
		if err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, fmt.Sprintf("Adjusted user %d by %+d, new total: %d", target, delta, total)))
	}
}
