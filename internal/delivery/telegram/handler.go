package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"triviabot/internal/domain/entities"
)

type SessionEngine interface {
	StartQuiz(ctx context.Context, userID int64, category, difficulty string) (*entities.QuestionView, error)
	SubmitAnswer(ctx context.Context, userID int64, sessionID string, chosen int) (*entities.AnswerResult, error)
	CancelActive(userID int64) bool
	AdjustScore(ctx context.Context, userID int64, delta int) (int, error)
	ResetScore(ctx context.Context, userID int64) (int, error)
}

type StatsService interface {
	TopN(ctx context.Context, n int) ([]entities.LeaderboardEntry, error)
	UserStats(ctx context.Context, userID int64) (*entities.UserStats, error)
	RecentQuizzes(ctx context.Context, userID int64, limit int) ([]entities.QuizRecord, error)
	History(ctx context.Context, userID int64, limit int) ([]entities.ScoreHistoryEntry, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, displayName string) (*entities.User, error)
	Get(ctx context.Context, userID int64) (*entities.User, error)
}

type Scheduler interface {
	Subscribe(ctx context.Context, userID int64, enabled bool) error
}

// Options carries display knobs for the handler.
type Options struct {
	AdminID        int64
	LeaderboardTop int
	HistoryLimit   int
}

type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	engine    SessionEngine
	stats     StatsService
	users     UserService
	scheduler Scheduler
	opts      Options
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	engine SessionEngine,
	stats StatsService,
	users UserService,
	scheduler Scheduler,
	opts Options,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		engine:    engine,
		stats:     stats,
		users:     users,
		scheduler: scheduler,
		opts:      opts,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	// Keep the user record and display name current on every interaction.
	if _, err := h.users.EnsureUser(ctx, from.ID, chatID, displayName(from)); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	args := strings.Fields(update.Message.CommandArguments())

	switch update.Message.Command() {
	case "start":
		h.send(newPlainMessage(chatID, msgWelcome))

	case "help":
		h.send(newPlainMessage(chatID, msgHelp))

	case "quiz":
		_ = h.withErrorHandling(h.quizHandler(from.ID, args))(ctx, chatID)

	case "leaderboard":
		_ = h.withErrorHandling(h.leaderboardHandler(from.ID))(ctx, chatID)

	case "my_score":
		_ = h.withErrorHandling(h.myScoreHandler(from.ID))(ctx, chatID)

	case "score_history":
		_ = h.withErrorHandling(h.scoreHistoryHandler(from.ID))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.statsHandler(from.ID))(ctx, chatID)

	case "my_quizzes":
		_ = h.withErrorHandling(h.myQuizzesHandler(from.ID))(ctx, chatID)

	case "user_info":
		_ = h.withErrorHandling(h.userInfoHandler(from.ID))(ctx, chatID)

	case "cancel":
		h.handleCancel(from.ID, chatID)

	case "reset":
		_ = h.withErrorHandling(h.resetHandler(from.ID))(ctx, chatID)

	case "schedule_quiz":
		_ = h.withErrorHandling(h.scheduleHandler(from.ID, args))(ctx, chatID)

	case "all_users":
		_ = h.withErrorHandling(h.allUsersHandler(from.ID))(ctx, chatID)

	case "adjust":
		_ = h.withErrorHandling(h.adjustHandler(from.ID, args))(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
