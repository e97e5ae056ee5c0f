package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"triviabot/internal/config"
	"triviabot/internal/delivery/telegram"
	"triviabot/internal/infra/postgres"
	"triviabot/internal/logger"
	"triviabot/internal/provider/opentdb"
	"triviabot/internal/repository"
	"triviabot/internal/service"
)

func main() {
	// Load .env if present; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Initialize your profile"},
		{Command: "help", Description: "Show available commands"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "leaderboard", Description: "See top scorers"},
		{Command: "my_score", Description: "View your current score"},
		{Command: "score_history", Description: "View your score history"},
		{Command: "stats", Description: "View your quiz statistics"},
		{Command: "my_quizzes", Description: "See your recent quizzes"},
		{Command: "user_info", Description: "Check your information"},
		{Command: "cancel", Description: "Cancel the active question"},
		{Command: "schedule_quiz", Description: "Toggle the daily quiz"},
		{Command: "reset", Description: "Reset your score to 0"},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zl.Fatal("database url not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	provider := opentdb.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)

	engine := service.NewSessionEngine(provider, store, service.EngineConfig{
		AnswerDeadline:  cfg.Quiz.AnswerDeadline,
		MinOptions:      cfg.Quiz.MinOptions,
		ProviderTimeout: cfg.Provider.Timeout,
		Scoring:         service.DefaultScoring(cfg.Quiz.BasePoints, cfg.Quiz.WrongPenalty),
	}, zl)

	statsService := service.NewStatsService(store)
	userService := service.NewUserService(store, zl)
	scheduler := service.NewScheduler(engine, store, cfg.Quiz.SweepInterval, cfg.Quiz.DailyHour, zl)

	handler := telegram.NewHandler(
		bot,
		zl,
		engine,
		statsService,
		userService,
		scheduler,
		telegram.Options{
			AdminID:        cfg.AdminID,
			LeaderboardTop: cfg.Quiz.LeaderboardTop,
			HistoryLimit:   cfg.Quiz.HistoryLimit,
		},
	)

	scheduler.SetNotifier(handler)
	go scheduler.Start(ctx)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
