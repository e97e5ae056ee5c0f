package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, prod etc)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	AdminID          int64    `mapstructure:"admin_id"`
	DB               DB       `mapstructure:"database"`
	Provider         Provider `mapstructure:"provider"`
	Quiz             Quiz     `mapstructure:"quiz"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Provider configures the trivia question source.
type Provider struct {
	BaseURL string        `mapstructure:"base_url"` // Open Trivia DB endpoint
	Timeout time.Duration `mapstructure:"timeout"`  // bounded wait for one fetch
}

// Quiz contains session and scoring parameters.
type Quiz struct {
	AnswerDeadline time.Duration `mapstructure:"answer_deadline"` // how long a question stays answerable
	MinOptions     int           `mapstructure:"min_options"`     // minimum presented options, correct answer included
	BasePoints     int           `mapstructure:"base_points"`     // points for a correct easy answer
	WrongPenalty   int           `mapstructure:"wrong_penalty"`   // points subtracted for a wrong answer
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`  // how often stale sessions are expired
	DailyHour      int           `mapstructure:"daily_hour"`      // UTC hour for the daily scheduled quiz
	LeaderboardTop int           `mapstructure:"leaderboard_top"` // entries shown by /leaderboard
	HistoryLimit   int           `mapstructure:"history_limit"`   // entries shown by history commands
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("provider.base_url", "https://opentdb.com/api.php")
	v.SetDefault("provider.timeout", "5s")
	v.SetDefault("quiz.answer_deadline", "60s")
	v.SetDefault("quiz.min_options", 4)
	v.SetDefault("quiz.base_points", 10)
	v.SetDefault("quiz.wrong_penalty", 0)
	v.SetDefault("quiz.sweep_interval", "30s")
	v.SetDefault("quiz.daily_hour", 9)
	v.SetDefault("quiz.leaderboard_top", 10)
	v.SetDefault("quiz.history_limit", 10)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("admin_id", "ADMIN_ID")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.AdminID = v.GetInt64("admin_id")

	return &cfg, nil
}
