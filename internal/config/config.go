package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
)

type Config struct {
	// FeedURL is the published leaderboard sheet (CSV export).
	FeedURL string

	// RosterFeedURL is the upcoming-matches sheet; optional, rosters are
	// simply skipped when unset.
	RosterFeedURL string

	DBPath          string
	ServerPort      string
	LogLevel        string
	PageSize        int
	RefreshInterval time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		FeedURL:         getEnv("FEED_URL", ""),
		RosterFeedURL:   getEnv("ROSTER_FEED_URL", ""),
		DBPath:          getEnv("DB_PATH", "league.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PageSize:        getEnvInt("PAGE_SIZE", constants.DefaultPageSize),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", constants.DefaultRefreshInterval),
	}

	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("FEED_URL is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("page_size", cfg.PageSize).
		Dur("refresh_interval", cfg.RefreshInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
