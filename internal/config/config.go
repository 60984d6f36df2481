package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port              string `validate:"required,numeric"`
	DatabaseURL       string
	LogLevel          string `validate:"oneof=debug info warn warning error"`
	LogFormat         string `validate:"oneof=json text"`
	Environment       string `validate:"oneof=dev staging prod test"`
	LeaderboardLimit  int    `validate:"min=1,max=100"`
	RankingCacheSize  int    `validate:"min=1"`
	SessionTTLMinutes int    `validate:"min=1"`
}

var validate = validator.New()

func Load() (Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		Environment:       getEnv("APP_ENV", "dev"),
		LeaderboardLimit:  getEnvInt("LEADERBOARD_LIMIT", 10),
		RankingCacheSize:  getEnvInt("RANKING_CACHE_SIZE", 128),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
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
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
