package config

import (
	"log/slog"
	"os"
	"strings"
)

// Defaults match the original local-dev setup.
const (
	DefaultModel       = "meta-llama/llama-3.3-70b-instruct"
	DefaultLLMProvider = "openrouter"
	DefaultRedisURL    = "redis://localhost:6379/0"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	LLMProvider      string
	OpenRouterAPIKey string
	AnthropicAPIKey  string
	ModelName        string

	RedisURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		LLMProvider:      getEnv("LLM_PROVIDER", DefaultLLMProvider),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		ModelName:        getEnv("MODEL_NAME", DefaultModel),

		RedisURL: getEnv("REDIS_URL", DefaultRedisURL),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
