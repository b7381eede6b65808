// Package config provides configuration for the assistant.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the process configuration. Values are read once at startup and
// never re-read at runtime.
type Config struct {
	// Server settings
	HTTPPort int

	// Database. Empty means the volatile in-memory store.
	DatabaseURL string

	// Bot credential for the chat transport.
	BotToken string

	// LLM settings
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration

	// Base URL of the embedded kanban web app.
	WebAppURL string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		BotToken:      getEnv("BOT_TOKEN", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		WebAppURL:     getEnv("WEBAPP_URL", "https://your-webapp-url.com/kanban-app"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// Validate checks that the credentials required at startup are present.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
