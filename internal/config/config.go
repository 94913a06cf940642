package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in CHAT_PROVIDER
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// Config holds process configuration read from the environment
type Config struct {
	Port        string
	DatabaseURL string

	// Chat completion
	ChatProvider string
	ChatAPIKey   string
	ChatBaseURL  string
	ChatModel    string // empty selects the provider default
	ChatTimeout  time.Duration
	ChatReferer  string
	ChatTitle    string

	// Classifier inputs
	TrainingCSV string
	ModelPath   string
	LexiconPath string

	// Limits
	RateLimitPerMin     float64
	RateLimitBurst      int
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

// Load reads the configuration. Malformed values fall back to their
// defaults with a warning.
func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "5000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		ChatProvider: strings.ToLower(getEnv("CHAT_PROVIDER", ProviderOpenRouter)),
		ChatBaseURL:  getEnv("CHAT_BASE_URL", ""),
		ChatModel:    getEnv("CHAT_MODEL", ""),
		ChatTimeout:  getDuration("CHAT_TIMEOUT", 15*time.Second),
		ChatReferer:  getEnv("CHAT_REFERER", "http://localhost:5000"),
		ChatTitle:    getEnv("CHAT_TITLE", "MediChat Assistant"),

		TrainingCSV: getEnv("TRAINING_CSV", "Data/Training.csv"),
		ModelPath:   getEnv("MODEL_PATH", "models/disease_prediction_model.json"),
		LexiconPath: getEnv("LEXICON_PATH", ""),

		RateLimitPerMin:     getFloat("RATE_LIMIT_PER_MIN", 60),
		RateLimitBurst:      getInt("RATE_LIMIT_BURST", 20),
		BreakerMaxFailures:  getInt("BREAKER_MAX_FAILURES", 5),
		BreakerResetTimeout: getDuration("BREAKER_RESET", time.Minute),
	}

	if cfg.ChatProvider != ProviderOpenRouter && cfg.ChatProvider != ProviderOpenAI {
		log.Printf("Warning: unknown CHAT_PROVIDER %q, using %s", cfg.ChatProvider, ProviderOpenRouter)
		cfg.ChatProvider = ProviderOpenRouter
	}

	if cfg.ChatProvider == ProviderOpenAI {
		cfg.ChatAPIKey = getEnv("OPENAI_API_KEY", "")
	} else {
		cfg.ChatAPIKey = getEnv("OPENROUTER_API_KEY", "")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		log.Printf("Warning: invalid %s=%q, using %g", key, raw, defaultValue)
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
