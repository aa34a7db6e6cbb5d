package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/sheos-insight-go/internal/constants"
)

type Config struct {
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	AI      AIConfig
	Server  ServerConfig
	Redis   RedisConfig
	State   StateConfig
	Batch   BatchConfig
	Logging LoggingConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type AIConfig struct {
	Provider       string
	RequestTimeout time.Duration
	CircuitBreaker bool
}

type ServerConfig struct {
	Addr string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether screen state should live in Redis instead of memory.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type StateConfig struct {
	PendingTTL time.Duration
}

type BatchConfig struct {
	Concurrency int
}

type LoggingConfig struct {
	Level string
	File  string
	JSON  bool
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:  getEnv("GEMINI_MODEL", constants.ModelDefaults.GeminiModel),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", constants.ModelDefaults.OpenAIModel),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", false),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
			RequestTimeout: time.Duration(getEnvInt("AI_REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
			CircuitBreaker: getEnvBool("AI_CIRCUIT_BREAKER", false),
		},
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		State: StateConfig{
			PendingTTL: time.Duration(getEnvInt("STATE_PENDING_TTL_SECONDS", int(constants.StateConfig.PendingTTL.Seconds()))) * time.Second,
		},
		Batch: BatchConfig{
			Concurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
			JSON:  getEnvBool("LOG_JSON", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.AI.Provider)
	}
	if c.OpenAI.EnableFallback && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when OPENAI_ENABLE_FALLBACK=true")
	}
	if c.AI.RequestTimeout < 0 {
		return fmt.Errorf("AI_REQUEST_TIMEOUT_SECONDS must not be negative")
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive")
	}
	if c.State.PendingTTL <= 0 {
		return fmt.Errorf("STATE_PENDING_TTL_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
