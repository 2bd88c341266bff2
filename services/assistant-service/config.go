package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/assistant-service/providers"
	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	Env            string
	Port           string
	Provider       string
	GroqAPIKey     string
	GroqBaseURL    string
	GroqModel      string
	GeminiAPIKey   string
	GeminiModel    string
	MaxTokens      int
	Timeout        time.Duration
	RatePerMinute  int
	RateBurst      int
	AllowedOrigins string

	MetricsEnabled    bool
	CloudWatchEnabled bool
	LogGroup          string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8083"),
		Provider:          getEnv("LLM_PROVIDER", ProviderGroq),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", providers.DefaultGroqBaseURL),
		GroqModel:         getEnv("GROQ_MODEL", providers.DefaultGroqModel),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", providers.DefaultGeminiModel),
		AllowedOrigins:    os.Getenv("ALLOWED_ORIGINS"),
		MetricsEnabled:    os.Getenv("METRICS_ENABLED") == "true",
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		LogGroup:          getEnv("CLOUDWATCH_LOG_GROUP", "/corex/assistant"),
	}

	var err error
	if cfg.MaxTokens, err = getInt("LLM_MAX_TOKENS", 500); err != nil {
		return nil, err
	}
	if cfg.RatePerMinute, err = getInt("CHAT_RATE_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = getInt("CHAT_RATE_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = getDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	if cfg.RatePerMinute < 0 || cfg.RateBurst < 0 {
		return nil, fmt.Errorf("CHAT_RATE_PER_MINUTE and CHAT_RATE_BURST must not be negative")
	}
	if cfg.RatePerMinute > 0 && cfg.RateBurst == 0 {
		return nil, fmt.Errorf("CHAT_RATE_BURST must be positive when CHAT_RATE_PER_MINUTE is set")
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if m, err := awspkg.GetSecretMap(context.Background(), sm, "assistant/LLM_KEYS"); err == nil {
				if v := m["GROQ_API_KEY"]; v != "" {
					cfg.GroqAPIKey = v
				}
				if v := m["GEMINI_API_KEY"]; v != "" {
					cfg.GeminiAPIKey = v
				}
			}
		}
	}

	switch cfg.Provider {
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=%s", ProviderGroq)
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}
