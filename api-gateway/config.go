package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	Port            string
	StorefrontURL   string
	AccountURL      string
	AssistantURL    string
	UpstreamTimeout time.Duration
	AllowedOrigins  string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		StorefrontURL:  getEnv("STOREFRONT_SERVICE_URL", "http://storefront-service:8081"),
		AccountURL:     getEnv("ACCOUNT_SERVICE_URL", "http://account-service:8082"),
		AssistantURL:   getEnv("ASSISTANT_SERVICE_URL", "http://assistant-service:8083"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
	}

	cfg.UpstreamTimeout = 70 * time.Second
	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q", raw)
		}
		cfg.UpstreamTimeout = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
