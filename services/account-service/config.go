package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/account-service/database"
	"github.com/joho/godotenv"
)

const (
	WishlistStorePostgres = "postgres"
	WishlistStoreDynamo   = "dynamodb"
)

// Config holds all configuration for the account service.
type Config struct {
	Env      string
	Port     string
	Postgres database.PostgresConfig

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	AllowedOrigins  string

	AuthRatePerMinute int
	AuthRateBurst     int

	WishlistStore string
	WishlistTable string
	AvatarBucket  string
	UserTopicARN  string

	MetricsEnabled    bool
	CloudWatchEnabled bool
	LogGroup          string
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8082"),
		Postgres: database.PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		},
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigins:    os.Getenv("ALLOWED_ORIGINS"),
		WishlistStore:     getEnv("WISHLIST_STORE", WishlistStorePostgres),
		WishlistTable:     getEnv("WISHLIST_TABLE", "corex-wishlists"),
		AvatarBucket:      os.Getenv("AVATAR_BUCKET"),
		UserTopicARN:      os.Getenv("USER_SNS_TOPIC_ARN"),
		MetricsEnabled:    os.Getenv("METRICS_ENABLED") == "true",
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		LogGroup:          getEnv("CLOUDWATCH_LOG_GROUP", "/corex/account"),
	}

	var err error
	if cfg.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AuthRatePerMinute, err = getInt("AUTH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if cfg.AuthRateBurst, err = getInt("AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}
	cfg.CookieSecure = getEnv("COOKIE_SECURE", strconv.FormatBool(cfg.Env == "production")) == "true"

	// Override credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if m, err := awspkg.GetSecretMap(context.Background(), sm, "account/DB_CREDENTIALS"); err == nil {
				overrideString(&cfg.Postgres.User, m["POSTGRES_USER"])
				overrideString(&cfg.Postgres.Password, m["POSTGRES_PASSWORD"])
				overrideString(&cfg.Postgres.DBName, m["POSTGRES_DB"])
				overrideString(&cfg.Postgres.Host, m["POSTGRES_HOST"])
				overrideString(&cfg.Postgres.Port, m["POSTGRES_PORT"])
			}
			if v, err := sm.GetSecret(context.Background(), "account/JWT_SECRET"); err == nil {
				overrideString(&cfg.JWTSecret, v)
			}
		}
	}

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.DBName == "" || cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AuthRatePerMinute <= 0 || cfg.AuthRateBurst <= 0 {
		return nil, fmt.Errorf("auth rate limits must be positive")
	}
	switch cfg.WishlistStore {
	case WishlistStorePostgres, WishlistStoreDynamo:
	default:
		return nil, fmt.Errorf("unknown WISHLIST_STORE %q", cfg.WishlistStore)
	}
	return cfg, nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
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
