package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/checkout"
	"github.com/corexathletics/storefront/pkg/money"
	"github.com/joho/godotenv"
)

const (
	CatalogSourceStatic = "static"
	CatalogSourceMongo  = "mongo"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Env            string
	Port           string
	RedisURL       string
	CartTTL        time.Duration
	SessionTTL     time.Duration
	CatalogSource  string
	MongoURL       string
	MongoDB        string
	Pricing        checkout.Pricing
	OrderTopicARN  string
	JWTSecret      string
	AllowedOrigins string
	CookieSecure   bool

	MetricsEnabled    bool
	CloudWatchEnabled bool
	LogGroup          string
}

// LoadConfig reads configuration from the environment (and an optional .env
// file) with a Secrets Manager override for credentials when running on AWS.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8081"),
		RedisURL:          getEnv("REDIS_URL", "redis://redis:6379"),
		CatalogSource:     getEnv("CATALOG_SOURCE", CatalogSourceStatic),
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDB:           getEnv("MONGO_DB", "corex"),
		OrderTopicARN:     os.Getenv("ORDER_SNS_TOPIC_ARN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigins:    os.Getenv("ALLOWED_ORIGINS"),
		MetricsEnabled:    os.Getenv("METRICS_ENABLED") == "true",
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		LogGroup:          getEnv("CLOUDWATCH_LOG_GROUP", "/corex/storefront"),
	}

	var err error
	if cfg.CartTTL, err = getDuration("CART_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("CHECKOUT_SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", cfg.Env == "production"); err != nil {
		return nil, err
	}
	if cfg.Pricing, err = loadPricing(); err != nil {
		return nil, err
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if m, err := awspkg.GetSecretMap(context.Background(), sm, "storefront/APP_SECRETS"); err == nil {
				if v := m["JWT_SECRET"]; v != "" {
					cfg.JWTSecret = v
				}
				if v := m["REDIS_URL"]; v != "" {
					cfg.RedisURL = v
				}
				if v := m["MONGO_URL"]; v != "" {
					cfg.MongoURL = v
				}
			}
		}
	}

	switch cfg.CatalogSource {
	case CatalogSourceStatic:
	case CatalogSourceMongo:
		if cfg.MongoURL == "" {
			return nil, fmt.Errorf("MONGO_URL is required when CATALOG_SOURCE=%s", CatalogSourceMongo)
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}
	return cfg, nil
}

func loadPricing() (checkout.Pricing, error) {
	p := checkout.DefaultPricing()
	var err error
	if p.FreeShippingOver, err = getAmount("FREE_SHIPPING_OVER", p.FreeShippingOver); err != nil {
		return p, err
	}
	if p.FlatShipping, err = getAmount("FLAT_SHIPPING", p.FlatShipping); err != nil {
		return p, err
	}
	bps, err := getInt("TAX_BASIS_POINTS", int(p.TaxBasisPoints))
	if err != nil {
		return p, err
	}
	if bps < 0 {
		return p, fmt.Errorf("TAX_BASIS_POINTS must not be negative")
	}
	p.TaxBasisPoints = int64(bps)
	return p, nil
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

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return b, nil
}

func getAmount(key string, fallback money.Amount) (money.Amount, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	a, err := money.Parse(raw)
	if err != nil || a < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return a, nil
}
