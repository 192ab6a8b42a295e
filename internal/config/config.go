package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "reviewhub.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
	defaultCurrency     = "BDT"
	defaultGatewayURL   = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// Payment gateway settings. The gateway itself is a black box: we send it
	// transaction params and it answers with a redirect URL, then calls back.
	GatewayURL      string
	GatewayStoreID  string
	GatewayPassword string
	Currency        string
	BackendBaseURL  string
	ClientBaseURL   string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.GatewayURL = getEnv("PAYMENT_GATEWAY_URL", defaultGatewayURL)
	cfg.GatewayStoreID = strings.TrimSpace(os.Getenv("PAYMENT_STORE_ID"))
	cfg.GatewayPassword = strings.TrimSpace(os.Getenv("PAYMENT_STORE_PASSWORD"))
	cfg.Currency = getEnv("PAYMENT_CURRENCY", defaultCurrency)
	cfg.BackendBaseURL = getEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1")
	cfg.ClientBaseURL = getEnv("CLIENT_BASE_URL", "http://localhost:3000")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.GatewayStoreID == "" || cfg.GatewayPassword == "" {
			return fmt.Errorf("in prod/release payment gateway credentials must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
