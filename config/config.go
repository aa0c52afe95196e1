package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort          = "8080"
	DefaultJWTSecret     = "your-secret-key-change-this-in-production"
	DefaultJWTExpiration = 7 * 24 * time.Hour
)

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           []byte
	JWTExpiration       time.Duration
	EnforceContentRoles bool
	StreakLocation      *time.Location
	LogLevel            string
	GinMode             string
}

// Load reads the configuration from the environment. Call godotenv.Load
// before it to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", DefaultPort),
		JWTSecret:     []byte(getEnv("JWT_SECRET", DefaultJWTSecret)),
		JWTExpiration: DefaultJWTExpiration,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDSN(
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_NAME", "sunnah_steps"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %s", d)
		}
		cfg.JWTExpiration = d
	}

	if v := os.Getenv("ENFORCE_CONTENT_ROLES"); v != "" {
		enforce, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ENFORCE_CONTENT_ROLES %q: %w", v, err)
		}
		cfg.EnforceContentRoles = enforce
	}

	loc, err := time.LoadLocation(getEnv("STREAK_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid STREAK_TIMEZONE: %w", err)
	}
	cfg.StreakLocation = loc

	return cfg, nil
}

// UsesDefaultSecret reports whether the signing key was left at its
// development default.
func (c *Config) UsesDefaultSecret() bool {
	return string(c.JWTSecret) == DefaultJWTSecret
}

func buildDSN(host, port, user, password, name, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     name,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
