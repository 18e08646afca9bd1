// Package config loads the application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultLogLevel           = "info"
	defaultAccessTokenTTL     = 15 * time.Minute
	defaultRefreshTokenTTL    = 7 * 24 * time.Hour
	defaultMaxSessionsPerUser = 5
	defaultRateLimitPerMinute = 30
	defaultCategoryCacheTTL   = 10 * time.Minute

	defaultSessionPurgeInterval = time.Hour
)

// Config holds every setting the server reads at startup.
type Config struct {
	HTTPAddr string
	LogLevel string

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	MaxSessionsPerUser int

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	CategoryCacheTTL   time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string

	RunMigrations  bool
	SeedCategories bool

	SessionPurgeInterval time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	return Config{
		HTTPAddr: stringOr("HTTP_ADDR", defaultHTTPAddr),
		LogLevel: stringOr("LOG_LEVEL", defaultLogLevel),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenTTL:     durationOr("ACCESS_TOKEN_TTL", defaultAccessTokenTTL),
		RefreshTokenTTL:    durationOr("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL),
		MaxSessionsPerUser: intOr("MAX_SESSIONS_PER_USER", defaultMaxSessionsPerUser),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitPerMinute: intOr("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute),
		CategoryCacheTTL:   durationOr("CATEGORY_CACHE_TTL", defaultCategoryCacheTTL),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     stringOr("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RunMigrations:  os.Getenv("RUN_MIGRATIONS") != "false",
		SeedCategories: os.Getenv("SEED_CATEGORIES") == "true",

		SessionPurgeInterval: durationOr("SESSION_PURGE_INTERVAL", defaultSessionPurgeInterval),
	}
}

// RedisEnabled reports whether a Redis host has been configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func stringOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("invalid duration, using default")
		return fallback
	}
	return d
}

func intOr(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("invalid integer, using default")
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
