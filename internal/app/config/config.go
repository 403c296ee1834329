// Package config loads the process configuration from .env and the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"auction_backend/internal/platform/db"
	"auction_backend/internal/platform/redis"
	"auction_backend/internal/platform/storage/s3"
)

const (
	// StorageFS keeps entries on the local filesystem.
	StorageFS = "fs"
	// StorageS3 keeps entries in an S3 bucket.
	StorageS3 = "s3"
)

// Config is everything the binaries need to start.
type Config struct {
	Env      string
	HTTPAddr string

	DB            db.Config
	RunMigrations bool

	Redis redis.Config

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	EntryStorage  string
	EntryDir      string
	S3            s3.Config
	EntryCacheTTL time.Duration

	IngestRatePerMinute int
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env when present and then the environment. Variables already
// set in the environment win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() Config {
	return Config{
		Env:      getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DB:            db.LoadConfigFromEnv(),
		RunMigrations: getBool("RUN_MIGRATIONS", true),

		Redis: redis.Config{
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		EntryStorage: strings.ToLower(getenv("ENTRY_STORAGE", StorageFS)),
		EntryDir:     getenv("ENTRY_DIR", "./data"),
		S3: s3.Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getenv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		},
		EntryCacheTTL: getDuration("ENTRY_CACHE_TTL", 5*time.Minute),

		IngestRatePerMinute: getInt("INGEST_RATE_PER_MINUTE", 0),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}
