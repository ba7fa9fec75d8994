// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"tuishare_backend/internal/platform/db"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
	BackendLocal    = "local"
)

// Config holds all runtime configuration values.
type Config struct {
	AppEnv   string
	Port     string
	LogLevel slog.Level

	StoreBackend   string
	StoreOpTimeout time.Duration

	DB            db.Config
	RunMigrations bool

	MongoURI      string
	MongoDatabase string

	LocalStorePath string

	Redis    RedisConfig
	CacheTTL time.Duration

	JWTSecret     string
	JWTExpiration time.Duration

	BcryptCost int

	LoginRateLimit int
}

// RedisConfig holds the cache connection settings. An empty Host disables the cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// LoadConfig は環境変数を読み込み、未設定の項目には既定値を使います。
// 不正な値（未知のバックエンド等）はエラーを返します。
func LoadConfig() (Config, error) {
	cfg := Config{
		AppEnv:         getenv("APP_ENV", "dev"),
		Port:           getenv("PORT", "8080"),
		LogLevel:       parseLevel(getenv("LOG_LEVEL", "info")),
		StoreBackend:   strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		StoreOpTimeout: parseDur(getenv("STORE_OP_TIMEOUT", "5s"), 5*time.Second),
		DB:             db.LoadConfigFromEnv(),
		RunMigrations:  parseBool(getenv("RUN_MIGRATIONS", "true"), true),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getenv("MONGO_DATABASE", "tuishare"),
		LocalStorePath: getenv("LOCAL_STORE_PATH", "./tuishare.db"),
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		CacheTTL:      parseDur(getenv("CACHE_TTL", "10m"), 10*time.Minute),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: parseDur(getenv("JWT_EXPIRATION", "1h"), time.Hour),
		BcryptCost:    atoi(getenv("BCRYPT_COST", "10"), 10),

		LoginRateLimit: atoi(getenv("LOGIN_RATE_LIMIT", "10"), 10),
	}

	switch cfg.StoreBackend {
	case BackendPostgres, BackendMongo, BackendMemory, BackendLocal:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
