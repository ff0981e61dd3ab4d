package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"tasks_api/internal/db"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Store
	DBDriver    string
	DBPath      string
	DatabaseURL string
	DBFailFast  bool

	LogLevel  string
	LogFormat string

	// Rate limiting; Redis is optional, the limiter is disabled without it
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	APIRateLimit  int
	APIRateWindow time.Duration
	CORSOrigins   []string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests don't touch os.Environ.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppPort:       "3000",
		DBDriver:      db.DriverSQLite,
		DBPath:        "meuapp.db",
		LogLevel:      "info",
		LogFormat:     "text",
		APIRateLimit:  120,
		APIRateWindow: time.Minute,
	}

	if v := getenv("APP_PORT"); v != "" {
		cfg.AppPort = v
	}

	if v := strings.ToLower(getenv("DB_DRIVER")); v != "" {
		cfg.DBDriver = v
	}
	switch cfg.DBDriver {
	case db.DriverSQLite:
		if v := getenv("DB_PATH"); v != "" {
			cfg.DBPath = v
		}
	case db.DriverPostgres:
		cfg.DatabaseURL = getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
	default:
		return nil, errors.New("unsupported DB_DRIVER: " + cfg.DBDriver)
	}

	cfg.DBFailFast = getenv("DB_FAIL_FAST") == "true"

	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	cfg.RedisAddr = getenv("REDIS_ADDR")
	cfg.RedisPassword = getenv("REDIS_PASSWORD")
	if v := getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}

	if v := getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateLimit = n
		}
	}
	if v := getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindow = time.Duration(n) * time.Second
		}
	}

	// comma separated; empty reflects any Origin
	if v := getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}
