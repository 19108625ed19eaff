package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendRedis    = "redis"
	LedgerBackendMemory   = "memory"
)

type Config struct {
	Port             string
	LogLevel         slog.Level
	TimezoneName     string
	Location         *time.Location
	SchedulerEnabled bool
	LedgerBackend    string
	Dispatch         *DispatchConfig
	Redis            *RedisConfig
	Database         *DatabaseConfig
	Mail             *MailConfig
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	tzName := os.Getenv("REMINDER_TIMEZONE")
	if tzName == "" {
		tzName = "UTC"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	backend := strings.ToLower(os.Getenv("LEDGER_BACKEND"))
	if backend == "" {
		backend = LedgerBackendPostgres
	}

	schedulerEnabled := true
	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			schedulerEnabled = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		TimezoneName:     tzName,
		Location:         loc,
		SchedulerEnabled: schedulerEnabled,
		LedgerBackend:    backend,
		Dispatch:         LoadDispatchConfig(),
		Redis:            redisConfig,
		Database:         LoadDatabaseConfig(),
		Mail:             LoadMailConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func positiveIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
