package config

import (
	"os"
	"strconv"

	"github.com/example/vocabdrill/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	DBDriver          string // sqlite3 or postgres
	DBDSN             string // file path for sqlite3, connection string for postgres
	ReminderStartHour int
	ReminderEndHour   int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		DBDriver:          getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:             getEnv("DB_DSN", "data/vocabdrill.db"),
		ReminderStartHour: getEnvInt("REMINDER_START_HOUR", scheduler.DefaultReminderStartHour),
		ReminderEndHour:   getEnvInt("REMINDER_END_HOUR", scheduler.DefaultReminderEndHour),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
