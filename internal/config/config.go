package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	AnalyticsWorkerCount int
	AnalyticsQueueSize   int
	AnalysisWindowDays   int
	DebounceSeconds      int
	ComputeVersion       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:learnpulse.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		AnalyticsWorkerCount: envIntOr("ANALYTICS_WORKER_COUNT", 2),
		AnalyticsQueueSize:   envIntOr("ANALYTICS_QUEUE_SIZE", 64),
		AnalysisWindowDays:   envIntOr("ANALYSIS_WINDOW_DAYS", 30),
		DebounceSeconds:      envIntOr("ANALYTICS_DEBOUNCE_SECONDS", 10),
		ComputeVersion:       envIntOr("ANALYTICS_COMPUTE_VERSION", 1),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
