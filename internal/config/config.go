package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Timezone is the canonical location for every calendar-day comparison
	// (streaks, mission assignment windows). Never rely on the server or
	// database timezone.
	Timezone *time.Location

	JWTSecret     string
	TokenDuration time.Duration

	UploadMaxSize int64

	AWSRegion     string
	StorageBucket string
	SESFromEmail  string
	SESFromName   string

	// IngestToken authorizes the external content-ingestion worker to push
	// chapters and questions through the internal API.
	IngestToken string

	TaskWorkers   int
	TaskQueueSize int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./readquest.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		Timezone:       loadTimezone(getEnv("APP_TIMEZONE", "UTC")),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration:  24 * time.Hour,
		UploadMaxSize:  getEnvInt64("UPLOAD_MAX_SIZE", 25*1024*1024),
		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		StorageBucket:  getEnv("STORAGE_BUCKET", ""),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "ReadQuest"),
		IngestToken:    getEnv("INGEST_TOKEN", ""),
		TaskWorkers:    getEnvInt("TASK_WORKERS", 2),
		TaskQueueSize:  getEnvInt("TASK_QUEUE_SIZE", 128),
	}
}

// loadTimezone resolves an IANA timezone name, falling back to UTC
func loadTimezone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: invalid APP_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Warning: invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
