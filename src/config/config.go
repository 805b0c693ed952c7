// backend/src/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application. Values are
// loaded from environment variables, optionally seeded from a .env file.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Security settings
	JWTSecret          string // empty disables API token auth (dev mode)
	MaxUploadSizeBytes int64

	// Statistical recognizer settings
	NERServiceURL string // empty means the statistical engine is unavailable
	NERTimeout    time.Duration

	// Document session settings
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	// Frontend URL for CORS
	FrontendBaseURL string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env
// file. It centralizes all configuration logic for the application.
func LoadConfig() {
	// Try the current directory first, then the parent (common when
	// running from /backend).
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Println("WARNING: JWT_SECRET not set. API token auth is disabled; do not run like this in production.")
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760") // 10MB default
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:                   getEnv("PORT", "8080"),
		DatabasePath:           getEnv("DATABASE_PATH", "./dealparse.db"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		JWTSecret:              jwtSecret,
		MaxUploadSizeBytes:     maxUploadSizeBytes,
		NERServiceURL:          getEnv("NER_SERVICE_URL", ""),
		NERTimeout:             getEnvAsDuration("NER_TIMEOUT", 15*time.Second),
		SessionTTL:             getEnvAsDuration("SESSION_TTL", 1*time.Hour),
		SessionCleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		FrontendBaseURL:        getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
	}

	log.Println("Application configuration loaded.")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("WARNING: Invalid duration format for %s: '%s'. Using default %v. Error: %v", key, valueStr, fallback, err)
		return fallback
	}
	return value
}
