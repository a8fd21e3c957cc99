package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Secret used to derive certificate codes (keyed hash)
	CertificateSecret string

	// External content service that publishes the module/training/video hierarchy
	ContentApiURL string
	ContentApiKey string

	// Cron expressions for background jobs
	HierarchySyncCron string
	ReconcileCron     string

	// Maximum candidate rows swept per reconciliation run
	ReconcileBatchSize int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		CertificateSecret: getEnv("CERTIFICATE_SECRET", "defaultCertSecret"),

		ContentApiURL: getEnv("CONTENT_API_URL", ""),
		ContentApiKey: getEnv("CONTENT_API_KEY", ""),

		HierarchySyncCron: getEnv("HIERARCHY_SYNC_CRON", "0 * * * *"),
		ReconcileCron:     getEnv("RECONCILE_CRON", "*/10 * * * *"),

		ReconcileBatchSize: getEnvInt("RECONCILE_BATCH_SIZE", 500),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.CertificateSecret == "defaultCertSecret" {
		log.Println("Warning: Using default CERTIFICATE_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
