package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	APISecret      string
	AllowedOrigins []string
	AllowedMethods []string

	// Rate limiting (per client IP, process local)
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Document store
	StoreDriver      string
	AWSRegion        string
	DynamoDBTable    string
	DynamoDBEndpoint string

	// Object store
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// Notifications
	RabbitMQURL    string
	NotifyExchange string

	// Static job catalog
	JobsCatalogPath string

	// Passwordless auth
	AuthJWKSURL   string
	AuthJWTSecret string
	AuthClientID  string
	AuthIssuer    string
	FIDO2BaseURL  string
	AdminEmails   string

	// Error log sink
	LogDatabaseURL   string
	LogRetentionDays int

	// Sentry
	SentryDSN string
	AppEnv    string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		APISecret:      getEnv("API_SECRET", ""),
		AllowedOrigins: parseCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		AllowedMethods: parseCSV(getEnv("ALLOWED_METHODS", "GET,HEAD,POST,PATCH,DELETE,OPTIONS")),

		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX", "100"), 100),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"), time.Minute),

		StoreDriver:      getEnv("STORE_DRIVER", "dynamodb"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable:    getEnv("DYNAMODB_TABLE", "careers"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		S3Bucket:    getEnv("S3_BUCKET", "careers-resumes"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		NotifyExchange: getEnv("NOTIFY_EXCHANGE", "careers.events"),

		JobsCatalogPath: getEnv("JOBS_CATALOG_PATH", "jobs.json"),

		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthClientID:  getEnv("AUTH_CLIENT_ID", ""),
		AuthIssuer:    getEnv("AUTH_ISSUER", ""),
		FIDO2BaseURL:  getEnv("FIDO2_BASE_URL", ""),
		AdminEmails:   getEnv("ADMIN_EMAILS", ""),

		LogDatabaseURL:   getEnv("LOG_DATABASE_URL", ""),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

// SessionAuthEnabled reports whether session tokens can be verified at all.
func (c *Config) SessionAuthEnabled() bool {
	return c.AuthJWKSURL != "" || c.AuthJWTSecret != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
