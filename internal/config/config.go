package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort     string
	WebhookPort string

	// Plaid Identity Verification settings. PlaidEndpointURL is normally
	// empty; when set it overrides the environment base URL (used in tests).
	PlaidEnv                 string
	PlaidClientID            string
	PlaidSecret              string
	PlaidEndpointURL         string
	TemplateID               string
	DataSourceOnlyTemplateID string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	UsersTable     string

	SessionCookieMaxAge int // seconds

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:     getEnv("APP_PORT", "8000"),
		WebhookPort: getEnv("WEBHOOK_PORT", "8001"),

		PlaidEnv:                 strings.ToLower(getEnv("PLAID_ENV", "sandbox")),
		PlaidClientID:            getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:              getEnv("PLAID_SECRET", ""),
		PlaidEndpointURL:         getEnv("PLAID_ENDPOINT_URL", ""),
		TemplateID:               getEnv("TEMPLATE_ID", ""),
		DataSourceOnlyTemplateID: getEnv("DATA_SOURCE_ONLY_NO_SMS_ID", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		UsersTable:     getEnv("DYNAMO_TABLE_USERS", "users"),

		SessionCookieMaxAge: getEnvInt("SESSION_COOKIE_MAX_AGE", 900),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
