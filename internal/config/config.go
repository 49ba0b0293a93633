package config

import (
	"os"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables

	// PendingStore selects where OTP state lives: "dynamo" (default) or "redis".
	PendingStore  string
	RedisAddr     string
	RedisPassword string

	// MailProvider selects the outbound channel: "smtp", "sendgrid",
	// or "none" to disable delivery (issuance then fails as unconfigured).
	MailProvider   string
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SendGridAPIKey string
	SendGridFrom   string

	// DownloadURL is the gated resource handed out after verification.
	// When empty and DownloadS3Bucket/Key are set, a presigned S3 URL
	// is generated per verification instead.
	DownloadURL      string
	DownloadS3Bucket string
	DownloadS3Key    string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Agreements           string
	PendingVerifications string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Agreements:           getEnv("DYNAMO_TABLE_AGREEMENTS", "agreements"),
			PendingVerifications: getEnv("DYNAMO_TABLE_PENDING_VERIFICATIONS", "pending_verifications"),
		},

		PendingStore:  getEnv("PENDING_STORE", "dynamo"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		MailProvider:   getEnv("MAIL_PROVIDER", "smtp"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SendGridFrom:   getEnv("SENDGRID_FROM", "noreply@example.com"),

		DownloadURL:      getEnv("APK_DOWNLOAD_URL", ""),
		DownloadS3Bucket: getEnv("DOWNLOAD_S3_BUCKET", ""),
		DownloadS3Key:    getEnv("DOWNLOAD_S3_KEY", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
