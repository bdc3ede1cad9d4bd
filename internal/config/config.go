package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret   string
	JWTExpiry   time.Duration
	AdminAPIKey string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	AppleClientID      string
	AppleTeamID        string
	AppleKeyID         string
	ApplePrivateKey    string // PEM-encoded ES256 key from the Apple developer portal

	// Email
	EmailFrom    string
	ResendAPIKey string

	// AI generation
	OpenAIAPIKey string
	OpenAIModel  string

	// Monthly recap job
	RecapScheduleEnabled bool
	RecapScheduleTZ      string
	RecapWorkerLimit     int

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, used for feedback screenshots)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: for S3-compatible services (MinIO, R2, etc.)
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Golf Improver"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envRequired("APP_URL"), // Required: base URL for email links and OAuth redirects
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@golfimprover.app"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/golfimprover.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:   envRequired("JWT_SECRET"),
		JWTExpiry:   envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		AdminAPIKey: envString("ADMIN_API_KEY", ""),

		// OAuth
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),
		AppleClientID:      envString("APPLE_CLIENT_ID", ""),
		AppleTeamID:        envString("APPLE_TEAM_ID", ""),
		AppleKeyID:         envString("APPLE_KEY_ID", ""),
		ApplePrivateKey:    envString("APPLE_PRIVATE_KEY", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@golfimprover.app"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// AI generation
		OpenAIAPIKey: envString("OPENAI_API_KEY", ""),
		OpenAIModel:  envString("OPENAI_MODEL", "gpt-3.5-turbo-0125"),

		// Monthly recap job (in-process replacement for the old cron trigger)
		RecapScheduleEnabled: envBool("RECAP_SCHEDULE_ENABLED", true),
		RecapScheduleTZ:      envString("RECAP_SCHEDULE_TZ", "America/New_York"),
		RecapWorkerLimit:     envInt("RECAP_WORKER_LIMIT", 8),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (optional - feedback screenshot uploads are skipped without it)
		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production
// deployments. Development allows fallback modes (logged email, no OpenAI key) for
// easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.AdminAPIKey == "" {
		slog.Error("production deployment requires ADMIN_API_KEY",
			"hint", "the admin recap endpoint is unusable without it")
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		slog.Error("production deployment requires OPENAI_API_KEY",
			"hint", "practice plan and recap generation call the OpenAI API")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,

		EmailFrom: c.EmailFrom,

		GoogleClientID: c.GoogleClientID,
		AppleClientID:  c.AppleClientID,
	}
}
