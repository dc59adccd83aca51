package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBConn          string
	Storage         string
	AutoMigrate     bool
	LogLevel        string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	JWTSecret           string
	TokenTTL            time.Duration
	GuestTokenTTL       time.Duration
	LoginDomain         string
	RequireConfirmation bool

	DefaultReminderDays int
	Timezone            string
	Location            *time.Location

	GeminiAPIKey string
	GeminiURL    string
	GeminiModel  string

	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	RemindersEnabled bool
	ReminderCron     string
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// NewConfig loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func NewConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=tutor sslmode=disable"),
		Storage:        strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		LoginDomain:    getEnv("LOGIN_DOMAIN", "tutor.local"),
		Timezone:       getEnv("TIMEZONE", "Local"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiURL:      getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "25"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@tutor.local"),
		ReminderCron:   getEnv("REMINDER_CRON", "0 8 * * *"),
	}

	var err error
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.RequireConfirmation, err = getBool("REQUIRE_CONFIRMATION", false); err != nil {
		return nil, err
	}
	if cfg.RemindersEnabled, err = getBool("REMINDERS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.GuestTokenTTL, err = getDuration("GUEST_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultReminderDays, err = getInt("DEFAULT_REMINDER_DAYS", 7); err != nil {
		return nil, err
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}
	if cfg.Storage == StoragePostgres && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DefaultReminderDays < 0 {
		return nil, fmt.Errorf("DEFAULT_REMINDER_DAYS must not be negative")
	}
	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, defaultVal int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
