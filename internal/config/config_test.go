package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12*time.Hour, cfg.GuestTokenTTL)
	assert.Equal(t, 7, cfg.DefaultReminderDays)
	assert.Equal(t, "tutor.local", cfg.LoginDomain)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.RequireConfirmation)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DEFAULT_REMINDER_DAYS", "3")
	t.Setenv("REQUIRE_CONFIRMATION", "true")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test, ,http://b.test")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.DefaultReminderDays)
	assert.True(t, cfg.RequireConfirmation)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage", key: "STORAGE", value: "mongo"},
		{name: "duration", key: "TOKEN_TTL", value: "soon"},
		{name: "bool", key: "AUTO_MIGRATE", value: "maybe"},
		{name: "negative window", key: "DEFAULT_REMINDER_DAYS", value: "-1"},
		{name: "jwt secret", key: "JWT_SECRET", value: ""},
		{name: "timezone", key: "TIMEZONE", value: "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
