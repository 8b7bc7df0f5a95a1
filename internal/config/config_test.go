package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "SESSION_TTL", "REDIS_DB", "MEDIA_BACKEND", "SMTP_PORT", "IS_PROD", "ALLOW_ADMIN_SIGNUP"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "4040", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "local", cfg.MediaBackend)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.IsProd)
	assert.False(t, cfg.AllowAdminSignup)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("EMAIL_USER", "shop@example.com")
	t.Setenv("CONTACT_RECIPIENT", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
	assert.True(t, cfg.AllowAdminSignup)
	assert.Equal(t, "shop@example.com", cfg.ContactRecipient)
}

func TestLoadConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("SESSION_TTL", "-5m")

	cfg := LoadConfig()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
