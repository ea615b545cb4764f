package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "PORT", "LOG_MODE", "STORE_DRIVER", "MONGODB_URI", "MONGO_URI", "REDIS_URI",
		"ALLOWED_ORIGINS", "FRONTEND_URL", "TRUST_PROXY", "SMTP_HOST", "SMTP_PORT",
		"SMTP_PASSWORD", "SMTP_PASS", "SMTP_FROM", "EMAIL_FROM", "NOTIFY_EMAIL", "RECIPIENT_EMAIL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017/ai-survey", cfg.MongoURI)
	assert.Empty(t, cfg.RedisURI)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Empty(t, cfg.NotifyEmail)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", " Production ")
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017/x")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TRUST_PROXY", "yes")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("NOTIFY_EMAIL", "")
	t.Setenv("RECIPIENT_EMAIL", "team@example.com")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017/x", cfg.MongoURI)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "secret", cfg.SMTPPassword)
	assert.Equal(t, "team@example.com", cfg.NotifyEmail)
}

func TestGetIntFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "abc")
	assert.Equal(t, 587, getInt("SMTP_PORT", 587))
}

func TestGetBool(t *testing.T) {
	t.Setenv("FLAG", "off")
	assert.False(t, getBool("FLAG", true))
	t.Setenv("FLAG", "maybe")
	assert.True(t, getBool("FLAG", true))
}
