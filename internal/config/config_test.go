package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "COOKIE_SECURE", "CACHE_TTL", "LOGIN_RATE_LIMIT", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.InitAdminEnabled)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("INIT_ADMIN_ENABLED", "false")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.InitAdminEnabled)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestValidateRequiresSecretWithSecureCookies(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("COOKIE_SECURE", "")

	cfg := Load()
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
	assert.Error(t, cfg.Validate())

	cfg.CookieSecure = false
	assert.NoError(t, cfg.Validate())

	t.Setenv("SESSION_SECRET", "a-long-random-secret")
	assert.NoError(t, Load().Validate())
}
