package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 2*time.Minute, cfg.HoldTTL)
	assert.Equal(t, time.Minute, cfg.ReaperInterval)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	assert.Equal(t, "file://migrations", cfg.DB.MigrationsPath)
	assert.False(t, cfg.DB.Migrate)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DSN", "postgres://booking@localhost/booking")
	t.Setenv("HOLD_TTL", "90s")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATELIMIT_ENABLED", "false")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://booking@localhost/booking", cfg.DB.DSN)
	assert.Equal(t, 90*time.Second, cfg.HoldTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HOLD_TTL", "90s")

	cfg, err := Load([]string{"-hold-ttl", "5m", "-env", "prod", "-migrate"})
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.HoldTTL)
	assert.Equal(t, "prod", cfg.Env)
	assert.True(t, cfg.DB.Migrate)
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	_, err := Load([]string{"-nope"})
	assert.Error(t, err)
}
