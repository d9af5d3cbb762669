package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "https://api.stripe.com", cfg.Stripe.BaseURL)
	assert.Equal(t, 100, cfg.Stripe.PageSize)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MRRBOARD_SERVER_ADDR", ":9090")
	t.Setenv("MRRBOARD_DATABASE_DRIVER", "postgres")
	t.Setenv("MRRBOARD_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
}
