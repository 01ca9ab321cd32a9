package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/bookings")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 5, cfg.ExpireIntervalMinutes)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/bookings")
	t.Setenv("EXPIRE_INTERVAL_MINUTES", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/bookings")
	t.Setenv("ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}
