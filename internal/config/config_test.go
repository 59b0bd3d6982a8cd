package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "incident-desk", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.False(t, cfg.Storage.AutoSave)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "FILE")
	t.Setenv("STORAGE_FILE_PATH", "/tmp/desk.json")
	t.Setenv("STORAGE_AUTOSAVE", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/desk.json", cfg.Storage.FilePath)
	assert.True(t, cfg.Storage.AutoSave)
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.EqualValues(t, 10, cfg.Postgres.MaxConns)
}

func TestLoadRejectsBadStorage(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "floppy")
		_, err := Load()
		assert.ErrorContains(t, err, "STORAGE_BACKEND")
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "postgres")
		t.Setenv("POSTGRES_DSN", "")
		_, err := Load()
		assert.ErrorContains(t, err, "POSTGRES_DSN")
	})

	t.Run("bad redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "one")
		_, err := Load()
		assert.ErrorContains(t, err, "REDIS_DB")
	})
}
