package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/schedule")
	t.Setenv("ENV", "")
	t.Setenv("EXTRACT_POLL_INTERVAL", "")
	t.Setenv("TEACHER_SYNC_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ExtractPollInterval)
	assert.Equal(t, 5*time.Minute, cfg.ExtractPollTimeout)
	assert.Equal(t, 2, cfg.TeacherSyncWorkers)
	assert.Equal(t, "postgres://localhost/schedule", cfg.GetDBDSN())
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/schedule")
	t.Setenv("EXTRACT_POLL_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/schedule")
	t.Setenv("EXTRACT_POLL_INTERVAL", "2s")
	t.Setenv("TEACHER_SYNC_WORKERS", "4")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.ExtractPollInterval)
	assert.Equal(t, 4, cfg.TeacherSyncWorkers)
	assert.Equal(t, "production", cfg.Environment)
}
