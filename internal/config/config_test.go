package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "America/Bogota", cfg.ClinicTimezone)
	assert.Equal(t, 62, cfg.MaxAvailabilityDays)
	assert.Equal(t, StoragePostgres, cfg.Storage)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("MAX_AVAILABILITY_DAYS", "14")
	t.Setenv("ARCHIVE_BUCKET", "clinic-archive")
	t.Setenv("CORS_ORIGINS", "https://app.clinic.test, https://admin.clinic.test,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 14, cfg.MaxAvailabilityDays)
	assert.Equal(t, "clinic-archive", cfg.ArchiveBucket)
	assert.Equal(t, []string{"https://app.clinic.test", "https://admin.clinic.test"}, cfg.Origins())
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "mongo")

	_, err := Load()
	assert.Error(t, err)
}
