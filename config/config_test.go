package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vehicleseizure/seizure-core/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SEIZURE_DATA_DIR", "")
	t.Setenv("SEIZURE_STORE_FILE", "")
	t.Setenv("SEIZURE_BACKUP_DIR", "")

	c := config.New()
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, filepath.Join("data", "seizure-store.json"), c.StoreFile)
	assert.Equal(t, filepath.Join("data", "backups"), c.BackupDir)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("SEIZURE_DATA_DIR", "/var/lib/seizure")
	t.Setenv("SEIZURE_STORE_FILE", "/var/lib/seizure/custom.json")
	t.Setenv("SEIZURE_BACKUP_DIR", "/var/backups/seizure")

	c := config.New()
	assert.Equal(t, "/var/lib/seizure", c.DataDir)
	assert.Equal(t, "/var/lib/seizure/custom.json", c.StoreFile)
	assert.Equal(t, "/var/backups/seizure", c.BackupDir)
}

func TestNew_DerivedPathsFollowDataDir(t *testing.T) {
	t.Setenv("SEIZURE_DATA_DIR", "/tmp/seizure-test")
	t.Setenv("SEIZURE_STORE_FILE", "")
	t.Setenv("SEIZURE_BACKUP_DIR", "")

	c := config.New()
	assert.Equal(t, filepath.Join("/tmp/seizure-test", "seizure-store.json"), c.StoreFile)
	assert.Equal(t, filepath.Join("/tmp/seizure-test", "backups"), c.BackupDir)
}
