package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicleseizure/seizure-core/databases"
	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

func TestConfigGet_LazyDefault(t *testing.T) {
	store := storage.NewMemStore()
	db := databases.NewSystemConfigDatabase(store, nil)

	cfg, err := db.Get()
	require.NoError(t, err)
	assert.Equal(t, "Car Seizure Management System", cfg.SystemName)
	assert.Equal(t, 6, cfg.PasswordMinLength)
	assert.Equal(t, 365, cfg.DataRetention)
	assert.Equal(t, "daily", cfg.BackupFrequency)
	assert.Contains(t, cfg.VehicleTypes, "auto")
	assert.Contains(t, cfg.SeizureReasons, "no-documents")

	// the default was persisted, not just returned
	assert.Contains(t, store.Keys(), databases.SystemConfigKey)
}

func TestConfigSave(t *testing.T) {
	db := databases.NewSystemConfigDatabase(storage.NewMemStore(), nil)

	cfg, err := db.Get()
	require.NoError(t, err)
	cfg.SessionTimeout = 30
	cfg.VehicleTypes = []string{"car", "car", "truck"}
	require.NoError(t, db.Save(cfg))

	cfg, err = db.Get()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.SessionTimeout)
	assert.Equal(t, []string{"car", "truck"}, cfg.VehicleTypes)
}

func TestConfigSave_LeavesCallerSliceAlone(t *testing.T) {
	db := databases.NewSystemConfigDatabase(storage.NewMemStore(), nil)

	cfg, err := db.Get()
	require.NoError(t, err)
	mine := []string{"car", "car", "truck"}
	cfg.VehicleTypes = mine
	require.NoError(t, db.Save(cfg))

	assert.Equal(t, []string{"car", "car", "truck"}, mine)
}

func TestConfigReset(t *testing.T) {
	db := databases.NewSystemConfigDatabase(storage.NewMemStore(), nil)

	cfg, err := db.Get()
	require.NoError(t, err)
	cfg.SystemName = "Renamed"
	require.NoError(t, db.Save(cfg))

	require.NoError(t, db.Reset())
	cfg, err = db.Get()
	require.NoError(t, err)
	assert.Equal(t, "Car Seizure Management System", cfg.SystemName)
}

func TestConfigSets(t *testing.T) {
	db := databases.NewSystemConfigDatabase(storage.NewMemStore(), nil)

	require.NoError(t, db.AddVehicleType("tractor"))
	err := db.AddVehicleType("tractor")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "already exists", verr.Reason)

	require.NoError(t, db.RemoveVehicleType("tractor"))
	// removing an unknown item is a no-op
	require.NoError(t, db.RemoveVehicleType("tractor"))

	require.NoError(t, db.AddSeizureReason("expired-permit"))
	cfg, err := db.Get()
	require.NoError(t, err)
	assert.Contains(t, cfg.SeizureReasons, "expired-permit")
	assert.NotContains(t, cfg.VehicleTypes, "tractor")

	err = db.AddVehicleType("")
	assert.ErrorAs(t, err, &verr)
}

func TestConfigDrivesPasswordPolicy(t *testing.T) {
	store := storage.NewMemStore()
	configDB := databases.NewSystemConfigDatabase(store, nil)
	users := databases.NewUserDatabase(store, nil)

	cfg, err := configDB.Get()
	require.NoError(t, err)
	cfg.PasswordMinLength = 10
	require.NoError(t, configDB.Save(cfg))

	_, err = users.Add(models.User{Name: "Strict", Email: "strict@example.com", Password: "secret1"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = users.Add(models.User{Name: "Strict", Email: "strict@example.com", Password: "longenough1"})
	assert.NoError(t, err)
}
