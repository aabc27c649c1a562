package databases

import (
	"errors"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

// SystemConfigDatabase contains the methods to use with the singleton
// system configuration record
type SystemConfigDatabase struct {
	store storage.KeyValueStore
	audit AuditTrail
}

// NewSystemConfigDatabase initializes a new instance of the system config
// database with the provided store. audit may be nil when mutations
// should not be logged.
func NewSystemConfigDatabase(store storage.KeyValueStore, audit AuditTrail) *SystemConfigDatabase {
	return &SystemConfigDatabase{store: store, audit: audit}
}

// Get returns the stored configuration, lazily creating the default
// record when none has been saved yet.
func (s *SystemConfigDatabase) Get() (models.SystemConfig, error) {
	var cfg models.SystemConfig
	err := storage.GetJSON(s.store, SystemConfigKey, &cfg)
	if errors.Is(err, storage.ErrAbsent) {
		cfg = models.DefaultSystemConfig()
		if err := storage.SetJSON(s.store, SystemConfigKey, cfg); err != nil {
			return models.SystemConfig{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return models.SystemConfig{}, err
	}
	return cfg, nil
}

// Save persists the configuration, deduplicating the configurable sets.
func (s *SystemConfigDatabase) Save(cfg models.SystemConfig) error {
	cfg.VehicleTypes = dedupe(cfg.VehicleTypes)
	cfg.SeizureReasons = dedupe(cfg.SeizureReasons)
	if err := storage.SetJSON(s.store, SystemConfigKey, cfg); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Record("config_updated", "Configuration", "System settings modified", models.SeverityInfo)
	}
	return nil
}

// Reset restores the fixed defaults.
func (s *SystemConfigDatabase) Reset() error {
	if err := storage.SetJSON(s.store, SystemConfigKey, models.DefaultSystemConfig()); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Record("config_reset", "Configuration", "System configuration reset to defaults", models.SeverityWarning)
	}
	return nil
}

// AddVehicleType appends a vehicle type, rejecting duplicates.
func (s *SystemConfigDatabase) AddVehicleType(t string) error {
	return s.addItem(t, "vehicleTypes", func(cfg *models.SystemConfig) *[]string { return &cfg.VehicleTypes })
}

// RemoveVehicleType drops a vehicle type; removing an unknown one is a no-op.
func (s *SystemConfigDatabase) RemoveVehicleType(t string) error {
	return s.removeItem(t, func(cfg *models.SystemConfig) *[]string { return &cfg.VehicleTypes })
}

// AddSeizureReason appends a seizure reason, rejecting duplicates.
func (s *SystemConfigDatabase) AddSeizureReason(reason string) error {
	return s.addItem(reason, "seizureReasons", func(cfg *models.SystemConfig) *[]string { return &cfg.SeizureReasons })
}

// RemoveSeizureReason drops a seizure reason; removing an unknown one is a no-op.
func (s *SystemConfigDatabase) RemoveSeizureReason(reason string) error {
	return s.removeItem(reason, func(cfg *models.SystemConfig) *[]string { return &cfg.SeizureReasons })
}

func (s *SystemConfigDatabase) addItem(item, field string, list func(*models.SystemConfig) *[]string) error {
	if item == "" {
		return &models.ValidationError{Field: field, Reason: "required"}
	}
	cfg, err := s.Get()
	if err != nil {
		return err
	}
	target := list(&cfg)
	for _, existing := range *target {
		if existing == item {
			return &models.ValidationError{Field: field, Reason: "already exists"}
		}
	}
	*target = append(*target, item)
	return s.Save(cfg)
}

func (s *SystemConfigDatabase) removeItem(item string, list func(*models.SystemConfig) *[]string) error {
	cfg, err := s.Get()
	if err != nil {
		return err
	}
	target := list(&cfg)
	kept := (*target)[:0]
	for _, existing := range *target {
		if existing != item {
			kept = append(kept, existing)
		}
	}
	*target = kept
	return s.Save(cfg)
}

// dedupe allocates fresh so the caller's slice is never written through.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
