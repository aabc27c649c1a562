package models

// SystemConfig is the singleton configuration record managed from the
// admin config screen
type SystemConfig struct {
	SystemName            string   `json:"systemName"`
	OrganizationName      string   `json:"organizationName"`
	ContactEmail          string   `json:"contactEmail"`
	Timezone              string   `json:"timezone"`
	EmailNotifications    bool     `json:"emailNotifications"`
	SMSNotifications      bool     `json:"smsNotifications"`
	PushNotifications     bool     `json:"pushNotifications"`
	NotificationFrequency string   `json:"notificationFrequency"`
	SessionTimeout        int      `json:"sessionTimeout"`
	PasswordMinLength     int      `json:"passwordMinLength"`
	RequirePasswordChange bool     `json:"requirePasswordChange"`
	EnableAuditLog        bool     `json:"enableAuditLog"`
	DataRetention         int      `json:"dataRetention"`
	BackupFrequency       string   `json:"backupFrequency"`
	VehicleTypes          []string `json:"vehicleTypes"`
	SeizureReasons        []string `json:"seizureReasons"`
}

// DefaultSystemConfig returns the fixed fallback configuration used when
// no record has been saved yet.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		SystemName:            "Car Seizure Management System",
		OrganizationName:      "Traffic Police Department",
		ContactEmail:          "admin@traffic.gov",
		Timezone:              "Asia/Kolkata",
		EmailNotifications:    true,
		SMSNotifications:      false,
		PushNotifications:     true,
		NotificationFrequency: "immediate",
		SessionTimeout:        60,
		PasswordMinLength:     6,
		RequirePasswordChange: false,
		EnableAuditLog:        true,
		DataRetention:         365,
		BackupFrequency:       "daily",
		VehicleTypes:          []string{"car", "motorcycle", "truck", "bus", "auto"},
		SeizureReasons:        []string{"no-documents", "traffic-violation", "illegal-parking", "accident", "other"},
	}
}
