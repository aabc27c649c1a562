package models

// Seizure report statuses. Storage does not constrain the transition
// direction, only membership.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// Report priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Coordinates is a GPS fix stored verbatim from the geolocation provider
type Coordinates struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// VehicleInfo holds the seized vehicle identification fields
type VehicleInfo struct {
	Number string `json:"number"`
	Type   string `json:"type"`
	Make   string `json:"make"`
	Color  string `json:"color"`
}

// SeizureDetails holds the where/why of a seizure
type SeizureDetails struct {
	Location string `json:"location"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes,omitempty"`
}

// ReportDocument is a supporting document attached to a report,
// stored as a base64 data URI
type ReportDocument struct {
	Name string `json:"name"`
	Data string `json:"data"`
	Type string `json:"type"`
}

// SeizureReport holds the structure for an entry in the seizureReports collection
type SeizureReport struct {
	ID             string                    `json:"id"`
	SubmittedBy    string                    `json:"submittedBy"`
	SubmittedByID  int64                     `json:"submittedById"`
	SubmittedAt    string                    `json:"submittedAt"`
	Status         string                    `json:"status"`
	Priority       string                    `json:"priority,omitempty"`
	AssignedTo     int64                     `json:"assignedTo,omitempty"`
	DueDate        string                    `json:"dueDate,omitempty"`
	Coordinates    *Coordinates              `json:"coordinates,omitempty"`
	VehicleInfo    VehicleInfo               `json:"vehicleInfo"`
	SeizureDetails SeizureDetails            `json:"seizureDetails"`
	Photo          string                    `json:"photo,omitempty"`
	Documents      map[string]ReportDocument `json:"documents"`
	UpdatedAt      string                    `json:"updatedAt,omitempty"`
}
