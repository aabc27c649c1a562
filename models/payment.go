package models

// VehiclePayment holds one payment record in the per-vehicle payment history.
// Records are append-only; there is no edit or delete flow.
type VehiclePayment struct {
	ID            string  `json:"id"`
	VehicleNumber string  `json:"vehicleNumber"`
	MobileNumber  string  `json:"mobileNumber"`
	OwnerName     string  `json:"ownerName,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"paymentType"`
	PaymentMethod string  `json:"paymentMethod"`
	Screenshot    string  `json:"screenshot"`
	Date          string  `json:"date"`
	RecordedBy    string  `json:"recordedBy"`
	RecordedAt    string  `json:"recordedAt"`
}
