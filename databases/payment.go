package databases

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

const paymentIDPrefix = "PAY"

var mobileNumberRE = regexp.MustCompile(`^\d{10}$`)

// PaymentDatabase contains the methods to use with the vehicle payments
// collection, a map of vehicle number to its append-only payment history
type PaymentDatabase struct {
	store storage.KeyValueStore
	audit AuditTrail
}

// NewPaymentDatabase initializes a new instance of the payment database
// with the provided store. audit may be nil when mutations should not be
// logged.
func NewPaymentDatabase(store storage.KeyValueStore, audit AuditTrail) *PaymentDatabase {
	return &PaymentDatabase{store: store, audit: audit}
}

// All returns the whole payment map keyed by normalized vehicle number.
func (p *PaymentDatabase) All() (map[string][]models.VehiclePayment, error) {
	payments := map[string][]models.VehiclePayment{}
	err := storage.GetJSON(p.store, VehiclePaymentsKey, &payments)
	if errors.Is(err, storage.ErrAbsent) {
		return map[string][]models.VehiclePayment{}, nil
	}
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// Record validates and appends one payment to its vehicle's history.
// The vehicle number is normalized to uppercase; the payment map is left
// untouched when validation fails.
func (p *PaymentDatabase) Record(payment models.VehiclePayment) (models.VehiclePayment, error) {
	payment.VehicleNumber = NormalizeVehicleNumber(payment.VehicleNumber)

	switch {
	case payment.VehicleNumber == "":
		return models.VehiclePayment{}, &models.ValidationError{Field: "vehicleNumber", Reason: "required"}
	case !mobileNumberRE.MatchString(payment.MobileNumber):
		return models.VehiclePayment{}, &models.ValidationError{Field: "mobileNumber", Reason: "must be a 10-digit number"}
	case payment.Amount <= 0:
		return models.VehiclePayment{}, &models.ValidationError{Field: "amount", Reason: "must be positive"}
	case payment.Screenshot == "":
		return models.VehiclePayment{}, &models.ValidationError{Field: "screenshot", Reason: "required"}
	}

	payments, err := p.All()
	if err != nil {
		return models.VehiclePayment{}, err
	}

	if payment.ID == "" {
		payment.ID = paymentIDPrefix + strconv.FormatInt(nextEpochID(maxPaymentID(payments)), 10)
	}
	if payment.Date == "" {
		payment.Date = nowISO()
	}
	if payment.RecordedAt == "" {
		payment.RecordedAt = nowISO()
	}
	if payment.RecordedBy == "" {
		if user, ok := currentUser(p.store); ok {
			payment.RecordedBy = user.Name
		}
	}

	payments[payment.VehicleNumber] = append(payments[payment.VehicleNumber], payment)
	if err := storage.SetJSON(p.store, VehiclePaymentsKey, payments); err != nil {
		return models.VehiclePayment{}, err
	}
	if p.audit != nil {
		p.audit.Record("payment_recorded", "Vehicle "+payment.VehicleNumber,
			fmt.Sprintf("Payment of %.2f recorded for vehicle %s", payment.Amount, payment.VehicleNumber),
			models.SeverityInfo)
	}
	return payment, nil
}

// PaymentsFor returns the payment history of one vehicle in insertion
// order, empty when the vehicle has none.
func (p *PaymentDatabase) PaymentsFor(vehicleNumber string) ([]models.VehiclePayment, error) {
	payments, err := p.All()
	if err != nil {
		return nil, err
	}
	return payments[NormalizeVehicleNumber(vehicleNumber)], nil
}

// TotalFor returns the summed amount and payment count for one vehicle.
func (p *PaymentDatabase) TotalFor(vehicleNumber string) (float64, int, error) {
	history, err := p.PaymentsFor(vehicleNumber)
	if err != nil {
		return 0, 0, err
	}
	var total float64
	for _, payment := range history {
		total += payment.Amount
	}
	return total, len(history), nil
}

// NormalizeVehicleNumber uppercases and trims a vehicle number so lookups
// and history keys agree regardless of input casing.
func NormalizeVehicleNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}

func maxPaymentID(payments map[string][]models.VehiclePayment) int64 {
	var max int64
	for _, history := range payments {
		for _, payment := range history {
			n, err := strconv.ParseInt(strings.TrimPrefix(payment.ID, paymentIDPrefix), 10, 64)
			if err == nil && n > max {
				max = n
			}
		}
	}
	return max
}
