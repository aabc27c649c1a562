package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicleseizure/seizure-core/export"
	"github.com/vehicleseizure/seizure-core/models"
)

func TestReportRows(t *testing.T) {
	reports := []models.SeizureReport{
		{
			ID:          "SR1",
			SubmittedBy: "Officer One",
			SubmittedAt: "2026-08-01T10:00:00.000Z",
			Status:      models.ReportStatusPending,
			VehicleInfo: models.VehicleInfo{Number: "MH12AB1234", Type: "car", Make: "Maruti", Color: "white"},
			SeizureDetails: models.SeizureDetails{
				Location: "MG Road",
				Reason:   "no-documents",
				Notes:    "left near junction",
			},
		},
	}

	rows := export.ReportRows(reports)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(export.ReportHeaders))
	assert.Equal(t, export.Row{
		"SR1", "MH12AB1234", "car", "Maruti", "white",
		"MG Road", "no-documents", "pending", "Officer One", "2026-08-01", "left near junction",
	}, rows[0])
}

func TestReportRows_KeepsUnparseableDate(t *testing.T) {
	rows := export.ReportRows([]models.SeizureReport{{ID: "SR1", SubmittedAt: "garbage"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "garbage", rows[0][9])
}

func TestPaymentRows(t *testing.T) {
	payments := map[string][]models.VehiclePayment{
		"KA01CD5678": {
			{Date: "2026-08-02T09:00:00.000Z", Amount: 1500.5, PaymentType: "fine", PaymentMethod: "upi", MobileNumber: "9876543210", OwnerName: "S. Rao", RecordedBy: "Officer Two"},
		},
		"MH12AB1234": {
			{Date: "2026-08-01T10:00:00.000Z", Amount: 5000, PaymentType: "fine", PaymentMethod: "cash", MobileNumber: "9123456789", OwnerName: "R. Kumar", RecordedBy: "Officer One"},
			{Date: "2026-08-03T10:00:00.000Z", Amount: 2500, PaymentType: "release-fee", PaymentMethod: "upi", MobileNumber: "9123456789", OwnerName: "R. Kumar", RecordedBy: "Officer One"},
		},
	}

	rows := export.PaymentRows(payments)
	require.Len(t, rows, 3)
	// vehicles sorted, histories in insertion order
	assert.Equal(t, "KA01CD5678", rows[0][0])
	assert.Equal(t, "MH12AB1234", rows[1][0])
	assert.Equal(t, "MH12AB1234", rows[2][0])
	assert.Equal(t, "1500.5", rows[0][2])
	assert.Equal(t, "5000", rows[1][2])
	assert.Equal(t, "2026-08-03", rows[2][1])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteCSV(&buf, export.PaymentHeaders, []export.Row{
		{"MH12AB1234", "2026-08-01", "5000", "fine", "cash", "9123456789", "R. Kumar", "Officer One"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Vehicle Number,Date,Amount,Payment Type,Payment Method,Mobile Number,Owner Name,Recorded By", lines[0])
	assert.Equal(t, "MH12AB1234,2026-08-01,5000,fine,cash,9123456789,R. Kumar,Officer One", lines[1])
}

func TestWriteCSV_EscapesFreeText(t *testing.T) {
	reports := []models.SeizureReport{
		{
			ID:          "SR1",
			SubmittedAt: "2026-08-01T10:00:00.000Z",
			VehicleInfo: models.VehicleInfo{Number: "MH12AB1234", Type: "car"},
			SeizureDetails: models.SeizureDetails{
				Location: "Main St, Block 4",
				Reason:   "other",
				Notes:    `owner said "come back tomorrow"`,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, export.ReportHeaders, export.ReportRows(reports)))

	out := buf.String()
	assert.Contains(t, out, `"Main St, Block 4"`)
	assert.Contains(t, out, `"owner said ""come back tomorrow"""`)

	// still exactly two lines: the embedded comma did not split the row
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
}
