// Package export flattens collections into CSV-ready tabular rows.
// Delivery (file download, attachment) is the caller's concern.
package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/vehicleseizure/seizure-core/models"
)

// Row is one flat record, string fields only, in header order.
type Row []string

// ReportHeaders is the column set of the seizure report export.
var ReportHeaders = Row{
	"Report ID", "Vehicle Number", "Type", "Make", "Color",
	"Location", "Reason", "Status", "Submitted By", "Date", "Notes",
}

// ReportRows flattens reports into export rows, nested fields dotted out
// into their own columns, preserving input order.
func ReportRows(reports []models.SeizureReport) []Row {
	rows := make([]Row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, Row{
			r.ID,
			r.VehicleInfo.Number,
			r.VehicleInfo.Type,
			r.VehicleInfo.Make,
			r.VehicleInfo.Color,
			r.SeizureDetails.Location,
			r.SeizureDetails.Reason,
			r.Status,
			r.SubmittedBy,
			datePart(r.SubmittedAt),
			r.SeizureDetails.Notes,
		})
	}
	return rows
}

// PaymentHeaders is the column set of the vehicle payment export.
var PaymentHeaders = Row{
	"Vehicle Number", "Date", "Amount", "Payment Type",
	"Payment Method", "Mobile Number", "Owner Name", "Recorded By",
}

// PaymentRows flattens the per-vehicle payment map into export rows,
// each history in insertion order. The map carries no insertion order,
// so vehicles are emitted in sorted order to keep the output
// deterministic.
func PaymentRows(payments map[string][]models.VehiclePayment) []Row {
	vehicles := make([]string, 0, len(payments))
	for v := range payments {
		vehicles = append(vehicles, v)
	}
	sort.Strings(vehicles)

	var rows []Row
	for _, vehicle := range vehicles {
		for _, p := range payments[vehicle] {
			rows = append(rows, Row{
				vehicle,
				datePart(p.Date),
				strconv.FormatFloat(p.Amount, 'f', -1, 64),
				p.PaymentType,
				p.PaymentMethod,
				p.MobileNumber,
				p.OwnerName,
				p.RecordedBy,
			})
		}
	}
	return rows
}

// WriteCSV writes headers then rows through encoding/csv, so embedded
// commas and quotes in free-text fields are escaped correctly.
func WriteCSV(w io.Writer, headers Row, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func datePart(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Format("2006-01-02")
}
