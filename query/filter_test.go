package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/query"
)

func report(id, submittedAt, status, reason, vehicle, location, submitter string) models.SeizureReport {
	return models.SeizureReport{
		ID:          id,
		SubmittedAt: submittedAt,
		SubmittedBy: submitter,
		Status:      status,
		VehicleInfo: models.VehicleInfo{Number: vehicle, Type: "car"},
		SeizureDetails: models.SeizureDetails{
			Location: location,
			Reason:   reason,
		},
	}
}

func fixtureReports() []models.SeizureReport {
	return []models.SeizureReport{
		report("SR1", "2026-08-01T10:00:00.000Z", models.ReportStatusPending, "no-documents", "MH12AB1234", "MG Road", "Officer One"),
		report("SR2", "2026-08-10T09:00:00.000Z", models.ReportStatusResolved, "illegal-parking", "KA01CD5678", "Brigade Road", "Officer Two"),
		report("SR3", "2026-08-05T15:30:00.000Z", models.ReportStatusPending, "no-documents", "DL03EF9012", "MG Road", "Officer One"),
		report("SR4", "2026-08-10T18:00:00.000Z", models.ReportStatusReviewed, "accident", "TN07GH3456", "Anna Salai", "Officer Three"),
	}
}

func TestReports_StatusFilter(t *testing.T) {
	reports := fixtureReports()

	out := query.Reports(reports, query.ReportFilter{Status: models.ReportStatusPending})
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, models.ReportStatusPending, r.Status)
	}

	// "all" and empty both match everything
	assert.Len(t, query.Reports(reports, query.ReportFilter{Status: query.FilterAll}), 4)
	assert.Len(t, query.Reports(reports, query.ReportFilter{}), 4)
}

func TestReports_SortsNewestFirst(t *testing.T) {
	out := query.Reports(fixtureReports(), query.ReportFilter{})
	require.Len(t, out, 4)
	assert.Equal(t, []string{"SR4", "SR2", "SR3", "SR1"}, []string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestReports_DoesNotMutateInput(t *testing.T) {
	reports := fixtureReports()
	_ = query.Reports(reports, query.ReportFilter{})
	assert.Equal(t, "SR1", reports[0].ID)
}

func TestReports_Search(t *testing.T) {
	reports := fixtureReports()

	// vehicle number, case-insensitive
	out := query.Reports(reports, query.ReportFilter{Search: "ka01"})
	require.Len(t, out, 1)
	assert.Equal(t, "SR2", out[0].ID)

	// location
	out = query.Reports(reports, query.ReportFilter{Search: "mg road"})
	assert.Len(t, out, 2)

	// submitter
	out = query.Reports(reports, query.ReportFilter{Search: "officer three"})
	require.Len(t, out, 1)
	assert.Equal(t, "SR4", out[0].ID)

	out = query.Reports(reports, query.ReportFilter{Search: "no-such-thing"})
	assert.Empty(t, out)
}

func TestReports_ReasonFilter(t *testing.T) {
	out := query.Reports(fixtureReports(), query.ReportFilter{Reason: "no-documents"})
	assert.Len(t, out, 2)
}

func TestReports_DateRange(t *testing.T) {
	reports := fixtureReports()

	// dateTo is inclusive through end of day: SR4 at 18:00 on the 10th stays in
	out := query.Reports(reports, query.ReportFilter{DateFrom: "2026-08-05", DateTo: "2026-08-10"})
	require.Len(t, out, 3)
	for _, r := range out {
		assert.NotEqual(t, "SR1", r.ID)
	}

	out = query.Reports(reports, query.ReportFilter{DateFrom: "2026-08-11"})
	assert.Empty(t, out)

	out = query.Reports(reports, query.ReportFilter{DateTo: "2026-08-01"})
	require.Len(t, out, 1)
	assert.Equal(t, "SR1", out[0].ID)
}

func TestReports_UnparseableDatePassesRange(t *testing.T) {
	reports := []models.SeizureReport{
		report("SR9", "garbage", models.ReportStatusPending, "other", "GJ05IJ7890", "Ring Road", "Officer Four"),
	}
	out := query.Reports(reports, query.ReportFilter{DateFrom: "2026-01-01", DateTo: "2026-12-31"})
	assert.Len(t, out, 1)
}

func TestReports_CombinedCriteria(t *testing.T) {
	out := query.Reports(fixtureReports(), query.ReportFilter{
		Status: models.ReportStatusPending,
		Reason: "no-documents",
		Search: "mg road",
	})
	require.Len(t, out, 2)
	assert.Equal(t, "SR3", out[0].ID)
	assert.Equal(t, "SR1", out[1].ID)
}

func TestUsers_Filter(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Admin User", Email: "admin@carseizure.com", IsAdmin: true, Status: models.UserStatusActive},
		{ID: 2, Name: "Jane Doe", Email: "jane@example.com", Status: models.UserStatusActive},
		{ID: 3, Name: "John Roe", Email: "john@example.com", Status: models.UserStatusInactive},
		{ID: 4, Name: "Legacy Officer", Email: "legacy@example.com"}, // no status recorded
	}

	out := query.Users(users, query.UserFilter{Role: "admin"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	out = query.Users(users, query.UserFilter{Role: "officer"})
	assert.Len(t, out, 3)

	// empty status counts as active
	out = query.Users(users, query.UserFilter{Status: models.UserStatusActive})
	assert.Len(t, out, 3)

	out = query.Users(users, query.UserFilter{Status: models.UserStatusInactive})
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)

	out = query.Users(users, query.UserFilter{Search: "JANE"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	out = query.Users(users, query.UserFilter{Search: "example.com", Status: query.FilterAll})
	assert.Len(t, out, 3)
}
