package query

import (
	"math"
	"sort"
	"time"

	"github.com/vehicleseizure/seizure-core/models"
)

// overdueAfter is how long a report may stay unresolved before it counts
// as overdue on the report management screen.
const overdueAfter = 7 * 24 * time.Hour

// StatusCounts tallies reports per status.
func StatusCounts(reports []models.SeizureReport) map[string]int {
	counts := map[string]int{}
	for _, report := range reports {
		counts[report.Status]++
	}
	return counts
}

// MonthCount is one point of the seizure trend chart.
type MonthCount struct {
	Month string // YYYY-MM
	Count int
}

// MonthlyCounts groups reports by submission month, ascending.
func MonthlyCounts(reports []models.SeizureReport) []MonthCount {
	counts := map[string]int{}
	for _, report := range reports {
		t, err := time.Parse(time.RFC3339, report.SubmittedAt)
		if err != nil {
			continue
		}
		counts[t.UTC().Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthCount, 0, len(months))
	for _, month := range months {
		out = append(out, MonthCount{Month: month, Count: counts[month]})
	}
	return out
}

// LocationCount is one row of the top seizure locations panel.
type LocationCount struct {
	Location string
	Count    int
}

// TopLocations returns the n most frequent seizure locations, ties
// broken by first-seen order.
func TopLocations(reports []models.SeizureReport, n int) []LocationCount {
	counts := map[string]int{}
	var firstSeen []string
	for _, report := range reports {
		loc := report.SeizureDetails.Location
		if counts[loc] == 0 {
			firstSeen = append(firstSeen, loc)
		}
		counts[loc]++
	}

	out := make([]LocationCount, 0, len(firstSeen))
	for _, loc := range firstSeen {
		out = append(out, LocationCount{Location: loc, Count: counts[loc]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ReasonCounts tallies reports per seizure reason.
func ReasonCounts(reports []models.SeizureReport) map[string]int {
	counts := map[string]int{}
	for _, report := range reports {
		counts[report.SeizureDetails.Reason]++
	}
	return counts
}

// VehicleTypeCounts tallies reports per vehicle type.
func VehicleTypeCounts(reports []models.SeizureReport) map[string]int {
	counts := map[string]int{}
	for _, report := range reports {
		counts[report.VehicleInfo.Type]++
	}
	return counts
}

// AverageResolutionHours returns the mean time from submission to last
// update over resolved reports, in whole hours, rounded. Zero when no
// report is resolved.
func AverageResolutionHours(reports []models.SeizureReport) int {
	var total time.Duration
	var resolved int
	for _, report := range reports {
		if report.Status != models.ReportStatusResolved {
			continue
		}
		submitted, err := time.Parse(time.RFC3339, report.SubmittedAt)
		if err != nil {
			continue
		}
		end := submitted
		if t, err := time.Parse(time.RFC3339, report.UpdatedAt); err == nil {
			end = t
		}
		total += end.Sub(submitted)
		resolved++
	}
	if resolved == 0 {
		return 0
	}
	mean := total.Hours() / float64(resolved)
	return int(math.Round(mean))
}

// Overdue counts reports older than seven days that are not resolved.
func Overdue(reports []models.SeizureReport, now time.Time) int {
	var count int
	for _, report := range reports {
		if report.Status == models.ReportStatusResolved {
			continue
		}
		submitted, err := time.Parse(time.RFC3339, report.SubmittedAt)
		if err != nil {
			continue
		}
		if now.Sub(submitted) > overdueAfter {
			count++
		}
	}
	return count
}

// RecentReports returns the n most recently submitted reports.
func RecentReports(reports []models.SeizureReport, n int) []models.SeizureReport {
	out := make([]models.SeizureReport, len(reports))
	copy(out, reports)
	SortNewestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AuditActivity summarizes the audit trail for the stats header.
type AuditActivity struct {
	Total             int
	Today             int
	ActiveUsersToday  int
	FailedLoginsToday int
}

// AuditStats aggregates audit entries relative to now's calendar day.
func AuditStats(entries []models.AuditLogEntry, now time.Time) AuditActivity {
	activity := AuditActivity{Total: len(entries)}
	today := now.UTC().Format("2006-01-02")
	users := map[int64]bool{}

	for _, entry := range entries {
		t, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil || t.UTC().Format("2006-01-02") != today {
			continue
		}
		activity.Today++
		users[entry.UserID] = true
		if entry.Action == "login_failed" {
			activity.FailedLoginsToday++
		}
	}
	activity.ActiveUsersToday = len(users)
	return activity
}
