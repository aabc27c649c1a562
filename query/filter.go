// Package query provides stateless filtering, sorting and aggregation
// over collection snapshots. Nothing here mutates its input.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/vehicleseizure/seizure-core/models"
)

// FilterAll matches every record for a criterion.
const FilterAll = "all"

// ReportFilter holds the admin dashboard filter criteria.
type ReportFilter struct {
	Status   string // "all" or a report status
	Search   string // matched case-insensitively against vehicle number + location + submitter
	Reason   string // "all" or a configured seizure reason
	DateFrom string // YYYY-MM-DD, inclusive
	DateTo   string // YYYY-MM-DD, inclusive through end of day
}

// Reports filters a report snapshot and returns a new slice sorted by
// submission time, newest first, ties keeping insertion order.
func Reports(reports []models.SeizureReport, f ReportFilter) []models.SeizureReport {
	var from, to time.Time
	var hasFrom, hasTo bool
	if t, err := time.Parse("2006-01-02", f.DateFrom); err == nil && f.DateFrom != "" {
		from, hasFrom = t, true
	}
	if t, err := time.Parse("2006-01-02", f.DateTo); err == nil && f.DateTo != "" {
		to, hasTo = t.Add(24*time.Hour-time.Nanosecond), true
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.SeizureReport, 0, len(reports))
	for _, report := range reports {
		if f.Status != "" && f.Status != FilterAll && report.Status != f.Status {
			continue
		}
		if f.Reason != "" && f.Reason != FilterAll && report.SeizureDetails.Reason != f.Reason {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(report.VehicleInfo.Number + " " +
				report.SeizureDetails.Location + " " + report.SubmittedBy)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if hasFrom || hasTo {
			submitted, err := time.Parse(time.RFC3339, report.SubmittedAt)
			// unparseable timestamps pass the date filter, matching the
			// original NaN-comparison behavior
			if err == nil {
				if hasFrom && submitted.Before(from) {
					continue
				}
				if hasTo && submitted.After(to) {
					continue
				}
			}
		}
		out = append(out, report)
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders reports by submittedAt descending, stable so
// ties keep their original insertion order.
func SortNewestFirst(reports []models.SeizureReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return submittedTime(reports[i]).After(submittedTime(reports[j]))
	})
}

func submittedTime(report models.SeizureReport) time.Time {
	t, err := time.Parse(time.RFC3339, report.SubmittedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UserFilter holds the user management screen filter criteria.
type UserFilter struct {
	Role   string // "all", "admin" or "officer"
	Status string // "all", "active" or "inactive"
	Search string // matched case-insensitively against name + email
}

// Users filters a user snapshot, preserving insertion order.
func Users(users []models.User, f UserFilter) []models.User {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.User, 0, len(users))
	for _, user := range users {
		if f.Role == "admin" && !user.IsAdmin {
			continue
		}
		if f.Role == "officer" && user.IsAdmin {
			continue
		}
		if f.Status != "" && f.Status != FilterAll {
			status := user.Status
			if status == "" {
				status = models.UserStatusActive
			}
			if status != f.Status {
				continue
			}
		}
		if search != "" {
			haystack := strings.ToLower(user.Name + " " + user.Email)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, user)
	}
	return out
}
