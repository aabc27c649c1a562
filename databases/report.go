package databases

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vehicleseizure/seizure-core/models"
	"github.com/vehicleseizure/seizure-core/storage"
)

const reportIDPrefix = "SR"

// ReportDatabase contains the methods to use with the seizure reports collection
type ReportDatabase struct {
	store storage.KeyValueStore
	audit AuditTrail
}

// NewReportDatabase initializes a new instance of the report database with
// the provided store. audit may be nil when mutations should not be logged.
func NewReportDatabase(store storage.KeyValueStore, audit AuditTrail) *ReportDatabase {
	return &ReportDatabase{store: store, audit: audit}
}

// All returns every report in insertion order, empty when absent.
func (r *ReportDatabase) All() ([]models.SeizureReport, error) {
	return loadList[models.SeizureReport](r.store, SeizureReportsKey)
}

// Add validates and appends a new seizure report. Vehicle number, vehicle
// type, location, reason and a photo are required; the id is assigned as
// SR+epoch-ms, monotonically increasing with creation order.
func (r *ReportDatabase) Add(report models.SeizureReport) (models.SeizureReport, error) {
	switch {
	case report.VehicleInfo.Number == "":
		return models.SeizureReport{}, &models.ValidationError{Field: "vehicleInfo.number", Reason: "required"}
	case report.VehicleInfo.Type == "":
		return models.SeizureReport{}, &models.ValidationError{Field: "vehicleInfo.type", Reason: "required"}
	case report.SeizureDetails.Location == "":
		return models.SeizureReport{}, &models.ValidationError{Field: "seizureDetails.location", Reason: "required"}
	case report.SeizureDetails.Reason == "":
		return models.SeizureReport{}, &models.ValidationError{Field: "seizureDetails.reason", Reason: "required"}
	case report.Photo == "":
		return models.SeizureReport{}, &models.ValidationError{Field: "photo", Reason: "required"}
	}
	if report.Priority != "" && !validPriority(report.Priority) {
		return models.SeizureReport{}, &models.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", report.Priority)}
	}

	reports, err := r.All()
	if err != nil {
		return models.SeizureReport{}, err
	}

	if report.ID == "" {
		report.ID = reportIDPrefix + strconv.FormatInt(nextEpochID(maxReportID(reports)), 10)
	}
	if report.SubmittedAt == "" {
		report.SubmittedAt = nowISO()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}
	if report.Priority == "" {
		report.Priority = models.PriorityMedium
	}
	if report.Documents == nil {
		report.Documents = map[string]models.ReportDocument{}
	}

	reports = append(reports, report)
	if err := storage.SetJSON(r.store, SeizureReportsKey, reports); err != nil {
		return models.SeizureReport{}, err
	}
	if r.audit != nil {
		r.audit.Record("report_submitted", report.ID,
			"Seizure report submitted for vehicle "+report.VehicleInfo.Number, models.SeverityInfo)
	}
	return report, nil
}

// ByID returns the report with the given id.
func (r *ReportDatabase) ByID(id string) (models.SeizureReport, error) {
	report, ok, err := r.Find(func(x models.SeizureReport) bool { return x.ID == id })
	if err != nil {
		return models.SeizureReport{}, err
	}
	if !ok {
		return models.SeizureReport{}, &models.NotFoundError{Resource: "report", ID: id}
	}
	return report, nil
}

// UpdateStatus moves a report to the given status and stamps updatedAt.
// Transitions are unconstrained in direction; only membership is checked.
func (r *ReportDatabase) UpdateStatus(id, status string) (models.SeizureReport, error) {
	if status != models.ReportStatusPending &&
		status != models.ReportStatusReviewed &&
		status != models.ReportStatusResolved {
		return models.SeizureReport{}, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	return r.mutate(id, "report_status_updated", "Status changed to "+status,
		func(report *models.SeizureReport) {
			report.Status = status
			report.UpdatedAt = nowISO()
		})
}

// Assign sets the assignee, priority and due date of a report.
func (r *ReportDatabase) Assign(id string, officerID int64, priority, dueDate string) (models.SeizureReport, error) {
	if priority != "" && !validPriority(priority) {
		return models.SeizureReport{}, &models.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", priority)}
	}

	return r.mutate(id, "report_assigned", "Report assigned to officer "+strconv.FormatInt(officerID, 10),
		func(report *models.SeizureReport) {
			report.AssignedTo = officerID
			if priority != "" {
				report.Priority = priority
			}
			if dueDate != "" {
				report.DueDate = dueDate
			}
			report.UpdatedAt = nowISO()
		})
}

// AttachDocument adds a supporting document to a report under a fresh
// key and returns that key.
func (r *ReportDatabase) AttachDocument(id string, doc models.ReportDocument) (string, error) {
	if doc.Data == "" {
		return "", &models.ValidationError{Field: "document.data", Reason: "required"}
	}
	key := uuid.New().String()
	_, err := r.mutate(id, "document_attached", "Document "+doc.Name+" attached",
		func(report *models.SeizureReport) {
			if report.Documents == nil {
				report.Documents = map[string]models.ReportDocument{}
			}
			report.Documents[key] = doc
			report.UpdatedAt = nowISO()
		})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Find returns the first report matching the predicate.
func (r *ReportDatabase) Find(pred func(models.SeizureReport) bool) (models.SeizureReport, bool, error) {
	reports, err := r.All()
	if err != nil {
		return models.SeizureReport{}, false, err
	}
	for _, report := range reports {
		if pred(report) {
			return report, true, nil
		}
	}
	return models.SeizureReport{}, false, nil
}

// Filter returns every report matching the predicate, in insertion order.
func (r *ReportDatabase) Filter(pred func(models.SeizureReport) bool) ([]models.SeizureReport, error) {
	reports, err := r.All()
	if err != nil {
		return nil, err
	}
	var out []models.SeizureReport
	for _, report := range reports {
		if pred(report) {
			out = append(out, report)
		}
	}
	return out, nil
}

func (r *ReportDatabase) mutate(id, action, details string, apply func(*models.SeizureReport)) (models.SeizureReport, error) {
	reports, err := r.All()
	if err != nil {
		return models.SeizureReport{}, err
	}
	for i := range reports {
		if reports[i].ID != id {
			continue
		}
		apply(&reports[i])
		if err := storage.SetJSON(r.store, SeizureReportsKey, reports); err != nil {
			return models.SeizureReport{}, err
		}
		if r.audit != nil {
			r.audit.Record(action, id, details, models.SeverityInfo)
		}
		return reports[i], nil
	}
	return models.SeizureReport{}, &models.NotFoundError{Resource: "report", ID: id}
}

func validPriority(p string) bool {
	return p == models.PriorityHigh || p == models.PriorityMedium || p == models.PriorityLow
}

// maxReportID extracts the largest epoch-ms suffix among existing ids so
// new ids keep increasing.
func maxReportID(reports []models.SeizureReport) int64 {
	var max int64
	for _, report := range reports {
		n, err := strconv.ParseInt(strings.TrimPrefix(report.ID, reportIDPrefix), 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return max
}
