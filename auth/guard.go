package auth

import "github.com/vehicleseizure/seizure-core/models"

// Page identifiers, mirroring the navigation targets of the UI shell.
const (
	PageLogin            = "index"
	PageUserDashboard    = "user-dashboard"
	PageAdminDashboard   = "admin-dashboard"
	PageUserManagement   = "user-management"
	PageSystemConfig     = "system-config"
	PageReportManagement = "report-management"
	PageAuditTrail       = "audit-trail"
	PageAnalytics        = "analytics"
)

var adminPages = map[string]bool{
	PageAdminDashboard:   true,
	PageUserManagement:   true,
	PageSystemConfig:     true,
	PageReportManagement: true,
	PageAuditTrail:       true,
	PageAnalytics:        true,
}

var dashboardPages = map[string]bool{
	PageUserDashboard:    true,
	PageAdminDashboard:   true,
	PageUserManagement:   true,
	PageSystemConfig:     true,
	PageReportManagement: true,
	PageAuditTrail:       true,
	PageAnalytics:        true,
}

// Access is the guard decision for one page load.
type Access struct {
	Allowed  bool
	Redirect string // target page when denied
}

// CheckAccess guards a page against the current session: dashboards
// require a session, admin pages require an admin. Allowed page loads
// are audited as page accesses.
func (g *Gate) CheckAccess(page string) (Access, error) {
	user, ok := g.Current()

	if dashboardPages[page] && !ok {
		return Access{Redirect: PageLogin}, &models.PermissionError{Page: page}
	}
	if adminPages[page] && !user.IsAdmin {
		return Access{Redirect: PageUserDashboard}, &models.PermissionError{Page: page}
	}
	// only protected-page loads are audited
	if ok && dashboardPages[page] && g.audit != nil {
		g.audit.Record("page_access", page, "Accessed "+page, models.SeverityInfo)
	}
	return Access{Allowed: true}, nil
}

// HomeFor is the dashboard a freshly authenticated user lands on.
func HomeFor(user models.User) string {
	if user.IsAdmin {
		return PageAdminDashboard
	}
	return PageUserDashboard
}
