package employee

import (
	"context"
)

// EmployeeRepository defines data access for employee descriptors. All
// methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActive returns employees whose employment status is active.
	ListActive(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns every company that has at least one active
	// employee. Used by scheduled jobs that sweep all tenants.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
