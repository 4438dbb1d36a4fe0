package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave applications.
type LeaveRepository interface {
	// ListApprovedByRange returns approved applications whose range
	// overlaps [start, end] for the employee.
	ListApprovedByRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Application, error)
}
