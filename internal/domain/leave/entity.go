package leave

import "time"

// ApprovalStatus of a leave application. Only approved applications
// contribute leave dates to attendance processing.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Application is an employee leave request over an inclusive date range.
type Application struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Status     ApprovalStatus
	Reason     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the application's range contains the date.
func (a Application) Covers(date time.Time) bool {
	return !date.Before(a.StartDate) && !date.After(a.EndDate)
}
