package employee

import (
	"time"
)

// Employee is read-only input to the attendance engine: the engine never
// mutates it during a processing run.
type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string

	// DefaultShiftName references a shift definition by name; nil when the
	// employee has no default shift.
	DefaultShiftName *string

	// ExpectedDailyHours is the nominal working day length used for
	// half-day detection and expected-hours overtime.
	ExpectedDailyHours float64

	// Personal overrides. When nil the global rule configuration applies.
	GraceMinutes              *int
	OvertimeStartAfterMinutes *int

	EmploymentStatus EmploymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
