package shift

import (
	"time"
)

// Definition is immutable reference data describing one shift. Start and
// end are times of day in "15:04" form; an end before the start marks an
// overnight shift spanning midnight.
type Definition struct {
	ID        string
	CompanyID string
	Name      string
	StartTime string
	EndTime   string

	BreakMinutes int

	// GraceMinutes overrides the global grace period when set and the
	// configuration enables shift-specific grace.
	GraceMinutes *int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOvernight reports whether the shift spans midnight.
func (d Definition) IsOvernight() bool {
	return clockMinutes(d.EndTime) < clockMinutes(d.StartTime)
}

// StartOn anchors the shift start to the given calendar date.
func (d Definition) StartOn(date time.Time) time.Time {
	h, m := clockParts(d.StartTime)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// EndOn anchors the shift end to the given calendar date, normalizing
// overnight shifts onto the following day.
func (d Definition) EndOn(date time.Time) time.Time {
	h, m := clockParts(d.EndTime)
	end := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
	if d.IsOvernight() {
		end = end.Add(24 * time.Hour)
	}
	return end
}

// Duration returns the scheduled shift length including breaks.
func (d Definition) Duration() time.Duration {
	start := clockMinutes(d.StartTime)
	end := clockMinutes(d.EndTime)
	if end < start {
		end += 24 * 60
	}
	return time.Duration(end-start) * time.Minute
}

func clockParts(s string) (hour, minute int) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}

func clockMinutes(s string) int {
	h, m := clockParts(s)
	return h*60 + m
}

// RosterDay binds an employee to a shift on one exact date. It beats any
// assignment covering the same date.
type RosterDay struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time

	// ShiftName may be nil for a roster day that only marks presence
	// planning without a concrete shift.
	ShiftName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RosterAssignment binds an employee to a shift over a date range
// (inclusive on both ends).
type RosterAssignment struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ShiftName  *string
	StartDate  time.Time
	EndDate    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the assignment's range contains the date.
func (a RosterAssignment) Covers(date time.Time) bool {
	return !date.Before(a.StartDate) && !date.After(a.EndDate)
}
