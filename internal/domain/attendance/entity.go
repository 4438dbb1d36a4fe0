package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the final daily attendance verdict.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusHalfDay Status = "HALF_DAY"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusLeave),
	string(StatusHoliday),
	string(StatusHalfDay),
}

// ShiftSource records how the shift applied to a day was determined.
type ShiftSource string

const (
	SourceRosterDay        ShiftSource = "ROSTER_DAY"
	SourceRosterAssignment ShiftSource = "ROSTER_ASSIGNMENT"
	SourceDefault          ShiftSource = "DEFAULT"
	SourceDynamic          ShiftSource = "DYNAMIC"
	SourceFallbackDefault  ShiftSource = "FALLBACK_DEFAULT"
	SourceFallbackFixed    ShiftSource = "FALLBACK_FIXED"
	SourceNone             ShiftSource = "NONE"
)

// PunchDirection is a device-supplied hint. Direction is inferred from
// ordering within a day, never from this field.
type PunchDirection string

const (
	DirectionIn      PunchDirection = "in"
	DirectionOut     PunchDirection = "out"
	DirectionUnknown PunchDirection = "unknown"
)

// PunchEvent is a single raw clock event from a biometric device.
type PunchEvent struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Timestamp  time.Time
	Direction  PunchDirection
	DeviceID   *string
	CreatedAt  time.Time
}

// DailyRecord is the engine output: exactly one per employee per calendar
// date in the processed range. Created fresh each run and never mutated
// outside the pipeline that produced it.
type DailyRecord struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	DayOfWeek  string

	Status         Status
	OriginalStatus Status

	InTime  *time.Time
	OutTime *time.Time

	WorkingHours    decimal.Decimal
	LateMinutes     int
	EarlyOutMinutes int
	OvertimeHours   decimal.Decimal
	BreakMinutes    int

	ShiftName   *string
	ShiftSource ShiftSource

	HolidayName *string
	IsWeekend   bool

	ConvertedFromLate            bool
	ConvertedFromMinimumHours    bool
	ConvertedToHalfDay           bool
	ConvertedFromIncompletePunch bool
	ExcessiveWorkingHours        bool
	TerminationRisk              bool
	ExcessiveEarlyOut            bool

	Reason     string
	FlagReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FlagType classifies flagged-record entries produced by the sequence pass.
type FlagType string

const (
	FlagTerminationRisk   FlagType = "TERMINATION_RISK"
	FlagExcessiveEarlyOut FlagType = "EXCESSIVE_EARLY_OUT"
)

// FlaggedRecord marks a date on which a rolling-state threshold was crossed,
// with the supporting count at that point.
type FlaggedRecord struct {
	Date  time.Time
	Type  FlagType
	Count int
}

// Summary holds the period statistics reduced from a finalized record sequence.
type Summary struct {
	TotalDays   int
	PresentDays int
	AbsentDays  int
	LateDays    int
	LeaveDays   int
	HolidayDays int
	HalfDays    int
	WorkingDays int

	TotalWorkingHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	TotalLateMinutes   int
	TotalEarlyOutMins  int
	TotalBreakMinutes  int

	AttendancePct     float64
	PunctualityPct    float64
	AverageDailyHours decimal.Decimal
}

// DateKey formats a calendar date the way roster, holiday and leave lookups
// are keyed.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
