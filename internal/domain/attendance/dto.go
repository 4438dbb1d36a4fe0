package attendance

import (
	"github.com/workclock/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

// ReportRequest asks for a reconciliation run over one employee and period.
// Dates are inclusive, formatted YYYY-MM-DD.
type ReportRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	// Persist controls whether the finalized records replace the stored
	// range for this employee. Diagnostics-only runs leave storage alone.
	Persist bool `json:"persist"`

	// Config overrides the company's stored rule configuration when set.
	Config *RuleConfiguration `json:"config,omitempty"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BatchReportRequest fans the same period out across many employees.
// An empty EmployeeIDs list means every active employee in the company.
type BatchReportRequest struct {
	EmployeeIDs []string           `json:"employee_ids,omitempty"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Persist     bool               `json:"persist"`
	Config      *RuleConfiguration `json:"config,omitempty"`
}

func (r *BatchReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty entries",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PunchRequest ingests one raw device punch. Timestamp is RFC3339.
// Direction is an optional device hint and never drives in/out pairing.
type PunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  string  `json:"timestamp"`
	Direction  string  `json:"direction,omitempty"`
	DeviceID   *string `json:"device_id,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC3339 timestamp",
		})
	}

	if r.Direction != "" && !validator.IsInSlice(r.Direction, []string{
		string(DirectionIn), string(DirectionOut), string(DirectionUnknown),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be one of: in, out, unknown",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PunchResponse is the wire shape of one stored punch.
type PunchResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Timestamp  string  `json:"timestamp"`
	Direction  string  `json:"direction"`
	DeviceID   *string `json:"device_id,omitempty"`
}

// DailyRecordResponse is the wire shape of one finalized day.
type DailyRecordResponse struct {
	Date            string  `json:"date"`
	DayOfWeek       string  `json:"day_of_week"`
	Status          string  `json:"status"`
	OriginalStatus  string  `json:"original_status"`
	InTime          *string `json:"in_time"`
	OutTime         *string `json:"out_time"`
	WorkingHours    string  `json:"working_hours"`
	LateMinutes     int     `json:"late_minutes"`
	EarlyOutMinutes int     `json:"early_out_minutes"`
	OvertimeHours   string  `json:"overtime_hours"`
	BreakMinutes    int     `json:"break_minutes"`
	ShiftName       *string `json:"shift_name"`
	ShiftSource     string  `json:"shift_source"`
	HolidayName     *string `json:"holiday_name,omitempty"`
	IsWeekend       bool    `json:"is_weekend"`

	ConvertedFromLate            bool `json:"converted_from_late,omitempty"`
	ConvertedFromMinimumHours    bool `json:"converted_from_minimum_hours,omitempty"`
	ConvertedToHalfDay           bool `json:"converted_to_half_day,omitempty"`
	ConvertedFromIncompletePunch bool `json:"converted_from_incomplete_punch,omitempty"`
	ExcessiveWorkingHours        bool `json:"excessive_working_hours,omitempty"`
	TerminationRisk              bool `json:"termination_risk,omitempty"`
	ExcessiveEarlyOut            bool `json:"excessive_early_out,omitempty"`

	Reason     string `json:"reason,omitempty"`
	FlagReason string `json:"flag_reason,omitempty"`
}

// SummaryResponse is the wire shape of the period statistics.
type SummaryResponse struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	LateDays    int `json:"late_days"`
	LeaveDays   int `json:"leave_days"`
	HolidayDays int `json:"holiday_days"`
	HalfDays    int `json:"half_days"`
	WorkingDays int `json:"working_days"`

	TotalWorkingHours  string `json:"total_working_hours"`
	TotalOvertimeHours string `json:"total_overtime_hours"`
	TotalLateMinutes   int    `json:"total_late_minutes"`
	TotalEarlyOutMins  int    `json:"total_early_out_minutes"`
	TotalBreakMinutes  int    `json:"total_break_minutes"`

	AttendancePct     float64 `json:"attendance_pct"`
	PunctualityPct    float64 `json:"punctuality_pct"`
	AverageDailyHours string  `json:"average_daily_hours"`
}

// FlaggedRecordResponse is one rolling-state threshold crossing.
type FlaggedRecordResponse struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ReportResponse is the full result of one per-employee run.
type ReportResponse struct {
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	Records      []DailyRecordResponse   `json:"records"`
	Summary      SummaryResponse         `json:"summary"`
	ShiftSources map[string]int          `json:"shift_sources"`
	Flagged      []FlaggedRecordResponse `json:"flagged_records"`
}

// BatchReportResponse aggregates per-employee outcomes of a batch run.
type BatchReportResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Reports   []ReportResponse `json:"reports"`
	Errors    map[string]string `json:"errors,omitempty"`
}
