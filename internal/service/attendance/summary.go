package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
)

// Summarize reduces a finalized record sequence into period statistics.
// Every division guards a zero denominator by yielding 0.
func Summarize(records []attendance.DailyRecord) attendance.Summary {
	s := attendance.Summary{
		TotalDays:          len(records),
		TotalWorkingHours:  decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
		AverageDailyHours:  decimal.Zero,
	}

	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusLeave:
			s.LeaveDays++
		case attendance.StatusHoliday:
			s.HolidayDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		}

		s.TotalWorkingHours = s.TotalWorkingHours.Add(rec.WorkingHours)
		s.TotalOvertimeHours = s.TotalOvertimeHours.Add(rec.OvertimeHours)
		s.TotalLateMinutes += rec.LateMinutes
		s.TotalEarlyOutMins += rec.EarlyOutMinutes
		s.TotalBreakMinutes += rec.BreakMinutes
	}

	s.WorkingDays = s.TotalDays - s.HolidayDays - s.LeaveDays

	if s.WorkingDays > 0 {
		attended := float64(s.PresentDays+s.LateDays) + 0.5*float64(s.HalfDays)
		s.AttendancePct = attended / float64(s.WorkingDays) * 100
		s.PunctualityPct = float64(s.PresentDays) / float64(s.WorkingDays) * 100
	}

	if worked := s.PresentDays + s.LateDays + s.HalfDays; worked > 0 {
		s.AverageDailyHours = s.TotalWorkingHours.
			Div(decimal.NewFromInt(int64(worked))).
			Round(2)
	}

	return s
}
