package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
)

func dayWithHours(status attendance.Status, hours float64) attendance.DailyRecord {
	return attendance.DailyRecord{
		Status:        status,
		WorkingHours:  decimal.NewFromFloat(hours),
		OvertimeHours: decimal.Zero,
	}
}

func TestSummarize_Counts(t *testing.T) {
	t.Parallel()

	records := []attendance.DailyRecord{
		dayWithHours(attendance.StatusPresent, 8),
		dayWithHours(attendance.StatusLate, 7.5),
		dayWithHours(attendance.StatusHalfDay, 4),
		dayWithHours(attendance.StatusAbsent, 0),
		dayWithHours(attendance.StatusHoliday, 0),
		dayWithHours(attendance.StatusLeave, 0),
	}
	records[1].LateMinutes = 30
	records[2].EarlyOutMinutes = 120

	s := Summarize(records)

	assert.Equal(t, 6, s.TotalDays)
	assert.Equal(t, 1, s.PresentDays)
	assert.Equal(t, 1, s.LateDays)
	assert.Equal(t, 1, s.HalfDays)
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, 1, s.HolidayDays)
	assert.Equal(t, 1, s.LeaveDays)

	// Holidays and leave days do not count toward the working-day base.
	assert.Equal(t, 4, s.WorkingDays)

	assert.Equal(t, "19.50", s.TotalWorkingHours.StringFixed(2))
	assert.Equal(t, 30, s.TotalLateMinutes)
	assert.Equal(t, 120, s.TotalEarlyOutMins)
}

func TestSummarize_Percentages(t *testing.T) {
	t.Parallel()

	records := []attendance.DailyRecord{
		dayWithHours(attendance.StatusPresent, 8),
		dayWithHours(attendance.StatusLate, 7.5),
		dayWithHours(attendance.StatusHalfDay, 4),
		dayWithHours(attendance.StatusAbsent, 0),
	}

	s := Summarize(records)

	// A half day contributes half a day of attendance.
	assert.InDelta(t, 62.5, s.AttendancePct, 0.001)
	assert.InDelta(t, 25, s.PunctualityPct, 0.001)
	assert.Equal(t, "6.50", s.AverageDailyHours.StringFixed(2))
}

func TestSummarize_ZeroDenominators(t *testing.T) {
	t.Parallel()

	t.Run("empty range", func(t *testing.T) {
		t.Parallel()
		s := Summarize(nil)
		assert.Equal(t, 0, s.TotalDays)
		assert.Zero(t, s.AttendancePct)
		assert.Zero(t, s.PunctualityPct)
		assert.True(t, s.AverageDailyHours.IsZero())
	})

	t.Run("only holidays and leave", func(t *testing.T) {
		t.Parallel()
		s := Summarize([]attendance.DailyRecord{
			dayWithHours(attendance.StatusHoliday, 0),
			dayWithHours(attendance.StatusLeave, 0),
		})
		assert.Equal(t, 0, s.WorkingDays)
		assert.Zero(t, s.AttendancePct)
		assert.Zero(t, s.PunctualityPct)
	})

	t.Run("no attended days", func(t *testing.T) {
		t.Parallel()
		s := Summarize([]attendance.DailyRecord{
			dayWithHours(attendance.StatusAbsent, 0),
			dayWithHours(attendance.StatusAbsent, 0),
		})
		assert.Equal(t, 2, s.WorkingDays)
		assert.Zero(t, s.AttendancePct)
		assert.True(t, s.AverageDailyHours.IsZero())
	})
}

func TestSummarize_OvertimeAccumulates(t *testing.T) {
	t.Parallel()

	records := []attendance.DailyRecord{
		dayWithHours(attendance.StatusPresent, 8),
		dayWithHours(attendance.StatusPresent, 8),
	}
	records[0].OvertimeHours = decimal.NewFromFloat(1.5)
	records[1].OvertimeHours = decimal.NewFromFloat(0.75)

	s := Summarize(records)
	assert.Equal(t, "2.25", s.TotalOvertimeHours.StringFixed(2))
}
