package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
)

func punch(day, clock string) attendance.PunchEvent {
	return attendance.PunchEvent{
		EmployeeID: "emp-1",
		CompanyID:  "co-1",
		Timestamp:  at(day, clock),
	}
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:                 "emp-1",
		CompanyID:          "co-1",
		FullName:           "Test Employee",
		DefaultShiftName:   strPtr("Morning"),
		ExpectedDailyHours: 8,
		EmploymentStatus:   employee.EmploymentStatusActive,
	}
}

func weekInput(punches []attendance.PunchEvent) RunInput {
	return RunInput{
		StartDate: at("2026-03-02", "00:00"), // Monday
		EndDate:   at("2026-03-08", "00:00"), // Sunday
		Punches:   punches,
		Shifts:    testCatalog(),
	}
}

func mustEngine(t *testing.T, cfg attendance.RuleConfiguration) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	return engine
}

func TestEngine_InvalidDateRange(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())
	_, err := engine.Run(testEmployee(), RunInput{
		StartDate: at("2026-03-08", "00:00"),
		EndDate:   at("2026-03-02", "00:00"),
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}

func TestEngine_OneRecordPerDate(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())
	result, err := engine.Run(testEmployee(), weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "09:10"),
		punch("2026-03-02", "17:30"),
	}))
	require.NoError(t, err)
	require.Len(t, result.Records, 7)

	for i, rec := range result.Records {
		assert.Equal(t, at("2026-03-02", "00:00").AddDate(0, 0, i), rec.Date)
	}

	monday := result.Records[0]
	assert.Equal(t, attendance.StatusPresent, monday.Status)
	assert.Equal(t, "7.33", monday.WorkingHours.StringFixed(2))
	assert.Equal(t, attendance.SourceDefault, monday.ShiftSource)
	require.NotNil(t, monday.ShiftName)
	assert.Equal(t, "Morning", *monday.ShiftName)

	for _, rec := range result.Records[1:5] {
		assert.Equal(t, attendance.StatusAbsent, rec.Status)
		assert.Equal(t, "no punches recorded", rec.Reason)
	}

	for _, rec := range result.Records[5:] {
		assert.Equal(t, attendance.StatusHoliday, rec.Status)
		assert.True(t, rec.IsWeekend)
	}

	assert.Equal(t, 1, result.SourceCounts[attendance.SourceDefault])

	sum := result.Summary
	assert.Equal(t, 7, sum.TotalDays)
	assert.Equal(t, 1, sum.PresentDays)
	assert.Equal(t, 4, sum.AbsentDays)
	assert.Equal(t, 2, sum.HolidayDays)
	assert.Equal(t, 5, sum.WorkingDays)
	assert.InDelta(t, 20, sum.AttendancePct, 0.01)
}

func TestEngine_MultiplePunchesCollapseToPair(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())
	result, err := engine.Run(testEmployee(), weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "12:00"),
		punch("2026-03-02", "09:00"),
		punch("2026-03-02", "17:00"),
	}))
	require.NoError(t, err)

	monday := result.Records[0]
	require.NotNil(t, monday.InTime)
	require.NotNil(t, monday.OutTime)
	assert.Equal(t, at("2026-03-02", "09:00"), *monday.InTime)
	assert.Equal(t, at("2026-03-02", "17:00"), *monday.OutTime)
}

func TestEngine_SinglePunchHasNoOut(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())
	result, err := engine.Run(testEmployee(), weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "09:00"),
	}))
	require.NoError(t, err)

	monday := result.Records[0]
	require.NotNil(t, monday.InTime)
	assert.Nil(t, monday.OutTime)
	assert.True(t, monday.WorkingHours.IsZero())
}

func TestEngine_LateStreakConversion(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.LateToAbsentDays = 3
	engine := mustEngine(t, cfg)

	var punches []attendance.PunchEvent
	for _, day := range []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"} {
		punches = append(punches, punch(day, "10:00"), punch(day, "17:00"))
	}

	result, err := engine.Run(testEmployee(), weekInput(punches))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, result.Records[0].Status)
	assert.Equal(t, attendance.StatusLate, result.Records[1].Status)

	// Third consecutive late day converts and resets the streak.
	wednesday := result.Records[2]
	assert.Equal(t, attendance.StatusAbsent, wednesday.Status)
	assert.Equal(t, attendance.StatusLate, wednesday.OriginalStatus)
	assert.True(t, wednesday.ConvertedFromLate)

	// The day after the reset starts a fresh streak.
	assert.Equal(t, attendance.StatusLate, result.Records[3].Status)
	assert.False(t, result.Records[3].ConvertedFromLate)
}

func TestEngine_LateStreakResetByPresence(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.LateToAbsentDays = 2
	engine := mustEngine(t, cfg)

	result, err := engine.Run(testEmployee(), weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "10:00"), punch("2026-03-02", "17:00"),
		punch("2026-03-03", "09:00"), punch("2026-03-03", "17:00"),
		punch("2026-03-04", "10:00"), punch("2026-03-04", "17:00"),
	}))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, result.Records[0].Status)
	assert.Equal(t, attendance.StatusPresent, result.Records[1].Status)
	assert.Equal(t, attendance.StatusLate, result.Records[2].Status)
	assert.False(t, result.Records[2].ConvertedFromLate)
}

func TestEngine_HolidayWithPunches(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration()) // holiday overtime on

	input := weekInput([]attendance.PunchEvent{
		punch("2026-03-04", "09:00"),
		punch("2026-03-04", "15:00"),
	})
	input.Holidays = map[string]holiday.Holiday{
		"2026-03-04": {Date: at("2026-03-04", "00:00"), Name: "Nyepi"},
	}

	result, err := engine.Run(testEmployee(), input)
	require.NoError(t, err)

	wednesday := result.Records[2]
	assert.Equal(t, attendance.StatusHoliday, wednesday.Status)
	require.NotNil(t, wednesday.HolidayName)
	assert.Equal(t, "Nyepi", *wednesday.HolidayName)
	assert.Equal(t, "5.00", wednesday.WorkingHours.StringFixed(2))
	assert.Equal(t, "5.00", wednesday.OvertimeHours.StringFixed(2))
}

func TestEngine_LeaveDay(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())

	input := weekInput(nil)
	input.LeaveDates = map[string]string{"2026-03-03": "annual"}

	result, err := engine.Run(testEmployee(), input)
	require.NoError(t, err)

	tuesday := result.Records[1]
	assert.Equal(t, attendance.StatusLeave, tuesday.Status)
	assert.Contains(t, tuesday.Reason, "annual")
}

func TestEngine_ConsecutiveAbsenceFlag(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration()) // risk days 5

	result, err := engine.Run(testEmployee(), RunInput{
		StartDate: at("2026-03-02", "00:00"),
		EndDate:   at("2026-03-06", "00:00"), // Monday..Friday, no punches
		Shifts:    testCatalog(),
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 5)

	for _, rec := range result.Records[:4] {
		assert.False(t, rec.TerminationRisk)
	}
	friday := result.Records[4]
	assert.True(t, friday.TerminationRisk)

	require.Len(t, result.Flagged, 1)
	assert.Equal(t, attendance.FlagTerminationRisk, result.Flagged[0].Type)
	assert.Equal(t, 5, result.Flagged[0].Count)
	assert.Equal(t, friday.Date, result.Flagged[0].Date)
}

func TestEngine_ExcessiveEarlyOutFlag(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.MaxEarlyOutEnabled = true
	cfg.MaxEarlyOutThresholdMinutes = 60
	cfg.MaxEarlyOutOccurrences = 2
	engine := mustEngine(t, cfg)

	// Two-day range: the occurrence counter never resets inside a run, so
	// any further day would keep re-flagging once the threshold is crossed.
	result, err := engine.Run(testEmployee(), RunInput{
		StartDate: at("2026-03-02", "00:00"),
		EndDate:   at("2026-03-03", "00:00"),
		Punches: []attendance.PunchEvent{
			punch("2026-03-02", "09:00"), punch("2026-03-02", "15:00"),
			punch("2026-03-03", "09:00"), punch("2026-03-03", "15:00"),
		},
		Shifts: testCatalog(),
	})
	require.NoError(t, err)

	assert.False(t, result.Records[0].ExcessiveEarlyOut)
	assert.True(t, result.Records[1].ExcessiveEarlyOut)

	require.Len(t, result.Flagged, 1)
	assert.Equal(t, attendance.FlagExcessiveEarlyOut, result.Flagged[0].Type)
	assert.Equal(t, 2, result.Flagged[0].Count)
}

func TestEngine_HolidaySandwichCorrection(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.HolidaySandwichAbsence = true
	engine := mustEngine(t, cfg)

	input := weekInput(nil)
	input.Holidays = map[string]holiday.Holiday{
		"2026-03-04": {Date: at("2026-03-04", "00:00"), Name: "Nyepi"},
	}

	result, err := engine.Run(testEmployee(), input)
	require.NoError(t, err)

	wednesday := result.Records[2]
	assert.Equal(t, attendance.StatusAbsent, wednesday.Status)
	assert.Nil(t, wednesday.HolidayName)
	assert.NotEmpty(t, wednesday.Reason)
}

func TestEngine_SandwichTogglesAreIndependent(t *testing.T) {
	t.Parallel()

	t.Run("weekend untouched when only holiday toggle is on", func(t *testing.T) {
		t.Parallel()
		cfg := attendance.DefaultRuleConfiguration()
		cfg.WeekendDays = []int{6} // Sunday only
		cfg.HolidaySandwichAbsence = true
		engine := mustEngine(t, cfg)

		// Saturday and Monday absent around a lone weekend Sunday.
		result, err := engine.Run(testEmployee(), RunInput{
			StartDate: at("2026-03-07", "00:00"),
			EndDate:   at("2026-03-09", "00:00"),
			Shifts:    testCatalog(),
		})
		require.NoError(t, err)

		sunday := result.Records[1]
		assert.Equal(t, attendance.StatusHoliday, sunday.Status)
		assert.True(t, sunday.IsWeekend)
	})

	t.Run("weekend converts when its toggle is on", func(t *testing.T) {
		t.Parallel()
		cfg := attendance.DefaultRuleConfiguration()
		cfg.WeekendDays = []int{6}
		cfg.WeekendSandwichAbsence = true
		engine := mustEngine(t, cfg)

		result, err := engine.Run(testEmployee(), RunInput{
			StartDate: at("2026-03-07", "00:00"),
			EndDate:   at("2026-03-09", "00:00"),
			Shifts:    testCatalog(),
		})
		require.NoError(t, err)

		sunday := result.Records[1]
		assert.Equal(t, attendance.StatusAbsent, sunday.Status)
		assert.False(t, sunday.IsWeekend)
	})
}

func TestEngine_DynamicSourceCounting(t *testing.T) {
	t.Parallel()

	cfg := detectionConfig()
	engine := mustEngine(t, cfg)

	emp := testEmployee()
	emp.DefaultShiftName = nil

	result, err := engine.Run(emp, weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "14:05"), punch("2026-03-02", "22:02"),
	}))
	require.NoError(t, err)

	monday := result.Records[0]
	assert.Equal(t, attendance.SourceDynamic, monday.ShiftSource)
	require.NotNil(t, monday.ShiftName)
	assert.Equal(t, "Evening", *monday.ShiftName)
	assert.Equal(t, 1, result.SourceCounts[attendance.SourceDynamic])
}

func TestEngine_RunIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.LateToAbsentDays = 2
	engine := mustEngine(t, cfg)

	input := weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "10:00"), punch("2026-03-02", "17:00"),
		punch("2026-03-03", "10:00"), punch("2026-03-03", "18:30"),
		punch("2026-03-05", "09:00"),
	})
	input.LeaveDates = map[string]string{"2026-03-06": "sick"}

	first, err := engine.Run(testEmployee(), input)
	require.NoError(t, err)
	second, err := engine.Run(testEmployee(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.SourceCounts, second.SourceCounts)
	assert.Equal(t, first.Flagged, second.Flagged)
}

func TestEngine_NonNegativeQuantities(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, attendance.DefaultRuleConfiguration())

	// Unsorted punches, single punches, and ordinary days mixed together.
	result, err := engine.Run(testEmployee(), weekInput([]attendance.PunchEvent{
		punch("2026-03-02", "17:00"), punch("2026-03-02", "09:00"),
		punch("2026-03-03", "09:00"),
		punch("2026-03-04", "09:00"), punch("2026-03-04", "18:30"),
	}))
	require.NoError(t, err)

	for _, rec := range result.Records {
		assert.False(t, rec.WorkingHours.IsNegative(), "working hours on %s", attendance.DateKey(rec.Date))
		assert.False(t, rec.OvertimeHours.IsNegative(), "overtime on %s", attendance.DateKey(rec.Date))
		assert.GreaterOrEqual(t, rec.LateMinutes, 0)
		assert.GreaterOrEqual(t, rec.EarlyOutMinutes, 0)
		assert.GreaterOrEqual(t, rec.BreakMinutes, 0)
	}
}

func TestGroupPunches(t *testing.T) {
	t.Parallel()

	grouped := groupPunches([]attendance.PunchEvent{
		punch("2026-03-02", "17:00"),
		punch("2026-03-02", "09:00"),
		punch("2026-03-03", "08:45"),
	})

	monday := grouped["2026-03-02"]
	require.NotNil(t, monday.in)
	require.NotNil(t, monday.out)
	assert.True(t, monday.in.Before(*monday.out))

	tuesday := grouped["2026-03-03"]
	require.NotNil(t, tuesday.in)
	assert.Nil(t, tuesday.out)

	_, ok := grouped["2026-03-04"]
	assert.False(t, ok)
}
