package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
)

func workedRecord(status attendance.Status, hours float64) attendance.DailyRecord {
	day := at("2026-03-02", "00:00")
	in := at("2026-03-02", "09:00")
	out := at("2026-03-02", "17:00")
	return attendance.DailyRecord{
		Date:           day,
		Status:         status,
		OriginalStatus: status,
		InTime:         &in,
		OutTime:        &out,
		WorkingHours:   decimal.NewFromFloat(hours),
	}
}

func TestRuleEngine_MinimumHours(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.MinWorkingHoursEnabled = true
	cfg.MinWorkingHoursForPresent = 4
	engine := NewRuleEngine(&cfg)

	rec := workedRecord(attendance.StatusPresent, 2)
	engine.Apply(&rec)

	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.True(t, rec.ConvertedFromMinimumHours)
	assert.NotEmpty(t, rec.Reason)

	ok := workedRecord(attendance.StatusPresent, 7)
	engine.Apply(&ok)
	assert.Equal(t, attendance.StatusPresent, ok.Status)
}

func TestRuleEngine_HalfDayBand(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.HalfDayEnabled = true
	cfg.HalfDayMinHours = 3
	cfg.HalfDayMaxHours = 6
	engine := NewRuleEngine(&cfg)

	tests := []struct {
		name  string
		hours float64
		want  attendance.Status
	}{
		{"below band stays present", 2, attendance.StatusPresent},
		{"lower bound inclusive", 3, attendance.StatusHalfDay},
		{"inside band", 5, attendance.StatusHalfDay},
		{"upper bound exclusive", 6, attendance.StatusPresent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := workedRecord(attendance.StatusPresent, tt.hours)
			engine.Apply(&rec)
			assert.Equal(t, tt.want, rec.Status)
		})
	}
}

func TestRuleEngine_RequireBothPunches(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration()
	cfg.RequireBothPunches = true
	engine := NewRuleEngine(&cfg)

	rec := workedRecord(attendance.StatusLate, 5)
	rec.OutTime = nil
	engine.Apply(&rec)

	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.True(t, rec.ConvertedFromIncompletePunch)
}

func TestRuleEngine_MaximumHoursFlagsOnly(t *testing.T) {
	t.Parallel()

	cfg := attendance.DefaultRuleConfiguration() // max hours 14, enabled
	engine := NewRuleEngine(&cfg)

	rec := workedRecord(attendance.StatusPresent, 16)
	engine.Apply(&rec)

	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.True(t, rec.ExcessiveWorkingHours)
	assert.NotEmpty(t, rec.FlagReason)
}

func TestRuleEngine_OrderAndExemptions(t *testing.T) {
	t.Parallel()

	t.Run("minimum hours wins over half-day band", func(t *testing.T) {
		t.Parallel()
		cfg := attendance.DefaultRuleConfiguration()
		cfg.MinWorkingHoursEnabled = true
		cfg.MinWorkingHoursForPresent = 4
		cfg.HalfDayEnabled = true
		cfg.HalfDayMinHours = 3
		cfg.HalfDayMaxHours = 6
		engine := NewRuleEngine(&cfg)

		// 3.5h is inside the half-day band but below the minimum; the
		// minimum-hours rule runs first and the half-day rule no longer
		// sees a PRESENT day.
		rec := workedRecord(attendance.StatusPresent, 3.5)
		engine.Apply(&rec)

		assert.Equal(t, attendance.StatusAbsent, rec.Status)
		assert.True(t, rec.ConvertedFromMinimumHours)
		assert.False(t, rec.ConvertedToHalfDay)
	})

	t.Run("holiday and leave are exempt", func(t *testing.T) {
		t.Parallel()
		cfg := attendance.DefaultRuleConfiguration()
		cfg.MinWorkingHoursEnabled = true
		cfg.MinWorkingHoursForPresent = 4
		engine := NewRuleEngine(&cfg)

		holiday := workedRecord(attendance.StatusHoliday, 0)
		engine.Apply(&holiday)
		assert.Equal(t, attendance.StatusHoliday, holiday.Status)

		leave := workedRecord(attendance.StatusLeave, 0)
		engine.Apply(&leave)
		assert.Equal(t, attendance.StatusLeave, leave.Status)
	})

	t.Run("disabled rules do not fire", func(t *testing.T) {
		t.Parallel()
		cfg := attendance.DefaultRuleConfiguration()
		cfg.MaxWorkingHoursEnabled = false
		engine := NewRuleEngine(&cfg)

		rec := workedRecord(attendance.StatusPresent, 16)
		engine.Apply(&rec)
		assert.False(t, rec.ExcessiveWorkingHours)
	})
}
