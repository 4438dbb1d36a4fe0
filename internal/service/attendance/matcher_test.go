package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

func testShift(name, start, end string, breakMinutes int) shift.Definition {
	return shift.Definition{
		Name:         name,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
		IsActive:     true,
	}
}

func at(day string, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func detectionConfig() attendance.RuleConfiguration {
	cfg := attendance.DefaultRuleConfiguration()
	cfg.DynamicShiftEnabled = true
	cfg.DynamicShiftToleranceMinutes = 120
	return cfg
}

func TestShiftMatcher_Score(t *testing.T) {
	t.Parallel()

	day := "2026-03-02" // Monday
	morning := testShift("Morning", "09:00", "17:00", 60)

	cfg := detectionConfig()
	matcher := NewShiftMatcher(&cfg)

	tests := []struct {
		name string
		in   time.Time
		out  *time.Time
		want float64
	}{
		{
			name: "exact fit scores full marks",
			in:   at(day, "09:00"),
			out:  timePtr(at(day, "17:00")),
			want: 100,
		},
		{
			name: "score decays one point per minute",
			in:   at(day, "09:10"),
			out:  timePtr(at(day, "17:05")),
			want: 85, // 40 + 45
		},
		{
			name: "in-time outside tolerance earns nothing",
			in:   at(day, "13:30"),
			out:  timePtr(at(day, "17:00")),
			want: 50, // out still matches
		},
		{
			name: "missing out gets partial credit when in scored",
			in:   at(day, "09:00"),
			out:  nil,
			want: 75, // 50 + 25
		},
		{
			name: "missing out with unscored in earns nothing",
			in:   at(day, "14:00"),
			out:  nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := matcher.Score(morning, at(day, "00:00"), tt.in, tt.out)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestShiftMatcher_ScoreOvernightShift(t *testing.T) {
	t.Parallel()

	night := testShift("Night", "22:00", "06:00", 30)
	cfg := detectionConfig()
	matcher := NewShiftMatcher(&cfg)

	date := at("2026-03-02", "00:00")
	in := at("2026-03-02", "22:05")
	out := timePtr(at("2026-03-03", "06:10"))

	got := matcher.Score(night, date, in, out)
	assert.InDelta(t, 85, got, 0.01) // 45 + 40, out anchored past midnight
}

func TestShiftMatcher_SelectBest(t *testing.T) {
	t.Parallel()

	a := testShift("Alpha", "08:00", "16:00", 60)
	b := testShift("Bravo", "09:00", "17:00", 30)

	t.Run("no candidates returns ErrNoMatch", func(t *testing.T) {
		t.Parallel()
		cfg := detectionConfig()
		matcher := NewShiftMatcher(&cfg)
		_, err := matcher.SelectBest(nil)
		assert.ErrorIs(t, err, shift.ErrNoMatch)
	})

	t.Run("single candidate wins outright", func(t *testing.T) {
		t.Parallel()
		cfg := detectionConfig()
		matcher := NewShiftMatcher(&cfg)
		best, err := matcher.SelectBest([]MatchCandidate{{Shift: a, Score: 40}})
		require.NoError(t, err)
		assert.Equal(t, "Alpha", best.Shift.Name)
	})

	t.Run("highest score wins by default", func(t *testing.T) {
		t.Parallel()
		cfg := detectionConfig()
		matcher := NewShiftMatcher(&cfg)
		best, err := matcher.SelectBest([]MatchCandidate{
			{Shift: a, Score: 60},
			{Shift: b, Score: 90},
		})
		require.NoError(t, err)
		assert.Equal(t, "Bravo", best.Shift.Name)
	})

	t.Run("least break priority", func(t *testing.T) {
		t.Parallel()
		cfg := detectionConfig()
		cfg.DynamicShiftPriority = attendance.PriorityLeastBreak
		matcher := NewShiftMatcher(&cfg)
		best, err := matcher.SelectBest([]MatchCandidate{
			{Shift: a, Score: 90},
			{Shift: b, Score: 90},
		})
		require.NoError(t, err)
		assert.Equal(t, "Bravo", best.Shift.Name)
	})

	t.Run("alphabetical priority", func(t *testing.T) {
		t.Parallel()
		cfg := detectionConfig()
		cfg.DynamicShiftPriority = attendance.PriorityAlphabetical
		matcher := NewShiftMatcher(&cfg)
		best, err := matcher.SelectBest([]MatchCandidate{
			{Shift: b, Score: 90},
			{Shift: a, Score: 90},
		})
		require.NoError(t, err)
		assert.Equal(t, "Alpha", best.Shift.Name)
	})

	t.Run("shortest duration priority", func(t *testing.T) {
		t.Parallel()
		short := testShift("Short", "09:00", "13:00", 0)
		cfg := detectionConfig()
		cfg.DynamicShiftPriority = attendance.PriorityShortestDuration
		matcher := NewShiftMatcher(&cfg)
		best, err := matcher.SelectBest([]MatchCandidate{
			{Shift: a, Score: 90},
			{Shift: short, Score: 50},
		})
		require.NoError(t, err)
		assert.Equal(t, "Short", best.Shift.Name)
	})
}
