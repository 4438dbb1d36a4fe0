package attendance

import (
	"fmt"
	"time"
)

// OvertimeMethod selects where the overtime clock starts counting from.
type OvertimeMethod string

const (
	// OvertimeShiftBased starts overtime after the shift end plus the
	// configured offset.
	OvertimeShiftBased OvertimeMethod = "shift_based"
	// OvertimeExpectedHours starts overtime after in-time plus the
	// employee's expected daily hours plus the configured offset.
	OvertimeExpectedHours OvertimeMethod = "expected_hours"
)

// BreakMethod selects how break minutes are deducted from the day span.
type BreakMethod string

const (
	BreakFixed        BreakMethod = "fixed"
	BreakProportional BreakMethod = "proportional"
)

// DetectionPriority breaks ties between dynamically detected shift candidates.
type DetectionPriority string

const (
	PriorityHighestScore     DetectionPriority = "highest_score"
	PriorityLeastBreak       DetectionPriority = "least_break"
	PriorityShortestDuration DetectionPriority = "shortest_duration"
	PriorityAlphabetical     DetectionPriority = "alphabetical"
)

// DetectionFallback is applied when dynamic detection finds no candidate.
type DetectionFallback string

const (
	FallbackEmployeeDefault DetectionFallback = "employee_default"
	FallbackFixedShift      DetectionFallback = "fixed_shift"
	FallbackNone            DetectionFallback = "none"
)

// RuleConfiguration holds every toggle and threshold driving one report run.
// It is constructed once per request, validated up front, and shared
// read-only across concurrent per-employee runs.
type RuleConfiguration struct {
	// Lateness and early leave
	GraceMinutes             int
	UseShiftGraceTime        bool
	EarlyOutThresholdMinutes int

	// Break deduction
	DefaultBreakMinutes int
	UseShiftBreakTime   bool
	BreakDeduction      BreakMethod

	// Overtime
	OvertimeMethod            OvertimeMethod
	OvertimeStartAfterMinutes int
	MinimumOvertimeMinutes    int
	OvertimeBreakMinutes      int
	LateAffectsOvertime       bool
	HolidayFullDayOvertime    bool
	WeekendFullDayOvertime    bool

	// Status override rules (applied in fixed order)
	MinWorkingHoursEnabled    bool
	MinWorkingHoursForPresent float64
	HalfDayEnabled            bool
	HalfDayMinHours           float64
	HalfDayMaxHours           float64
	RequireBothPunches        bool
	MaxWorkingHoursEnabled    bool
	MaxWorkingHoursThreshold  float64

	// Dynamic shift detection
	DynamicShiftEnabled          bool
	DynamicShiftToleranceMinutes int
	DynamicShiftPriority         DetectionPriority
	DynamicShiftFallback         DetectionFallback
	FallbackShiftName            string

	// Cross-day rolling rules. LateToAbsentDays == 0 disables the
	// late-to-absent conversion.
	LateToAbsentDays              int
	ConsecutiveAbsenceFlagEnabled bool
	ConsecutiveAbsenceRiskDays    int
	MaxEarlyOutEnabled            bool
	MaxEarlyOutThresholdMinutes   int
	MaxEarlyOutOccurrences        int

	// Neighbor correction (second pass)
	HolidaySandwichAbsence bool
	WeekendSandwichAbsence bool

	// Weekend day numbers, 0=Monday .. 6=Sunday.
	WeekendDays []int
}

// DefaultRuleConfiguration returns the configuration applied to companies
// that have not customized their attendance policy.
func DefaultRuleConfiguration() RuleConfiguration {
	return RuleConfiguration{
		GraceMinutes:             15,
		UseShiftGraceTime:        true,
		EarlyOutThresholdMinutes: 15,

		DefaultBreakMinutes: 60,
		UseShiftBreakTime:   true,
		BreakDeduction:      BreakFixed,

		OvertimeMethod:            OvertimeShiftBased,
		OvertimeStartAfterMinutes: 30,
		MinimumOvertimeMinutes:    30,
		OvertimeBreakMinutes:      0,
		LateAffectsOvertime:       false,
		HolidayFullDayOvertime:    true,
		WeekendFullDayOvertime:    true,

		MinWorkingHoursEnabled:    false,
		MinWorkingHoursForPresent: 4,
		HalfDayEnabled:            false,
		HalfDayMinHours:           3,
		HalfDayMaxHours:           6,
		RequireBothPunches:        false,
		MaxWorkingHoursEnabled:    true,
		MaxWorkingHoursThreshold:  14,

		DynamicShiftEnabled:          false,
		DynamicShiftToleranceMinutes: 120,
		DynamicShiftPriority:         PriorityHighestScore,
		DynamicShiftFallback:         FallbackEmployeeDefault,

		LateToAbsentDays:              0,
		ConsecutiveAbsenceFlagEnabled: true,
		ConsecutiveAbsenceRiskDays:    5,
		MaxEarlyOutEnabled:            false,
		MaxEarlyOutThresholdMinutes:   60,
		MaxEarlyOutOccurrences:        3,

		HolidaySandwichAbsence: false,
		WeekendSandwichAbsence: false,

		WeekendDays: []int{5, 6}, // Saturday, Sunday
	}
}

// Validate checks every threshold once, before any day is processed. The
// engine assumes a valid configuration and never re-validates per record.
func (c *RuleConfiguration) Validate() error {
	if c.GraceMinutes < 0 {
		return fmt.Errorf("grace_minutes must be >= 0, got %d", c.GraceMinutes)
	}
	if c.EarlyOutThresholdMinutes < 0 {
		return fmt.Errorf("early_out_threshold_minutes must be >= 0, got %d", c.EarlyOutThresholdMinutes)
	}
	if c.DefaultBreakMinutes < 0 {
		return fmt.Errorf("default_break_minutes must be >= 0, got %d", c.DefaultBreakMinutes)
	}
	switch c.BreakDeduction {
	case BreakFixed, BreakProportional:
	default:
		return fmt.Errorf("invalid break_deduction method: %q", c.BreakDeduction)
	}
	switch c.OvertimeMethod {
	case OvertimeShiftBased, OvertimeExpectedHours:
	default:
		return fmt.Errorf("invalid overtime_method: %q", c.OvertimeMethod)
	}
	if c.OvertimeStartAfterMinutes < 0 {
		return fmt.Errorf("overtime_start_after_minutes must be >= 0, got %d", c.OvertimeStartAfterMinutes)
	}
	if c.MinimumOvertimeMinutes < 0 {
		return fmt.Errorf("minimum_overtime_minutes must be >= 0, got %d", c.MinimumOvertimeMinutes)
	}
	if c.OvertimeBreakMinutes < 0 {
		return fmt.Errorf("overtime_break_minutes must be >= 0, got %d", c.OvertimeBreakMinutes)
	}
	if c.MinWorkingHoursEnabled && c.MinWorkingHoursForPresent <= 0 {
		return fmt.Errorf("min_working_hours_for_present must be > 0 when enabled, got %v", c.MinWorkingHoursForPresent)
	}
	if c.HalfDayEnabled {
		if c.HalfDayMinHours < 0 {
			return fmt.Errorf("half_day_min_hours must be >= 0, got %v", c.HalfDayMinHours)
		}
		if c.HalfDayMaxHours <= c.HalfDayMinHours {
			return fmt.Errorf("half_day_max_hours must be > half_day_min_hours (%v <= %v)", c.HalfDayMaxHours, c.HalfDayMinHours)
		}
	}
	if c.MaxWorkingHoursEnabled && c.MaxWorkingHoursThreshold <= 0 {
		return fmt.Errorf("max_working_hours_threshold must be > 0 when enabled, got %v", c.MaxWorkingHoursThreshold)
	}
	if c.DynamicShiftEnabled {
		if c.DynamicShiftToleranceMinutes <= 0 {
			return fmt.Errorf("dynamic_shift_tolerance_minutes must be > 0 when detection is enabled, got %d", c.DynamicShiftToleranceMinutes)
		}
		switch c.DynamicShiftPriority {
		case PriorityHighestScore, PriorityLeastBreak, PriorityShortestDuration, PriorityAlphabetical:
		default:
			return fmt.Errorf("invalid dynamic_shift_priority: %q", c.DynamicShiftPriority)
		}
		switch c.DynamicShiftFallback {
		case FallbackEmployeeDefault, FallbackNone:
		case FallbackFixedShift:
			if c.FallbackShiftName == "" {
				return fmt.Errorf("fallback_shift_name is required when dynamic_shift_fallback is %q", FallbackFixedShift)
			}
		default:
			return fmt.Errorf("invalid dynamic_shift_fallback: %q", c.DynamicShiftFallback)
		}
	}
	if c.LateToAbsentDays < 0 {
		return fmt.Errorf("late_to_absent_days must be >= 0, got %d", c.LateToAbsentDays)
	}
	if c.ConsecutiveAbsenceFlagEnabled && c.ConsecutiveAbsenceRiskDays <= 0 {
		return fmt.Errorf("consecutive_absence_risk_days must be > 0 when enabled, got %d", c.ConsecutiveAbsenceRiskDays)
	}
	if c.MaxEarlyOutEnabled {
		if c.MaxEarlyOutThresholdMinutes <= 0 {
			return fmt.Errorf("max_early_out_threshold_minutes must be > 0 when enabled, got %d", c.MaxEarlyOutThresholdMinutes)
		}
		if c.MaxEarlyOutOccurrences <= 0 {
			return fmt.Errorf("max_early_out_occurrences must be > 0 when enabled, got %d", c.MaxEarlyOutOccurrences)
		}
	}
	for _, d := range c.WeekendDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekend day out of range 0..6: %d", d)
		}
	}
	return nil
}

// IsWeekend reports whether t falls on a configured weekend day.
// Weekend days are numbered 0=Monday .. 6=Sunday.
func (c *RuleConfiguration) IsWeekend(t time.Time) bool {
	n := (int(t.Weekday()) + 6) % 7
	for _, d := range c.WeekendDays {
		if d == n {
			return true
		}
	}
	return false
}
