package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// DayMetrics is the preliminary per-day result before the rule engine and
// sequence pass. All quantities are clamped non-negative.
type DayMetrics struct {
	Status          attendance.Status
	WorkingHours    decimal.Decimal
	LateMinutes     int
	EarlyOutMinutes int
	OvertimeHours   decimal.Decimal
	BreakMinutes    int
	Reason          string
}

// MetricsCalculator computes working hours, lateness, early leave and
// overtime for one day from the resolved shift and punch pair.
type MetricsCalculator struct {
	cfg *attendance.RuleConfiguration
}

func NewMetricsCalculator(cfg *attendance.RuleConfiguration) *MetricsCalculator {
	return &MetricsCalculator{cfg: cfg}
}

// Compute expects at least an in-time; days without punches never reach the
// calculator. Out-of-order punches are a business-data anomaly and clamp to
// zero instead of failing.
func (c *MetricsCalculator) Compute(emp employee.Employee, date time.Time, resolved ResolvedShift, in time.Time, out *time.Time) DayMetrics {
	if resolved.Shift == nil {
		return c.computeWithoutShift(in, out)
	}

	def := *resolved.Shift
	shiftStart := def.StartOn(date)
	shiftEnd := def.EndOn(date)

	metrics := DayMetrics{
		Status:        attendance.StatusPresent,
		WorkingHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	// Lateness is measured from the nominal shift start, not from the
	// grace-adjusted threshold: grace only gates the LATE decision.
	grace := c.effectiveGrace(emp, &def)
	if in.After(shiftStart.Add(time.Duration(grace) * time.Minute)) {
		metrics.Status = attendance.StatusLate
		metrics.LateMinutes = wholeMinutes(in.Sub(shiftStart))
	}

	if out == nil {
		// Missing out punch: only lateness can be computed.
		return metrics
	}

	span := out.Sub(in)
	if span < 0 {
		span = 0
		metrics.Reason = "out punch precedes in punch; working hours clamped to zero"
	}

	metrics.BreakMinutes = c.breakMinutes(&def, span)
	metrics.WorkingHours = roundHours(span.Hours() - float64(metrics.BreakMinutes)/60.0)

	earlyThreshold := shiftEnd.Add(-time.Duration(c.cfg.EarlyOutThresholdMinutes) * time.Minute)
	if out.Before(earlyThreshold) {
		metrics.EarlyOutMinutes = wholeMinutes(shiftEnd.Sub(*out))
	}

	metrics.OvertimeHours = c.overtimeHours(emp, shiftEnd, in, *out, metrics.LateMinutes)

	// A positive day that falls under half of the expected hours becomes a
	// half day; the rule engine may still override it further.
	if emp.ExpectedDailyHours > 0 &&
		metrics.WorkingHours.IsPositive() &&
		metrics.WorkingHours.LessThan(decimal.NewFromFloat(emp.ExpectedDailyHours/2)) {
		metrics.Status = attendance.StatusHalfDay
	}

	return metrics
}

// ComputeDayOff handles punches on a holiday or weekend: when the matching
// full-day-overtime flag is on, the whole span minus the flat default break
// counts as working hours and as overtime. The day's status stays HOLIDAY.
func (c *MetricsCalculator) ComputeDayOff(in time.Time, out *time.Time, fullDayOvertime bool) DayMetrics {
	metrics := DayMetrics{
		Status:        attendance.StatusHoliday,
		WorkingHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	if !fullDayOvertime || out == nil {
		return metrics
	}

	span := out.Sub(in)
	if span < 0 {
		span = 0
	}

	metrics.BreakMinutes = c.cfg.DefaultBreakMinutes
	hours := roundHours(span.Hours() - float64(metrics.BreakMinutes)/60.0)
	metrics.WorkingHours = hours
	metrics.OvertimeHours = hours
	return metrics
}

// computeWithoutShift is the minimal fallback when no shift resolved:
// raw span minus the default break, status forced to PRESENT, and no
// lateness or early-out computation is possible.
func (c *MetricsCalculator) computeWithoutShift(in time.Time, out *time.Time) DayMetrics {
	metrics := DayMetrics{
		Status:        attendance.StatusPresent,
		WorkingHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		Reason:        "no shift resolved; raw punch span used",
	}

	if out == nil {
		return metrics
	}

	span := out.Sub(in)
	if span < 0 {
		span = 0
	}

	metrics.BreakMinutes = c.cfg.DefaultBreakMinutes
	metrics.WorkingHours = roundHours(span.Hours() - float64(metrics.BreakMinutes)/60.0)
	return metrics
}

// effectiveGrace resolves the grace period: shift-specific when enabled and
// defined, then the employee override, then the global default.
func (c *MetricsCalculator) effectiveGrace(emp employee.Employee, def *shift.Definition) int {
	if c.cfg.UseShiftGraceTime && def != nil && def.GraceMinutes != nil {
		return *def.GraceMinutes
	}
	if emp.GraceMinutes != nil {
		return *emp.GraceMinutes
	}
	return c.cfg.GraceMinutes
}

// breakMinutes resolves the base break and, under the proportional method,
// scales it by total span banding: half up to 4h, three quarters up to 6h,
// full above.
func (c *MetricsCalculator) breakMinutes(def *shift.Definition, span time.Duration) int {
	base := c.cfg.DefaultBreakMinutes
	if c.cfg.UseShiftBreakTime && def != nil && def.BreakMinutes > 0 {
		base = def.BreakMinutes
	}

	if c.cfg.BreakDeduction != attendance.BreakProportional {
		return base
	}

	hours := span.Hours()
	switch {
	case hours <= 4:
		return base / 2
	case hours <= 6:
		return base * 3 / 4
	default:
		return base
	}
}

func (c *MetricsCalculator) overtimeHours(emp employee.Employee, shiftEnd time.Time, in, out time.Time, lateMinutes int) decimal.Decimal {
	startAfter := c.cfg.OvertimeStartAfterMinutes
	if emp.OvertimeStartAfterMinutes != nil {
		startAfter = *emp.OvertimeStartAfterMinutes
	}

	var overtimeStart time.Time
	switch c.cfg.OvertimeMethod {
	case attendance.OvertimeShiftBased:
		overtimeStart = shiftEnd.Add(time.Duration(startAfter) * time.Minute)
	default: // expected_hours
		expected := time.Duration(emp.ExpectedDailyHours * float64(time.Hour))
		overtimeStart = in.Add(expected).Add(time.Duration(startAfter) * time.Minute)
	}

	if c.cfg.LateAffectsOvertime {
		overtimeStart = overtimeStart.Add(time.Duration(lateMinutes) * time.Minute)
	}

	if !out.After(overtimeStart) {
		return decimal.Zero
	}

	overtimeMinutes := out.Sub(overtimeStart).Minutes() - float64(c.cfg.OvertimeBreakMinutes)
	if overtimeMinutes < float64(c.cfg.MinimumOvertimeMinutes) {
		return decimal.Zero
	}

	return roundHours(overtimeMinutes / 60.0)
}

func roundHours(v float64) decimal.Decimal {
	if v < 0 {
		v = 0
	}
	return decimal.NewFromFloat(v).Round(2)
}

func wholeMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
