package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
)

// Rule is one independently toggleable business rule applied to a day's
// preliminary verdict. Rules may override the status and record a reason;
// they never recompute working hours.
type Rule interface {
	Name() string
	Enabled(cfg *attendance.RuleConfiguration) bool
	Apply(cfg *attendance.RuleConfiguration, rec *attendance.DailyRecord)
}

// RuleEngine runs the rules sequentially in a fixed order on the same
// record, so a later rule sees the status overrides of an earlier one.
// Days already resolved to HOLIDAY or LEAVE are exempt.
type RuleEngine struct {
	cfg   *attendance.RuleConfiguration
	rules []Rule
}

func NewRuleEngine(cfg *attendance.RuleConfiguration) *RuleEngine {
	return &RuleEngine{
		cfg: cfg,
		rules: []Rule{
			minimumHoursRule{},
			halfDayByHoursRule{},
			bothPunchesRule{},
			maximumHoursRule{},
		},
	}
}

// Apply runs every enabled rule against the record in order.
func (e *RuleEngine) Apply(rec *attendance.DailyRecord) {
	if rec.Status == attendance.StatusHoliday || rec.Status == attendance.StatusLeave {
		return
	}
	for _, rule := range e.rules {
		if rule.Enabled(e.cfg) {
			rule.Apply(e.cfg, rec)
		}
	}
}

// minimumHoursRule converts a PRESENT/LATE day below the minimum working
// hours threshold to ABSENT.
type minimumHoursRule struct{}

func (minimumHoursRule) Name() string { return "minimum_working_hours" }

func (minimumHoursRule) Enabled(cfg *attendance.RuleConfiguration) bool {
	return cfg.MinWorkingHoursEnabled
}

func (minimumHoursRule) Apply(cfg *attendance.RuleConfiguration, rec *attendance.DailyRecord) {
	if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusLate {
		return
	}
	if rec.WorkingHours.LessThan(decimal.NewFromFloat(cfg.MinWorkingHoursForPresent)) {
		rec.Status = attendance.StatusAbsent
		rec.ConvertedFromMinimumHours = true
		rec.Reason = fmt.Sprintf("working hours %s below minimum %v for present",
			rec.WorkingHours.String(), cfg.MinWorkingHoursForPresent)
	}
}

// halfDayByHoursRule converts a PRESENT/LATE day whose working hours fall
// in the configured [min, max) band to HALF_DAY.
type halfDayByHoursRule struct{}

func (halfDayByHoursRule) Name() string { return "half_day_by_hours" }

func (halfDayByHoursRule) Enabled(cfg *attendance.RuleConfiguration) bool {
	return cfg.HalfDayEnabled
}

func (halfDayByHoursRule) Apply(cfg *attendance.RuleConfiguration, rec *attendance.DailyRecord) {
	if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusLate {
		return
	}
	min := decimal.NewFromFloat(cfg.HalfDayMinHours)
	max := decimal.NewFromFloat(cfg.HalfDayMaxHours)
	if rec.WorkingHours.GreaterThanOrEqual(min) && rec.WorkingHours.LessThan(max) {
		rec.Status = attendance.StatusHalfDay
		rec.ConvertedToHalfDay = true
		rec.Reason = fmt.Sprintf("working hours %s within half-day band [%v, %v)",
			rec.WorkingHours.String(), cfg.HalfDayMinHours, cfg.HalfDayMaxHours)
	}
}

// bothPunchesRule converts a PRESENT/LATE day missing either punch to
// ABSENT.
type bothPunchesRule struct{}

func (bothPunchesRule) Name() string { return "both_punches_required" }

func (bothPunchesRule) Enabled(cfg *attendance.RuleConfiguration) bool {
	return cfg.RequireBothPunches
}

func (bothPunchesRule) Apply(cfg *attendance.RuleConfiguration, rec *attendance.DailyRecord) {
	if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusLate {
		return
	}
	if rec.InTime == nil || rec.OutTime == nil {
		rec.Status = attendance.StatusAbsent
		rec.ConvertedFromIncompletePunch = true
		rec.Reason = "in or out punch missing while both are required"
	}
}

// maximumHoursRule flags implausibly long days without changing the status.
// It is a data-quality signal, not a verdict.
type maximumHoursRule struct{}

func (maximumHoursRule) Name() string { return "maximum_working_hours" }

func (maximumHoursRule) Enabled(cfg *attendance.RuleConfiguration) bool {
	return cfg.MaxWorkingHoursEnabled
}

func (maximumHoursRule) Apply(cfg *attendance.RuleConfiguration, rec *attendance.DailyRecord) {
	if rec.WorkingHours.GreaterThan(decimal.NewFromFloat(cfg.MaxWorkingHoursThreshold)) {
		rec.ExcessiveWorkingHours = true
		rec.FlagReason = fmt.Sprintf("working hours %s exceed plausible maximum %v; verify punch data",
			rec.WorkingHours.String(), cfg.MaxWorkingHoursThreshold)
	}
}
