package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// rollingState is the cross-day state threaded through the forward pass.
// early_out_occurrences never resets within a run.
type rollingState struct {
	lateStreak             int
	consecutiveAbsences    int
	maxConsecutiveAbsences int
	earlyOutOccurrences    int
}

// sequenceProcessor drives one employee's date range in ascending order,
// maintaining the rolling counters between days.
type sequenceProcessor struct {
	engine   *Engine
	emp      employee.Employee
	input    RunInput
	resolver *ShiftResolver

	punches      map[string]dayPunches
	state        rollingState
	sourceCounts map[attendance.ShiftSource]int
	flagged      []attendance.FlaggedRecord
}

func newSequenceProcessor(engine *Engine, emp employee.Employee, input RunInput) *sequenceProcessor {
	return &sequenceProcessor{
		engine:       engine,
		emp:          emp,
		input:        input,
		resolver:     NewShiftResolver(engine.cfg, input.Shifts),
		punches:      groupPunches(input.Punches),
		sourceCounts: make(map[attendance.ShiftSource]int),
	}
}

// run walks every calendar date in [start, end] inclusive and emits exactly
// one record per date. A per-day anomaly degrades that day's record, never
// the whole range.
func (p *sequenceProcessor) run() ([]attendance.DailyRecord, []attendance.FlaggedRecord) {
	var records []attendance.DailyRecord

	for date := p.input.StartDate; !date.After(p.input.EndDate); date = date.AddDate(0, 0, 1) {
		rec := p.processDay(date)
		p.advanceRollingState(&rec)
		records = append(records, rec)
	}

	return records, p.flagged
}

// processDay produces the preliminary record for one date: day-off and
// leave short-circuit the pipeline, worked days run shift resolution,
// metrics and the rule engine.
func (p *sequenceProcessor) processDay(date time.Time) attendance.DailyRecord {
	rec := attendance.DailyRecord{
		EmployeeID:    p.emp.ID,
		CompanyID:     p.emp.CompanyID,
		Date:          date,
		DayOfWeek:     date.Weekday().String(),
		ShiftSource:   attendance.SourceNone,
		WorkingHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	key := attendance.DateKey(date)
	dp := p.punches[key]

	hol, isHoliday := p.input.Holidays[key]
	isWeekend := p.engine.cfg.IsWeekend(date)

	if isHoliday || isWeekend {
		rec.Status = attendance.StatusHoliday
		rec.OriginalStatus = attendance.StatusHoliday
		rec.IsWeekend = isWeekend
		if isHoliday {
			name := hol.Name
			rec.HolidayName = &name
		}
		if dp.in != nil {
			fullDayOvertime := p.engine.cfg.HolidayFullDayOvertime
			if !isHoliday && isWeekend {
				fullDayOvertime = p.engine.cfg.WeekendFullDayOvertime
			}
			metrics := p.engine.metrics.ComputeDayOff(*dp.in, dp.out, fullDayOvertime)
			rec.InTime = dp.in
			rec.OutTime = dp.out
			rec.WorkingHours = metrics.WorkingHours
			rec.OvertimeHours = metrics.OvertimeHours
			rec.BreakMinutes = metrics.BreakMinutes
		}
		return rec
	}

	if leaveType, onLeave := p.input.LeaveDates[key]; onLeave {
		rec.Status = attendance.StatusLeave
		rec.OriginalStatus = attendance.StatusLeave
		rec.Reason = fmt.Sprintf("approved leave: %s", leaveType)
		return rec
	}

	if dp.in == nil {
		rec.Status = attendance.StatusAbsent
		rec.OriginalStatus = attendance.StatusAbsent
		rec.Reason = "no punches recorded"
		return rec
	}

	resolved := p.resolver.Resolve(p.emp, date, p.rosterDayFor(key), p.assignmentFor(date), dp.in, dp.out)
	p.sourceCounts[resolved.Source]++

	metrics := p.engine.metrics.Compute(p.emp, date, resolved, *dp.in, dp.out)

	rec.InTime = dp.in
	rec.OutTime = dp.out
	rec.Status = metrics.Status
	rec.OriginalStatus = metrics.Status
	rec.WorkingHours = metrics.WorkingHours
	rec.LateMinutes = metrics.LateMinutes
	rec.EarlyOutMinutes = metrics.EarlyOutMinutes
	rec.OvertimeHours = metrics.OvertimeHours
	rec.BreakMinutes = metrics.BreakMinutes
	rec.ShiftSource = resolved.Source
	if resolved.Shift != nil {
		name := resolved.Shift.Name
		rec.ShiftName = &name
	}
	rec.Reason = joinReasons(resolved.Reason, metrics.Reason)

	p.engine.rules.Apply(&rec)

	return rec
}

// advanceRollingState applies the cross-day transition rules to the
// finalized day and updates the counters.
func (p *sequenceProcessor) advanceRollingState(rec *attendance.DailyRecord) {
	cfg := p.engine.cfg

	// Late streak counts against the pre-override verdict, so a day the
	// rule engine already converted still contributes to the streak.
	if rec.OriginalStatus == attendance.StatusLate {
		p.state.lateStreak++
		if cfg.LateToAbsentDays > 0 && p.state.lateStreak >= cfg.LateToAbsentDays {
			rec.Status = attendance.StatusAbsent
			rec.ConvertedFromLate = true
			rec.Reason = fmt.Sprintf("late on %d consecutive working days; converted to absence", p.state.lateStreak)
			p.state.lateStreak = 0
		}
	} else if rec.Status != attendance.StatusHoliday && rec.Status != attendance.StatusLeave {
		p.state.lateStreak = 0
	}

	if rec.Status == attendance.StatusAbsent {
		p.state.consecutiveAbsences++
		if p.state.consecutiveAbsences > p.state.maxConsecutiveAbsences {
			p.state.maxConsecutiveAbsences = p.state.consecutiveAbsences
		}
	} else {
		p.state.consecutiveAbsences = 0
	}

	if rec.EarlyOutMinutes > cfg.MaxEarlyOutThresholdMinutes {
		p.state.earlyOutOccurrences++
	}

	if cfg.ConsecutiveAbsenceFlagEnabled && p.state.consecutiveAbsences >= cfg.ConsecutiveAbsenceRiskDays {
		rec.TerminationRisk = true
		rec.FlagReason = fmt.Sprintf("%d consecutive absences reach the termination-risk threshold", p.state.consecutiveAbsences)
		p.flagged = append(p.flagged, attendance.FlaggedRecord{
			Date:  rec.Date,
			Type:  attendance.FlagTerminationRisk,
			Count: p.state.consecutiveAbsences,
		})
	}

	if cfg.MaxEarlyOutEnabled && p.state.earlyOutOccurrences >= cfg.MaxEarlyOutOccurrences {
		rec.ExcessiveEarlyOut = true
		p.flagged = append(p.flagged, attendance.FlaggedRecord{
			Date:  rec.Date,
			Type:  attendance.FlagExcessiveEarlyOut,
			Count: p.state.earlyOutOccurrences,
		})
	}
}

func (p *sequenceProcessor) rosterDayFor(key string) *shift.RosterDay {
	if rd, ok := p.input.RosterDays[key]; ok {
		return &rd
	}
	return nil
}

func (p *sequenceProcessor) assignmentFor(date time.Time) *shift.RosterAssignment {
	for i := range p.input.Assignments {
		if p.input.Assignments[i].Covers(date) {
			return &p.input.Assignments[i]
		}
	}
	return nil
}

// correctNeighbors is the second pass: a holiday (or weekend treated as
// holiday) whose immediate date neighbors are both absent becomes an
// unexcused absence itself, with its holiday markers stripped. True
// holidays and weekends toggle independently.
func correctNeighbors(cfg *attendance.RuleConfiguration, records []attendance.DailyRecord) {
	for i := 1; i < len(records)-1; i++ {
		rec := &records[i]
		if rec.Status != attendance.StatusHoliday {
			continue
		}

		enabled := cfg.HolidaySandwichAbsence
		if rec.HolidayName == nil && rec.IsWeekend {
			enabled = cfg.WeekendSandwichAbsence
		}
		if !enabled {
			continue
		}

		if records[i-1].Status == attendance.StatusAbsent && records[i+1].Status == attendance.StatusAbsent {
			rec.Status = attendance.StatusAbsent
			rec.HolidayName = nil
			rec.IsWeekend = false
			rec.Reason = "holiday between two absences treated as unexcused absence"
		}
	}
}

func joinReasons(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
