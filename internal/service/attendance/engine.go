package attendance

import (
	"sort"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/holiday"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// RunInput carries the fully materialized inputs for one per-employee run.
// Nothing here is read from storage during processing; the engine performs
// no I/O and never consults the wall clock.
type RunInput struct {
	StartDate time.Time
	EndDate   time.Time

	// Punches may arrive unsorted; the engine orders them ascending.
	Punches []attendance.PunchEvent

	// Holidays, LeaveDates and RosterDays are keyed by date (YYYY-MM-DD).
	Holidays   map[string]holiday.Holiday
	LeaveDates map[string]string

	RosterDays  map[string]shift.RosterDay
	Assignments []shift.RosterAssignment

	// Shifts is the full catalog, used by resolution and dynamic detection.
	Shifts []shift.Definition
}

// RunResult is the complete outcome of one per-employee run.
type RunResult struct {
	Records      []attendance.DailyRecord
	Summary      attendance.Summary
	SourceCounts map[attendance.ShiftSource]int
	Flagged      []attendance.FlaggedRecord
}

// Engine is the per-employee, per-day attendance resolution engine. It is
// constructed once per report request with a validated configuration and
// may be shared read-only across concurrent per-employee runs.
type Engine struct {
	cfg     *attendance.RuleConfiguration
	metrics *MetricsCalculator
	rules   *RuleEngine
}

// NewEngine validates the configuration up front; the per-day pipeline
// assumes it is valid and never re-validates.
func NewEngine(cfg attendance.RuleConfiguration) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     &cfg,
		metrics: NewMetricsCalculator(&cfg),
		rules:   NewRuleEngine(&cfg),
	}, nil
}

// Config exposes the engine's validated configuration.
func (e *Engine) Config() *attendance.RuleConfiguration {
	return e.cfg
}

// Run iterates the date range in order, producing exactly one record per
// calendar date, then applies the neighbor-correction pass and reduces the
// summary. Re-running on identical inputs yields identical output.
func (e *Engine) Run(emp employee.Employee, input RunInput) (*RunResult, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, attendance.ErrInvalidDateRange
	}

	processor := newSequenceProcessor(e, emp, input)
	records, flagged := processor.run()

	correctNeighbors(e.cfg, records)

	return &RunResult{
		Records:      records,
		Summary:      Summarize(records),
		SourceCounts: processor.sourceCounts,
		Flagged:      flagged,
	}, nil
}

// dayPunches is the ordered punch pair for one calendar date: first punch
// is the in-time, last is the out-time, a single punch leaves out absent.
type dayPunches struct {
	in  *time.Time
	out *time.Time
}

// groupPunches buckets punches by the calendar date of their timestamp,
// ordering within each day ascending.
func groupPunches(punches []attendance.PunchEvent) map[string]dayPunches {
	sorted := make([]attendance.PunchEvent, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	byDay := make(map[string][]time.Time)
	for _, p := range sorted {
		key := attendance.DateKey(p.Timestamp)
		byDay[key] = append(byDay[key], p.Timestamp)
	}

	grouped := make(map[string]dayPunches, len(byDay))
	for key, stamps := range byDay {
		dp := dayPunches{in: &stamps[0]}
		if len(stamps) > 1 {
			last := stamps[len(stamps)-1]
			dp.out = &last
		}
		grouped[key] = dp
	}
	return grouped
}
