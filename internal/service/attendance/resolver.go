package attendance

import (
	"fmt"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/employee"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// ResolvedShift is the outcome of the per-day shift resolution chain.
type ResolvedShift struct {
	Shift  *shift.Definition
	Source attendance.ShiftSource

	// Confidence and Candidates are populated for dynamic detection only:
	// the winning score and the names of every shift that scored positive.
	Confidence float64
	Candidates []string

	Reason string
}

// ShiftResolver determines the applicable shift for an employee on a given
// date. It is state-free per call; the catalog index is built once per run.
type ShiftResolver struct {
	cfg     *attendance.RuleConfiguration
	matcher *ShiftMatcher
	catalog []shift.Definition
	byName  map[string]shift.Definition
}

func NewShiftResolver(cfg *attendance.RuleConfiguration, catalog []shift.Definition) *ShiftResolver {
	byName := make(map[string]shift.Definition, len(catalog))
	for _, def := range catalog {
		byName[def.Name] = def
	}
	return &ShiftResolver{
		cfg:     cfg,
		matcher: NewShiftMatcher(cfg),
		catalog: catalog,
		byName:  byName,
	}
}

// Lookup resolves a shift definition by name.
func (r *ShiftResolver) Lookup(name string) (shift.Definition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Resolve walks the priority chain, first match wins:
// roster day -> roster assignment -> employee default -> dynamic detection
// (with fallback) -> none.
func (r *ShiftResolver) Resolve(
	emp employee.Employee,
	date time.Time,
	rosterDay *shift.RosterDay,
	assignment *shift.RosterAssignment,
	in *time.Time,
	out *time.Time,
) ResolvedShift {
	// 1. Exact-date roster override.
	if rosterDay != nil && rosterDay.ShiftName != nil {
		if def, ok := r.byName[*rosterDay.ShiftName]; ok {
			return ResolvedShift{Shift: &def, Source: attendance.SourceRosterDay}
		}
	}

	// 2. Range assignment covering the date. An assignment without a shift
	// still binds the employee's default shift under the assignment source.
	if assignment != nil {
		if assignment.ShiftName != nil {
			if def, ok := r.byName[*assignment.ShiftName]; ok {
				return ResolvedShift{Shift: &def, Source: attendance.SourceRosterAssignment}
			}
		} else if emp.DefaultShiftName != nil {
			if def, ok := r.byName[*emp.DefaultShiftName]; ok {
				return ResolvedShift{Shift: &def, Source: attendance.SourceRosterAssignment}
			}
		}
	}

	// 3. Employee default shift.
	if emp.DefaultShiftName != nil {
		if def, ok := r.byName[*emp.DefaultShiftName]; ok {
			return ResolvedShift{Shift: &def, Source: attendance.SourceDefault}
		}
	}

	// 4. Dynamic detection from punch times.
	if r.cfg.DynamicShiftEnabled && in != nil {
		if resolved, ok := r.detect(emp, date, *in, out); ok {
			return resolved
		}
	}

	// 5. Terminal no-shift state. Degraded but valid.
	return ResolvedShift{
		Source: attendance.SourceNone,
		Reason: "no roster entry, default shift or dynamic match for this date",
	}
}

func (r *ShiftResolver) detect(emp employee.Employee, date time.Time, in time.Time, out *time.Time) (ResolvedShift, bool) {
	candidates := r.matcher.ScoreAll(r.catalog, date, in, out)

	best, err := r.matcher.SelectBest(candidates)
	if err == nil {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.Shift.Name)
		}
		def := best.Shift
		return ResolvedShift{
			Shift:      &def,
			Source:     attendance.SourceDynamic,
			Confidence: best.Score,
			Candidates: names,
		}, true
	}

	// Detection found nothing: apply the configured fallback. A missing
	// fallback shift degrades to the no-shift state rather than failing.
	switch r.cfg.DynamicShiftFallback {
	case attendance.FallbackEmployeeDefault:
		if emp.DefaultShiftName != nil {
			if def, ok := r.byName[*emp.DefaultShiftName]; ok {
				return ResolvedShift{
					Shift:  &def,
					Source: attendance.SourceFallbackDefault,
					Reason: "dynamic detection found no match; employee default applied",
				}, true
			}
		}
	case attendance.FallbackFixedShift:
		if def, ok := r.byName[r.cfg.FallbackShiftName]; ok {
			return ResolvedShift{
				Shift:  &def,
				Source: attendance.SourceFallbackFixed,
				Reason: fmt.Sprintf("dynamic detection found no match; fixed fallback %q applied", def.Name),
			}, true
		}
	}

	return ResolvedShift{}, false
}
