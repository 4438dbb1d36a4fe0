package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/workclock/attendance-engine-go/internal/domain/attendance"
	"github.com/workclock/attendance-engine-go/internal/domain/shift"
)

// MatchCandidate pairs a shift with its punch-fit score.
type MatchCandidate struct {
	Shift shift.Definition
	Score float64
}

// ShiftMatcher scores shift definitions against actual punch times and
// selects the best fit for dynamic shift detection.
type ShiftMatcher struct {
	cfg *attendance.RuleConfiguration
}

func NewShiftMatcher(cfg *attendance.RuleConfiguration) *ShiftMatcher {
	return &ShiftMatcher{cfg: cfg}
}

// Score rates how well the punches fit the shift anchored on date. The
// in-time earns up to 50 points within tolerance, decaying 1 point per
// minute of distance from the shift start. A present out-time earns up to
// 50 more against the shift end; a missing out-time earns 25 partial
// credit, but only when the in-time already scored.
func (m *ShiftMatcher) Score(def shift.Definition, date time.Time, in time.Time, out *time.Time) float64 {
	tolerance := float64(m.cfg.DynamicShiftToleranceMinutes)

	start := def.StartOn(date)
	end := def.EndOn(date) // overnight shifts normalized onto the next day

	var score float64

	inDiff := math.Abs(in.Sub(start).Minutes())
	if inDiff <= tolerance {
		score += math.Max(0, 50-inDiff)
	}

	if out != nil {
		outDiff := math.Abs(out.Sub(end).Minutes())
		if outDiff <= tolerance {
			score += math.Max(0, 50-outDiff)
		}
	} else if score > 0 {
		score += 25
	}

	return score
}

// ScoreAll evaluates the whole catalog and returns the candidates with a
// positive score.
func (m *ShiftMatcher) ScoreAll(catalog []shift.Definition, date time.Time, in time.Time, out *time.Time) []MatchCandidate {
	var candidates []MatchCandidate
	for _, def := range catalog {
		if s := m.Score(def, date, in, out); s > 0 {
			candidates = append(candidates, MatchCandidate{Shift: def, Score: s})
		}
	}
	return candidates
}

// SelectBest picks the winning candidate. With no positive candidate it
// returns shift.ErrNoMatch; with several, ties break per the configured
// detection priority.
func (m *ShiftMatcher) SelectBest(candidates []MatchCandidate) (MatchCandidate, error) {
	if len(candidates) == 0 {
		return MatchCandidate{}, shift.ErrNoMatch
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	ranked := make([]MatchCandidate, len(candidates))
	copy(ranked, candidates)

	switch m.cfg.DynamicShiftPriority {
	case attendance.PriorityLeastBreak:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Shift.BreakMinutes < ranked[j].Shift.BreakMinutes
		})
	case attendance.PriorityShortestDuration:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Shift.Duration() < ranked[j].Shift.Duration()
		})
	case attendance.PriorityAlphabetical:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Shift.Name < ranked[j].Shift.Name
		})
	default: // highest_score
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
	}

	return ranked[0], nil
}
