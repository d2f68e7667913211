// Package strength summarizes events and derives a relative strength
// coefficient for each one.
package strength

import (
	"math"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/tuning"
)

// Summarize computes the qualification-stage aggregates of one event.
// Averages are per alliance; an event without qualification matches
// averages to zero.
func Summarize(ev model.EventData) model.EventSummary {
	s := model.EventSummary{
		Code:      ev.Code,
		Name:      ev.Name,
		TeamCount: len(ev.Rankings),
		Rankings:  ev.Rankings,
		Matches:   ev.Matches,
	}

	var total, auto, foul float64
	alliances := 0
	for _, m := range ev.QualificationMatches() {
		for _, a := range []model.AllianceScore{m.Red, m.Blue} {
			total += float64(a.Final)
			auto += float64(a.Auto)
			foul += float64(a.Foul)
			if a.Final > s.MaxScore {
				s.MaxScore = a.Final
			}
		}
		alliances += 2
	}
	if alliances > 0 {
		n := float64(alliances)
		s.AvgScore = total / n
		s.AvgAuto = auto / n
		s.AvgFoul = foul / n
	}
	return s
}

// SummarizeSeason summarizes every event of season in chronological order.
func SummarizeSeason(season model.Season) []model.EventSummary {
	out := make([]model.EventSummary, 0, season.Len())
	for _, ev := range season.Events() {
		out = append(out, Summarize(ev))
	}
	return out
}

// Coefficients maps each event code to its strength. Every aggregate is
// normalized against the largest value in summaries, floored at
// tuning.MaximumFloor.
func Coefficients(summaries []model.EventSummary, w tuning.Strength) map[string]float64 {
	maxTeams, maxScore, maxAuto := tuning.MaximumFloor, tuning.MaximumFloor, tuning.MaximumFloor
	for _, s := range summaries {
		maxTeams = math.Max(maxTeams, float64(s.TeamCount))
		maxScore = math.Max(maxScore, s.AvgScore)
		maxAuto = math.Max(maxAuto, s.AvgAuto)
	}

	out := make(map[string]float64, len(summaries))
	for _, s := range summaries {
		raw := w.TeamCountWeight*float64(s.TeamCount)/maxTeams +
			w.ScoreWeight*s.AvgScore/maxScore +
			w.AutoWeight*s.AvgAuto/maxAuto
		out[s.Code] = w.Floor + clamp01(raw)*w.Span
	}
	return out
}

// Apply attaches coefficients to summaries in place, using the neutral
// strength for codes missing from the map.
func Apply(summaries []model.EventSummary, coefficients map[string]float64, w tuning.Strength) {
	for i := range summaries {
		summaries[i].Strength = w.Lookup(coefficients, summaries[i].Code)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
