// Package evolution folds every team's per-event results across a season
// into trend, consistency and power metrics.
package evolution

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/roboscout/internal/domain/awards"
	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/tuning"
)

// Aggregate builds one TeamEvolution for every team ranked at any event of
// season. Events are folded in season order; the result is sorted by team
// number.
func Aggregate(season model.Season, coefficients map[string]float64, w tuning.Weights) []model.TeamEvolution {
	byTeam := make(map[int]*model.TeamEvolution)
	for _, ev := range season.Events() {
		for _, r := range ev.Rankings {
			t, ok := byTeam[r.TeamNumber]
			if !ok {
				t = &model.TeamEvolution{TeamNumber: r.TeamNumber}
				byTeam[r.TeamNumber] = t
			}
			if r.TeamName != "" {
				t.TeamName = r.TeamName
			}
			t.Events = append(t.Events, Performance(ev, r))
		}
	}

	out := make([]model.TeamEvolution, 0, len(byTeam))
	for _, t := range byTeam {
		finalize(t, coefficients, w)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamNumber < out[j].TeamNumber })
	return out
}

// Performance computes the result of the ranked team r at ev. Averages come
// from the team's qualification matches; without any, the ranking's reported
// averages are used.
func Performance(ev model.EventData, r model.RankingRecord) model.EventPerformance {
	p := model.EventPerformance{
		EventCode:     ev.Code,
		Rank:          r.Rank,
		RankingScore:  r.RankingScore(),
		MatchesPlayed: r.MatchesPlayed,
		Awards:        ev.AwardsFor(r.TeamNumber),
	}

	var total, auto, foul float64
	played := 0
	for _, m := range ev.Matches {
		if m.Stage == model.StagePractice {
			continue
		}
		alliance, ok := m.AllianceOf(r.TeamNumber)
		if !ok {
			continue
		}
		score := m.Score(alliance)
		if score.Final > p.MaxPoints {
			p.MaxPoints = score.Final
		}
		if m.Stage != model.StageQualification {
			continue
		}
		total += float64(score.Final)
		auto += float64(score.Auto)
		foul += float64(score.Foul)
		played++
	}

	if played > 0 {
		n := float64(played)
		p.AvgPoints = total / n
		p.AvgAuto = auto / n
		p.AvgFoul = foul / n
	} else {
		// SortOrder1 holds ranking points, so the ranking's average match
		// points stand in. Teleop is derived from them rather than left at 0.
		p.AvgPoints = r.SortOrder[model.SortAvgNetPoints]
		p.AvgAuto = r.SortOrder[model.SortAvgAutoPoints]
	}
	p.AvgTeleOp = math.Max(0, p.AvgPoints-p.AvgAuto-p.AvgFoul)
	return p
}

// Consistency is the coefficient of variation of points. It is 0 for fewer
// than two values or a non-positive mean.
func Consistency(points []float64) float64 {
	if len(points) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(points, nil)
	if mean <= 0 {
		return 0
	}
	return std / mean
}

// Classify compares the last value of points against the first.
func Classify(points []float64, threshold float64) model.Trend {
	if len(points) < 2 {
		return model.TrendStable
	}
	first, last := points[0], points[len(points)-1]
	switch {
	case last > first*(1+threshold):
		return model.TrendUp
	case last < first*(1-threshold):
		return model.TrendDown
	default:
		return model.TrendStable
	}
}

// AwardPoints sums strength-weighted award values over events, capped at
// w.Evolution.AwardCap.
func AwardPoints(events []model.EventPerformance, coefficients map[string]float64, w tuning.Weights) float64 {
	var sum float64
	for _, e := range events {
		s := w.Strength.Lookup(coefficients, e.EventCode)
		for _, a := range e.Awards {
			if a.Name == "" {
				continue
			}
			sum += awards.Value(a.Category, a.Series, w.Awards) * s
		}
	}
	return math.Min(w.Evolution.AwardCap, sum)
}

// PowerScore blends the best strength-weighted event with award points.
func PowerScore(events []model.EventPerformance, coefficients map[string]float64, w tuning.Weights) float64 {
	var best float64
	for _, e := range events {
		best = math.Max(best, e.AvgPoints*w.Strength.Lookup(coefficients, e.EventCode))
	}
	performance := clamp(best/w.Evolution.PerformanceCeiling*100, 0, 100)
	power := w.Evolution.PerformanceShare*performance +
		w.Evolution.AwardShare*math.Min(100, AwardPoints(events, coefficients, w))
	return clamp(power, 0, 100)
}

func finalize(t *model.TeamEvolution, coefficients map[string]float64, w tuning.Weights) {
	points := make([]float64, len(t.Events))
	for i, e := range t.Events {
		points[i] = e.AvgPoints
	}
	t.Consistency = Consistency(points)
	t.Trend = Classify(points, w.Evolution.TrendThreshold)
	t.PowerScore = PowerScore(t.Events, coefficients, w)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
