// Package prediction turns two alliances of team projections into a match
// verdict with a bounded win probability.
package prediction

import (
	"math"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/tuning"
)

// Insight messages.
const (
	InsightRedAuto        = "Critical edge: red alliance dominates the autonomous period."
	InsightBlueAuto       = "Critical edge: blue alliance has the stronger autonomous start."
	InsightHighConfidence = "High-confidence prediction: backed by plenty of scouting data."
	InsightTossUp         = "Toss-up: the match will be decided by penalties or endgame."
)

// Predict projects the match between red and blue. Probability is the red
// alliance's chance of winning.
func Predict(red, blue []model.TeamProjection, w tuning.Prediction) model.MatchProjection {
	out := model.MatchProjection{
		Red:  alliance(red),
		Blue: alliance(blue),
	}

	diff := float64(out.Red.Score - out.Blue.Score)
	avg := float64(out.Red.Score+out.Blue.Score) / 2
	out.RedWinProbability = WinProbability(diff, avg*w.SpreadFraction, w)

	redAuto, blueAuto := autoTotal(red), autoTotal(blue)
	if redAuto > blueAuto*w.AutoEdge {
		out.Insights = append(out.Insights, InsightRedAuto)
	}
	if blueAuto > redAuto*w.AutoEdge {
		out.Insights = append(out.Insights, InsightBlueAuto)
	}
	if allHigh(red) && allHigh(blue) {
		out.Insights = append(out.Insights, InsightHighConfidence)
	}
	if math.Abs(diff) <= avg*w.TossUpFraction {
		out.Insights = append(out.Insights, InsightTossUp)
	}
	return out
}

// WinProbability maps a score differential onto the configured probability
// band. A zero spread leaves only the sign of diff to go on.
func WinProbability(diff, spread float64, w tuning.Prediction) float64 {
	if spread <= 0 {
		switch {
		case diff > 0:
			return w.MaxProbability
		case diff < 0:
			return w.MinProbability
		default:
			return 0.5
		}
	}
	p := 0.5 + diff/(w.SpreadDivisor*spread)
	return math.Max(w.MinProbability, math.Min(w.MaxProbability, p))
}

func alliance(teams []model.TeamProjection) model.AllianceProjection {
	a := model.AllianceProjection{Teams: teams}
	for _, t := range teams {
		a.Score += t.ProjectedPoints
	}
	return a
}

func autoTotal(teams []model.TeamProjection) float64 {
	var sum float64
	for _, t := range teams {
		sum += t.Breakdown.Auto
	}
	return sum
}

func allHigh(teams []model.TeamProjection) bool {
	if len(teams) == 0 {
		return false
	}
	for _, t := range teams {
		if t.Reliability != model.ReliabilityHigh {
			return false
		}
	}
	return true
}
