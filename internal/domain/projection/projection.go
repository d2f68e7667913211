// Package projection estimates a team's points in a hypothetical match by
// blending its season average with scouted observations.
//
// Estimate is a pure function: identical inputs always produce identical
// projections, so superseded observation snapshots can be recomputed freely.
package projection

import (
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/tuning"
)

// FlagMechanicalRisk is raised when inspection notes mention a failure.
const FlagMechanicalRisk = "mechanical risk detected"

// Estimate projects team points from season stats, observation samples and
// an optional pit inspection. With default tuning, confidence starts at 0.5
// with no samples so a purely official projection reads as medium, and it
// grows per sample up to 1.
func Estimate(
	stats model.TeamStats,
	samples []model.ObservationSample,
	inspection *model.Inspection,
	p tuning.Projection,
	o tuning.Observation,
) model.TeamProjection {
	n := len(samples)
	historical := stats.AverageMatchPoints

	observed := historical
	if n > 0 {
		var sum float64
		for _, s := range samples {
			sum += SampleScore(s, o)
		}
		observed = sum / float64(n)
	}

	weight := p.ObservationShare * SampleConfidence(n, p.FullConfidenceSamples)
	hybrid := historical*(1-weight) + observed*weight

	multiplier := 1.0
	if n > 0 {
		var skill float64
		for _, s := range samples {
			skill += float64(s.DriverSkill)
		}
		multiplier += (skill/float64(n) - p.DriverSkillMidpoint) * p.DriverSkillImpact / 2
	}

	var flags []string
	if inspection != nil && MentionsRisk(inspection.Notes, p.RiskKeywords) {
		flags = append(flags, FlagMechanicalRisk)
		multiplier *= 1 - p.RiskPenalty
	}

	total := math.Max(0, hybrid*multiplier)
	auto := stats.AverageAutoPoints
	if auto <= 0 {
		auto = total * p.AutoShare
	}

	return model.TeamProjection{
		TeamNumber:      stats.TeamNumber,
		ProjectedPoints: int(math.Round(total)),
		Breakdown: model.Breakdown{
			Auto:    auto,
			Teleop:  total * p.TeleopShare,
			Endgame: total * p.EndgameShare,
		},
		Confidence:  math.Min(1, p.BaseConfidence+p.ConfidencePerSample*float64(n)),
		Reliability: Grade(n, p.HighReliabilitySamples),
		RedFlags:    flags,
	}
}

// SampleScore estimates the points a single observation represents.
func SampleScore(s model.ObservationSample, o tuning.Observation) float64 {
	score := float64(s.AutoArtifacts())*o.AutoArtifact +
		float64(s.TeleopArtifacts())*o.TeleopArtifact +
		float64(s.PatternsCompleted)*o.Pattern
	if s.AutoLeave {
		score += o.AutoLeave
	}
	switch s.Parking {
	case model.ParkingPartial:
		score += o.PartialParking
	case model.ParkingFull:
		score += o.FullParking
	}
	if s.DualParking {
		score += o.DualParking
	}
	return score
}

// SampleConfidence scales linearly from 0 with no samples to 1 at full.
func SampleConfidence(n, full int) float64 {
	if full <= 0 {
		return 1
	}
	return math.Min(float64(n)/float64(full), 1)
}

// Grade maps a sample count to a reliability tier.
func Grade(n, high int) model.Reliability {
	switch {
	case n >= high:
		return model.ReliabilityHigh
	case n > 0:
		return model.ReliabilityMedium
	default:
		return model.ReliabilityLow
	}
}

// MentionsRisk reports whether notes contain any keyword, ignoring case.
func MentionsRisk(notes string, keywords []string) bool {
	if strings.TrimSpace(notes) == "" {
		return false
	}
	fold := cases.Fold()
	folded := fold.String(notes)
	for _, k := range keywords {
		if k != "" && strings.Contains(folded, fold.String(k)) {
			return true
		}
	}
	return false
}
