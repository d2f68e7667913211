// Package tuning holds the versioned weighting constants used by every
// scoring, aggregation and projection component.
//
// Conventions:
//   - Components receive the sub-struct they need; none of them read globals.
//   - Default() is the reference "v1" parameter set. Any change to a default
//     must bump Version so stored outputs can be traced back to their weights.
package tuning

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Version identifies the default parameter set.
const Version = "v1"

// NeutralStrength is the strength used for an event missing from the
// coefficient map. It sits in the middle of the [0.6, 1.1] band.
const NeutralStrength = 0.8

// MaximumFloor keeps cross-event maxima away from zero when every event in a
// selection lacks qualification data.
const MaximumFloor = 1.0

// DefaultSeries is applied to awards that carry no placement.
const DefaultSeries = 1

var validate = validator.New()

// Weights is the complete parameter set.
type Weights struct {
	Version     string      `koanf:"version" yaml:"version" json:"version" validate:"required"`
	Strength    Strength    `koanf:"strength" yaml:"strength" json:"strength"`
	Evolution   Evolution   `koanf:"evolution" yaml:"evolution" json:"evolution"`
	Awards      Awards      `koanf:"awards" yaml:"awards" json:"awards"`
	Projection  Projection  `koanf:"projection" yaml:"projection" json:"projection"`
	Observation Observation `koanf:"observation" yaml:"observation" json:"observation"`
	Prediction  Prediction  `koanf:"prediction" yaml:"prediction" json:"prediction"`
}

// Strength weights the event strength model.
type Strength struct {
	TeamCountWeight float64 `koanf:"team_count_weight" yaml:"team_count_weight" json:"team_count_weight" validate:"min=0,max=1"`
	ScoreWeight     float64 `koanf:"score_weight" yaml:"score_weight" json:"score_weight" validate:"min=0,max=1"`
	AutoWeight      float64 `koanf:"auto_weight" yaml:"auto_weight" json:"auto_weight" validate:"min=0,max=1"`
	// Floor and Span map the raw [0,1] strength into [Floor, Floor+Span].
	Floor   float64 `koanf:"floor" yaml:"floor" json:"floor" validate:"gt=0"`
	Span    float64 `koanf:"span" yaml:"span" json:"span" validate:"min=0"`
	Neutral float64 `koanf:"neutral" yaml:"neutral" json:"neutral" validate:"gt=0"`
}

// Evolution weights the team evolution aggregator.
type Evolution struct {
	TrendThreshold     float64 `koanf:"trend_threshold" yaml:"trend_threshold" json:"trend_threshold" validate:"min=0,max=1"`
	PerformanceCeiling float64 `koanf:"performance_ceiling" yaml:"performance_ceiling" json:"performance_ceiling" validate:"gt=0"`
	PerformanceShare   float64 `koanf:"performance_share" yaml:"performance_share" json:"performance_share" validate:"min=0,max=1"`
	AwardShare         float64 `koanf:"award_share" yaml:"award_share" json:"award_share" validate:"min=0,max=1"`
	AwardCap           float64 `koanf:"award_cap" yaml:"award_cap" json:"award_cap" validate:"gt=0"`
}

// Awards is the award value table. Placement-indexed slices hold values for
// series 1, 2, 3 and "other", in that order.
type Awards struct {
	Inspire   []float64 `koanf:"inspire" yaml:"inspire" json:"inspire" validate:"len=4,dive,min=0"`
	Winning   float64   `koanf:"winning" yaml:"winning" json:"winning" validate:"min=0"`
	Finalist  float64   `koanf:"finalist" yaml:"finalist" json:"finalist" validate:"min=0"`
	Placement []float64 `koanf:"placement" yaml:"placement" json:"placement" validate:"len=4,dive,min=0"`
}

// Projection weights the hybrid team projection estimator.
type Projection struct {
	// ObservationShare is the largest fraction of the estimate observational
	// data may hold, reached at FullConfidenceSamples samples.
	ObservationShare       float64  `koanf:"observation_share" yaml:"observation_share" json:"observation_share" validate:"min=0,max=1"`
	FullConfidenceSamples  int      `koanf:"full_confidence_samples" yaml:"full_confidence_samples" json:"full_confidence_samples" validate:"gt=0"`
	DriverSkillImpact      float64  `koanf:"driver_skill_impact" yaml:"driver_skill_impact" json:"driver_skill_impact" validate:"min=0,max=1"`
	DriverSkillMidpoint    float64  `koanf:"driver_skill_midpoint" yaml:"driver_skill_midpoint" json:"driver_skill_midpoint" validate:"gt=0"`
	RiskPenalty            float64  `koanf:"risk_penalty" yaml:"risk_penalty" json:"risk_penalty" validate:"min=0,max=1"`
	RiskKeywords           []string `koanf:"risk_keywords" yaml:"risk_keywords" json:"risk_keywords" validate:"dive,required"`
	BaseConfidence         float64  `koanf:"base_confidence" yaml:"base_confidence" json:"base_confidence" validate:"min=0,max=1"`
	ConfidencePerSample    float64  `koanf:"confidence_per_sample" yaml:"confidence_per_sample" json:"confidence_per_sample" validate:"min=0,max=1"`
	HighReliabilitySamples int      `koanf:"high_reliability_samples" yaml:"high_reliability_samples" json:"high_reliability_samples" validate:"gt=0"`
	AutoShare              float64  `koanf:"auto_share" yaml:"auto_share" json:"auto_share" validate:"min=0,max=1"`
	TeleopShare            float64  `koanf:"teleop_share" yaml:"teleop_share" json:"teleop_share" validate:"min=0,max=1"`
	EndgameShare           float64  `koanf:"endgame_share" yaml:"endgame_share" json:"endgame_share" validate:"min=0,max=1"`
}

// Observation holds the point value of each scouted sub-metric.
type Observation struct {
	AutoLeave      float64 `koanf:"auto_leave" yaml:"auto_leave" json:"auto_leave" validate:"min=0"`
	AutoArtifact   float64 `koanf:"auto_artifact" yaml:"auto_artifact" json:"auto_artifact" validate:"min=0"`
	TeleopArtifact float64 `koanf:"teleop_artifact" yaml:"teleop_artifact" json:"teleop_artifact" validate:"min=0"`
	Pattern        float64 `koanf:"pattern" yaml:"pattern" json:"pattern" validate:"min=0"`
	PartialParking float64 `koanf:"partial_parking" yaml:"partial_parking" json:"partial_parking" validate:"min=0"`
	FullParking    float64 `koanf:"full_parking" yaml:"full_parking" json:"full_parking" validate:"min=0"`
	DualParking    float64 `koanf:"dual_parking" yaml:"dual_parking" json:"dual_parking" validate:"min=0"`
}

// Prediction weights the match predictor.
type Prediction struct {
	// SpreadFraction of the average alliance score counts as a clear lead.
	SpreadFraction float64 `koanf:"spread_fraction" yaml:"spread_fraction" json:"spread_fraction" validate:"gt=0"`
	SpreadDivisor  float64 `koanf:"spread_divisor" yaml:"spread_divisor" json:"spread_divisor" validate:"gt=0"`
	MinProbability float64 `koanf:"min_probability" yaml:"min_probability" json:"min_probability" validate:"min=0,max=0.5"`
	MaxProbability float64 `koanf:"max_probability" yaml:"max_probability" json:"max_probability" validate:"min=0.5,max=1"`
	AutoEdge       float64 `koanf:"auto_edge" yaml:"auto_edge" json:"auto_edge" validate:"gte=1"`
	TossUpFraction float64 `koanf:"toss_up_fraction" yaml:"toss_up_fraction" json:"toss_up_fraction" validate:"min=0,max=1"`
}

// Default returns the v1 parameter set.
func Default() Weights {
	return Weights{
		Version: Version,
		Strength: Strength{
			TeamCountWeight: 0.30,
			ScoreWeight:     0.50,
			AutoWeight:      0.20,
			Floor:           0.6,
			Span:            0.5,
			Neutral:         NeutralStrength,
		},
		Evolution: Evolution{
			TrendThreshold:     0.05,
			PerformanceCeiling: 200,
			PerformanceShare:   0.6,
			AwardShare:         0.4,
			AwardCap:           100,
		},
		Awards: Awards{
			Inspire:   []float64{60, 30, 15, 10},
			Winning:   40,
			Finalist:  20,
			Placement: []float64{12, 6, 3, 2},
		},
		Projection: Projection{
			ObservationShare:       0.4,
			FullConfidenceSamples:  5,
			DriverSkillImpact:      0.15,
			DriverSkillMidpoint:    3,
			RiskPenalty:            0.4,
			RiskKeywords:           []string{"broken", "fallo", "falla", "failure", "roto"},
			BaseConfidence:         0.5,
			ConfidencePerSample:    0.05,
			HighReliabilitySamples: 4,
			AutoShare:              0.25,
			TeleopShare:            0.60,
			EndgameShare:           0.15,
		},
		Observation: Observation{
			AutoLeave:      3,
			AutoArtifact:   3,
			TeleopArtifact: 3,
			Pattern:        2,
			PartialParking: 5,
			FullParking:    10,
			DualParking:    10,
		},
		Prediction: Prediction{
			SpreadFraction: 0.15,
			SpreadDivisor:  4,
			MinProbability: 0.02,
			MaxProbability: 0.98,
			AutoEdge:       1.25,
			TossUpFraction: 0.05,
		},
	}
}

// Validate checks field ranges and the cross-field constraints the struct
// tags cannot express.
func Validate(w Weights) error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeights, err)
	}
	if w.Prediction.MinProbability > w.Prediction.MaxProbability {
		return fmt.Errorf("%w: min_probability exceeds max_probability", ErrInvalidWeights)
	}
	return nil
}

// Lookup returns the strength for code, or s.Neutral when it is unknown.
func (s Strength) Lookup(coefficients map[string]float64, code string) float64 {
	if v, ok := coefficients[code]; ok {
		return v
	}
	if s.Neutral > 0 {
		return s.Neutral
	}
	return NeutralStrength
}
