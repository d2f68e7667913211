package tuning_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/domain/tuning"
)

func TestValidate(t *testing.T) {
	Convey("Given the default weights", t, func() {
		w := tuning.Default()

		Convey("Then they are valid and versioned", func() {
			So(tuning.Validate(w), ShouldBeNil)
			So(w.Version, ShouldEqual, tuning.Version)
		})

		Convey("Then the projection phase shares add up to one", func() {
			p := w.Projection
			So(p.AutoShare+p.TeleopShare+p.EndgameShare, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("When the version is cleared", func() {
			w.Version = ""
			So(errors.Is(tuning.Validate(w), tuning.ErrInvalidWeights), ShouldBeTrue)
		})

		Convey("When a placement table is short", func() {
			w.Awards.Inspire = []float64{60, 30, 15}
			So(errors.Is(tuning.Validate(w), tuning.ErrInvalidWeights), ShouldBeTrue)
		})

		Convey("When a weight leaves its range", func() {
			w.Strength.ScoreWeight = 1.5
			So(errors.Is(tuning.Validate(w), tuning.ErrInvalidWeights), ShouldBeTrue)
		})

		Convey("When a risk keyword is blank", func() {
			w.Projection.RiskKeywords = []string{"broken", ""}
			So(errors.Is(tuning.Validate(w), tuning.ErrInvalidWeights), ShouldBeTrue)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a coefficient map", t, func() {
		coefficients := map[string]float64{"MXTOQ": 1.05}
		s := tuning.Default().Strength

		Convey("Then known events use their coefficient", func() {
			So(s.Lookup(coefficients, "MXTOQ"), ShouldEqual, 1.05)
		})

		Convey("Then unknown events use the configured neutral", func() {
			s.Neutral = 0.7
			So(s.Lookup(coefficients, "NOPE"), ShouldEqual, 0.7)
		})

		Convey("Then an unset neutral falls back to the package default", func() {
			s.Neutral = 0
			So(s.Lookup(coefficients, "NOPE"), ShouldEqual, tuning.NeutralStrength)
		})
	})
}
