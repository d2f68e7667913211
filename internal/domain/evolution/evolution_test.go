package evolution_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/domain/awards"
	"github.com/okian/roboscout/internal/domain/evolution"
	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/tuning"
)

func match(stage model.Stage, red, blue model.AllianceScore, redTeam, blueTeam int) model.MatchRecord {
	return model.MatchRecord{
		Stage: stage,
		Red:   red,
		Blue:  blue,
		Teams: []model.MatchTeam{
			{TeamNumber: redTeam, Alliance: model.Red, Slot: 1},
			{TeamNumber: blueTeam, Alliance: model.Blue, Slot: 1},
		},
	}
}

func season() model.Season {
	early := model.EventData{
		Code:      "A",
		StartDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Rankings: []model.RankingRecord{
			{TeamNumber: 1, TeamName: "One", Rank: 1},
			{TeamNumber: 2, TeamName: "Two", Rank: 2},
		},
		Matches: []model.MatchRecord{
			match(model.StageQualification,
				model.AllianceScore{Final: 100, Auto: 20, Foul: 10},
				model.AllianceScore{Final: 50, Auto: 10},
				1, 2),
			match(model.StagePlayoff,
				model.AllianceScore{Final: 150},
				model.AllianceScore{Final: 40},
				1, 2),
			match(model.StagePractice,
				model.AllianceScore{Final: 400},
				model.AllianceScore{Final: 400},
				1, 2),
		},
		Awards: []model.AwardRecord{
			{TeamNumber: 1, Name: "Inspire Award", Series: 1, Category: awards.Inspire},
		},
	}
	late := model.EventData{
		Code:      "B",
		StartDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Rankings: []model.RankingRecord{
			{TeamNumber: 1, TeamName: "One Renamed", Rank: 1},
		},
		Matches: []model.MatchRecord{
			match(model.StageQualification,
				model.AllianceScore{Final: 120, Auto: 30},
				model.AllianceScore{Final: 60},
				1, 9),
		},
	}
	// Deliberately out of order.
	return model.NewSeason([]model.EventData{late, early})
}

func TestAggregate(t *testing.T) {
	w := tuning.Default()
	coefficients := map[string]float64{"A": 1.0, "B": 1.0}

	Convey("Given a two-event season", t, func() {
		out := evolution.Aggregate(season(), coefficients, w)

		Convey("Then every ranked team gets one entry sorted by number", func() {
			So(out, ShouldHaveLength, 2)
			So(out[0].TeamNumber, ShouldEqual, 1)
			So(out[1].TeamNumber, ShouldEqual, 2)
			So(out[0].TeamName, ShouldEqual, "One Renamed")
		})

		Convey("Then events are folded chronologically", func() {
			one := out[0]
			So(one.Events, ShouldHaveLength, 2)
			So(one.Events[0].EventCode, ShouldEqual, "A")
			So(one.Events[1].EventCode, ShouldEqual, "B")
			So(one.Trend, ShouldEqual, model.TrendUp)
		})

		Convey("Then per-event figures use qualification matches", func() {
			a := out[0].Events[0]
			So(a.AvgPoints, ShouldEqual, 100)
			So(a.AvgAuto, ShouldEqual, 20)
			So(a.AvgFoul, ShouldEqual, 10)
			So(a.AvgTeleOp, ShouldEqual, 70)
			So(a.MaxPoints, ShouldEqual, 150)
			So(a.Awards, ShouldHaveLength, 1)
		})

		Convey("Then consistency is the coefficient of variation", func() {
			So(out[0].Consistency, ShouldAlmostEqual, 10.0/110.0, 1e-9)
			So(out[1].Consistency, ShouldEqual, 0)
		})

		Convey("Then power blends best performance with awards", func() {
			// best 120 -> 60% performance; inspire 60 award points.
			So(out[0].PowerScore, ShouldAlmostEqual, 0.6*60+0.4*60, 1e-9)
			So(out[1].PowerScore, ShouldAlmostEqual, 0.6*25, 1e-9)
		})

		Convey("Then single-event teams are stable", func() {
			So(out[1].Trend, ShouldEqual, model.TrendStable)
		})
	})

	Convey("Given an empty season", t, func() {
		out := evolution.Aggregate(model.NewSeason(nil), nil, w)

		Convey("Then the result is empty", func() {
			So(out, ShouldBeEmpty)
		})
	})
}

func TestPerformanceFallback(t *testing.T) {
	Convey("Given a ranking without qualification matches", t, func() {
		ev := model.EventData{Code: "C"}
		r := model.RankingRecord{TeamNumber: 5, Rank: 3, SortOrder: [4]float64{2, 80, 60, 25}, MatchesPlayed: 6}
		p := evolution.Performance(ev, r)

		Convey("Then the reported averages are used", func() {
			So(p.AvgPoints, ShouldEqual, 80)
			So(p.AvgAuto, ShouldEqual, 25)
			So(p.AvgTeleOp, ShouldEqual, 55)
			So(p.RankingScore, ShouldEqual, 2)
			So(p.MatchesPlayed, ShouldEqual, 6)
		})
	})
}

func TestHelpers(t *testing.T) {
	w := tuning.Default()

	Convey("Given fewer than two events", t, func() {
		So(evolution.Consistency(nil), ShouldEqual, 0)
		So(evolution.Consistency([]float64{42}), ShouldEqual, 0)
	})

	Convey("Given a zero mean", t, func() {
		So(evolution.Consistency([]float64{0, 0, 0}), ShouldEqual, 0)
	})

	Convey("Given trends near the threshold", t, func() {
		So(evolution.Classify([]float64{100, 105}, 0.05), ShouldEqual, model.TrendStable)
		So(evolution.Classify([]float64{100, 106}, 0.05), ShouldEqual, model.TrendUp)
		So(evolution.Classify([]float64{100, 94}, 0.05), ShouldEqual, model.TrendDown)
		So(evolution.Classify([]float64{100, 300, 95}, 0.05), ShouldEqual, model.TrendStable)
	})

	Convey("Given an award-heavy dominant team", t, func() {
		events := []model.EventPerformance{{
			EventCode: "X",
			AvgPoints: 900,
			Awards: []model.AwardRecord{
				{Name: "Inspire Award", Series: 1, Category: awards.Inspire},
				{Name: "Winning Alliance", Series: 1, Category: awards.Winning},
				{Name: "Think Award", Series: 1, Category: awards.Judged},
			},
		}}

		Convey("Then award points and power are capped", func() {
			So(evolution.AwardPoints(events, map[string]float64{"X": 1.1}, w), ShouldEqual, 100)
			So(evolution.PowerScore(events, map[string]float64{"X": 1.1}, w), ShouldAlmostEqual, 100, 1e-9)
		})
	})

	Convey("Given awards at an unknown event", t, func() {
		events := []model.EventPerformance{{
			EventCode: "UNKNOWN",
			Awards: []model.AwardRecord{
				{Name: "Finalist Alliance", Series: 2, Category: awards.Finalist},
				{Name: "", Series: 1, Category: awards.Judged},
			},
		}}

		Convey("Then the neutral strength weights them and empty names score nothing", func() {
			So(evolution.AwardPoints(events, nil, w), ShouldAlmostEqual, 20*tuning.NeutralStrength, 1e-9)
		})
	})
}
