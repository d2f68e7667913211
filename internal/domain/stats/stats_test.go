package stats_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/domain/model"
	"github.com/okian/roboscout/internal/domain/stats"
)

func teams(red1, red2, blue1, blue2 int) []model.MatchTeam {
	return []model.MatchTeam{
		{TeamNumber: red1, Alliance: model.Red, Slot: 1},
		{TeamNumber: red2, Alliance: model.Red, Slot: 2},
		{TeamNumber: blue1, Alliance: model.Blue, Slot: 1},
		{TeamNumber: blue2, Alliance: model.Blue, Slot: 2},
	}
}

func TestAggregate(t *testing.T) {
	Convey("Given a season with two events", t, func() {
		first := model.EventData{
			Code:      "A",
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Rankings: []model.RankingRecord{
				{TeamNumber: 1, TeamName: "One", Rank: 2, SortOrder: [4]float64{2, 90, 70, 20}, Wins: 3, Losses: 1},
				{TeamNumber: 2, TeamName: "Two", Rank: 1, SortOrder: [4]float64{3, 60, 50, 10}, Wins: 4},
			},
			Matches: []model.MatchRecord{
				{
					Stage: model.StageQualification,
					Red:   model.AllianceScore{Final: 100, Foul: 5},
					Blue:  model.AllianceScore{Final: 80, Foul: 10},
					Teams: teams(1, 3, 2, 4),
				},
				{
					Stage: model.StageQualification,
					Red:   model.AllianceScore{Final: 60},
					Blue:  model.AllianceScore{Final: 70},
					Teams: teams(2, 5, 1, 6),
				},
				{
					Stage: model.StagePlayoff,
					Red:   model.AllianceScore{Final: 180},
					Blue:  model.AllianceScore{Final: 90},
					Teams: teams(1, 2, 3, 4),
				},
				{
					Stage: model.StagePractice,
					Red:   model.AllianceScore{Final: 500},
					Teams: teams(1, 2, 3, 4),
				},
			},
		}
		second := model.EventData{
			Code:      "B",
			StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Rankings: []model.RankingRecord{
				{TeamNumber: 1, TeamName: "One", Rank: 6, SortOrder: [4]float64{1, 50, 40, 10}, Losses: 4, Ties: 1},
			},
		}

		out := stats.Aggregate(model.NewSeason([]model.EventData{second, first}))

		Convey("Then teams are ordered by average ranking score", func() {
			So(out, ShouldHaveLength, 2)
			So(out[0].TeamNumber, ShouldEqual, 2)
			So(out[1].TeamNumber, ShouldEqual, 1)
		})

		Convey("Then ranking statistics are averaged per event", func() {
			one, ok := stats.Find(out, 1)
			So(ok, ShouldBeTrue)
			So(one.EventsAttended, ShouldEqual, 2)
			So(one.AverageRankingScore, ShouldEqual, 1.5)
			So(one.AverageMatchPoints, ShouldEqual, 70)
			So(one.AverageBasePoints, ShouldEqual, 55)
			So(one.AverageAutoPoints, ShouldEqual, 15)
			So(one.AverageRank, ShouldEqual, 4)
			So(one.BestRank, ShouldEqual, 2)
			So(one.Wins, ShouldEqual, 3)
			So(one.Losses, ShouldEqual, 5)
			So(one.Ties, ShouldEqual, 1)
		})

		Convey("Then net points subtract the opponent's fouls", func() {
			one, _ := stats.Find(out, 1)
			// Event A: (100-10) and (70-0) -> 80; event B has no matches.
			So(one.Events[0].NetPoints, ShouldEqual, 80)
			So(one.Events[1].NetPoints, ShouldEqual, 0)
			So(one.AverageNetPoints, ShouldEqual, 40)
			So(one.OPR, ShouldEqual, one.AverageNetPoints)
		})

		Convey("Then high score includes playoffs and skips practice", func() {
			one, _ := stats.Find(out, 1)
			So(one.HighScore, ShouldEqual, 180)
			So(one.Events[0].HighScore, ShouldEqual, 180)
		})
	})

	Convey("Given an empty season", t, func() {
		So(stats.Aggregate(model.NewSeason(nil)), ShouldBeEmpty)
		_, ok := stats.Find(nil, 1)
		So(ok, ShouldBeFalse)
	})
}

func TestAdvancementTotals(t *testing.T) {
	Convey("Given events publishing advancement data", t, func() {
		first := model.EventData{
			Code:      "A",
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Rankings: []model.RankingRecord{
				{TeamNumber: 1, Rank: 1, SortOrder: [4]float64{2}},
				{TeamNumber: 2, Rank: 2, SortOrder: [4]float64{3}},
			},
			AdvancementPoints: []model.AdvancementRecord{
				{TeamNumber: 1, Points: model.AdvancementPoints{Total: 30, Judging: 10, Playoff: 10, Qualification: 10}},
				{TeamNumber: 2, Points: model.AdvancementPoints{Total: 20, Selection: 20}},
				{TeamNumber: 9, Points: model.AdvancementPoints{Total: 60}},
			},
			AdvancementSlots: []model.AdvancementSlot{
				{TeamNumber: 2, Slot: 1, Declined: true},
				{TeamNumber: 1, Slot: 2},
				{TeamNumber: 9, Slot: 3},
			},
		}
		second := model.EventData{
			Code:      "B",
			StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Rankings: []model.RankingRecord{
				{TeamNumber: 2, Rank: 1, SortOrder: [4]float64{1}},
			},
			AdvancementPoints: []model.AdvancementRecord{
				{TeamNumber: 2, Points: model.AdvancementPoints{Total: 15, Playoff: 15}},
			},
		}

		out := stats.Aggregate(model.NewSeason([]model.EventData{first, second}))

		Convey("Then points are summed over the events a team ranked at", func() {
			two, _ := stats.Find(out, 2)
			So(two.AdvancementPoints, ShouldResemble, model.AdvancementPoints{Total: 35, Playoff: 15, Selection: 20})
			one, _ := stats.Find(out, 1)
			So(one.AdvancementPoints.Total, ShouldEqual, 30)
		})

		Convey("Then teams without a ranking are not credited", func() {
			_, ok := stats.Find(out, 9)
			So(ok, ShouldBeFalse)
		})

		Convey("Then a declined slot does not count as advanced", func() {
			one, _ := stats.Find(out, 1)
			two, _ := stats.Find(out, 2)
			So(one.HasAdvanced, ShouldBeTrue)
			So(two.HasAdvanced, ShouldBeFalse)
			So(stats.Advanced(out), ShouldHaveLength, 1)
			So(stats.Advanced(out)[0].TeamNumber, ShouldEqual, 1)
		})

		Convey("Then teams sort by any advancement component", func() {
			So(stats.Sort(out, stats.SortAdvancement), ShouldBeNil)
			So(out[0].TeamNumber, ShouldEqual, 2)
			So(stats.Sort(out, "Judging"), ShouldBeNil)
			So(out[0].TeamNumber, ShouldEqual, 1)
			So(stats.Sort(out, stats.SortAverageRank), ShouldBeNil)
			So(out[0].TeamNumber, ShouldEqual, 1)
		})

		Convey("Then an unknown sort key is rejected", func() {
			err := stats.Sort(out, "shoe_size")
			So(errors.Is(err, stats.ErrUnknownSortKey), ShouldBeTrue)
		})
	})
}
