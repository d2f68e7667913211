package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/domain/model"
)

func day(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }

func TestSeason(t *testing.T) {
	Convey("Given events out of order", t, func() {
		in := []model.EventData{
			{Code: "C", StartDate: day(20)},
			{Code: "A", StartDate: day(5)},
			{Code: "UNDATED"},
			{Code: "B", StartDate: day(5)},
		}
		s := model.NewSeason(in)

		Convey("Then they are ordered chronologically with stable ties", func() {
			So(s.Codes(), ShouldResemble, []string{"UNDATED", "A", "B", "C"})
			So(s.Len(), ShouldEqual, 4)
		})

		Convey("Then the caller's slice is untouched", func() {
			So(in[0].Code, ShouldEqual, "C")
		})

		Convey("Then events can be looked up by code", func() {
			ev, ok := s.Event("B")
			So(ok, ShouldBeTrue)
			So(ev.StartDate, ShouldEqual, day(5))
			_, ok = s.Event("NOPE")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMatchRecord(t *testing.T) {
	Convey("Given a played match", t, func() {
		m := model.MatchRecord{
			Stage: model.StageQualification,
			Red:   model.AllianceScore{Final: 90, Foul: 5},
			Blue:  model.AllianceScore{Final: 60, Foul: 10},
			Teams: []model.MatchTeam{
				{TeamNumber: 100, Alliance: model.Red},
				{TeamNumber: 200, Alliance: model.Blue},
			},
		}

		Convey("Then each side sees its own and its opponent's line", func() {
			So(m.Score(model.Red).Final, ShouldEqual, 90)
			So(m.Score(model.Blue).Final, ShouldEqual, 60)
			So(m.Opponent(model.Red).Foul, ShouldEqual, 10)
			So(m.Opponent(model.Blue).Foul, ShouldEqual, 5)
		})

		Convey("Then a team's alliance is found", func() {
			a, ok := m.AllianceOf(200)
			So(ok, ShouldBeTrue)
			So(a, ShouldEqual, model.Blue)
			_, ok = m.AllianceOf(300)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestEventData(t *testing.T) {
	Convey("Given an event with mixed stages and awards", t, func() {
		ev := model.EventData{
			Matches: []model.MatchRecord{
				{MatchNumber: 1, Stage: model.StagePractice},
				{MatchNumber: 2, Stage: model.StageQualification},
				{MatchNumber: 3, Stage: model.StagePlayoff},
			},
			Awards: []model.AwardRecord{
				{TeamNumber: 100, Name: "Inspire Award"},
				{TeamNumber: 200, Name: "Think Award"},
				{TeamNumber: 100, Name: "Winning Alliance"},
			},
			Rankings: []model.RankingRecord{{TeamNumber: 100, SortOrder: [4]float64{2.5, 80}}},
		}

		Convey("Then only qualification matches are selected", func() {
			q := ev.QualificationMatches()
			So(q, ShouldHaveLength, 1)
			So(q[0].MatchNumber, ShouldEqual, 2)
		})

		Convey("Then awards are filtered by team", func() {
			So(ev.AwardsFor(100), ShouldHaveLength, 2)
			So(ev.AwardsFor(300), ShouldBeEmpty)
		})

		Convey("Then the ranking score is the first sort order", func() {
			So(ev.Rankings[0].RankingScore(), ShouldEqual, 2.5)
		})
	})
}

func TestAdvancement(t *testing.T) {
	Convey("Given advancement points and slots", t, func() {
		a := model.AdvancementPoints{Total: 10, Judging: 4, Playoff: 3, Selection: 2, Qualification: 1}
		b := model.AdvancementPoints{Total: 5, Qualification: 5}

		Convey("Then points add component-wise", func() {
			So(a.Add(b), ShouldResemble, model.AdvancementPoints{
				Total: 15, Judging: 4, Playoff: 3, Selection: 2, Qualification: 6,
			})
		})

		Convey("Then only accepted slots advance a team", func() {
			ev := model.EventData{AdvancementSlots: []model.AdvancementSlot{
				{TeamNumber: 1, Slot: 1, Declined: true},
				{TeamNumber: 2, Slot: 2},
			}}
			So(ev.Advanced(1), ShouldBeFalse)
			So(ev.Advanced(2), ShouldBeTrue)
			So(ev.Advanced(3), ShouldBeFalse)
		})
	})
}

func TestStability(t *testing.T) {
	Convey("Given consistency figures", t, func() {
		So(model.TeamEvolution{Consistency: 0}.Stability(), ShouldEqual, 100)
		So(model.TeamEvolution{Consistency: 0.25}.Stability(), ShouldEqual, 75)
		So(model.TeamEvolution{Consistency: 1.5}.Stability(), ShouldEqual, 0)
	})
}
