// Package stats aggregates per-team season statistics from ranking and match
// records.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/roboscout/internal/domain/model"
)

type accumulator struct {
	stats   model.TeamStats
	rs      float64
	points  float64
	base    float64
	auto    float64
	net     float64
	rankSum int
}

// Aggregate folds every ranked team across season. The result is sorted by
// average ranking score descending, then team number.
func Aggregate(season model.Season) []model.TeamStats {
	byTeam := make(map[int]*accumulator)
	for _, ev := range season.Events() {
		net, high := matchFigures(ev)
		for _, r := range ev.Rankings {
			acc, ok := byTeam[r.TeamNumber]
			if !ok {
				acc = &accumulator{stats: model.TeamStats{TeamNumber: r.TeamNumber}}
				byTeam[r.TeamNumber] = acc
			}
			acc.add(ev.Code, r, mean(net[r.TeamNumber]), high[r.TeamNumber])
		}
		// Advancement only credits teams ranked at this or an earlier event.
		for _, a := range ev.AdvancementPoints {
			if acc, ok := byTeam[a.TeamNumber]; ok {
				acc.stats.AdvancementPoints = acc.stats.AdvancementPoints.Add(a.Points)
			}
		}
		for _, slot := range ev.AdvancementSlots {
			if acc, ok := byTeam[slot.TeamNumber]; ok && !slot.Declined {
				acc.stats.HasAdvanced = true
			}
		}
	}

	out := make([]model.TeamStats, 0, len(byTeam))
	for _, acc := range byTeam {
		out = append(out, acc.finish())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRankingScore != out[j].AverageRankingScore {
			return out[i].AverageRankingScore > out[j].AverageRankingScore
		}
		return out[i].TeamNumber < out[j].TeamNumber
	})
	return out
}

// Find returns the entry for team.
func Find(all []model.TeamStats, team int) (model.TeamStats, bool) {
	for _, s := range all {
		if s.TeamNumber == team {
			return s, true
		}
	}
	return model.TeamStats{}, false
}

func (a *accumulator) add(code string, r model.RankingRecord, net float64, high int) {
	s := &a.stats
	if r.TeamName != "" {
		s.TeamName = r.TeamName
	}
	s.EventsAttended++
	a.rs += r.SortOrder[model.SortRankingScore]
	a.points += r.SortOrder[model.SortAvgNetPoints]
	a.base += r.SortOrder[model.SortAvgBasePoints]
	a.auto += r.SortOrder[model.SortAvgAutoPoints]
	a.net += net
	a.rankSum += r.Rank
	if high > s.HighScore {
		s.HighScore = high
	}
	s.Wins += r.Wins
	s.Losses += r.Losses
	s.Ties += r.Ties
	if s.BestRank == 0 || (r.Rank > 0 && r.Rank < s.BestRank) {
		s.BestRank = r.Rank
	}
	s.Events = append(s.Events, model.TeamEventStats{
		EventCode:    code,
		Rank:         r.Rank,
		RankingScore: r.SortOrder[model.SortRankingScore],
		MatchPoints:  r.SortOrder[model.SortAvgNetPoints],
		NetPoints:    net,
		HighScore:    high,
	})
}

func (a *accumulator) finish() model.TeamStats {
	s := a.stats
	n := float64(s.EventsAttended)
	if n == 0 {
		return s
	}
	s.AverageRankingScore = a.rs / n
	s.AverageMatchPoints = a.points / n
	s.AverageBasePoints = a.base / n
	s.AverageAutoPoints = a.auto / n
	s.AverageNetPoints = a.net / n
	s.OPR = s.AverageNetPoints
	s.AverageRank = float64(a.rankSum) / n
	return s
}

// matchFigures returns, per team, the net points of each qualification
// match (own final minus the opponent's fouls) and the highest alliance
// final over every non-practice match.
func matchFigures(ev model.EventData) (map[int][]float64, map[int]int) {
	net := make(map[int][]float64)
	high := make(map[int]int)
	for _, m := range ev.Matches {
		if m.Stage == model.StagePractice {
			continue
		}
		for _, t := range m.Teams {
			own := m.Score(t.Alliance)
			if own.Final > high[t.TeamNumber] {
				high[t.TeamNumber] = own.Final
			}
			if m.Stage == model.StageQualification {
				np := own.Final - m.Opponent(t.Alliance).Foul
				net[t.TeamNumber] = append(net[t.TeamNumber], float64(np))
			}
		}
	}
	return net, high
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}
