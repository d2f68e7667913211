package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/roboscout/internal/domain/model"
)

// Sort keys accepted by Sort. Every key orders highest first except
// average_rank, where lower is better.
const (
	SortRankingScore  = "ranking_score"
	SortMatchPoints   = "match_points"
	SortNetPoints     = "net_points"
	SortHighScore     = "high_score"
	SortWins          = "wins"
	SortAverageRank   = "average_rank"
	SortAdvancement   = "advancement_total"
	SortJudging       = "judging"
	SortPlayoff       = "playoff"
	SortSelection     = "selection"
	SortQualification = "qualification"
)

var sortKeys = map[string]func(model.TeamStats) float64{
	SortRankingScore:  func(s model.TeamStats) float64 { return s.AverageRankingScore },
	SortMatchPoints:   func(s model.TeamStats) float64 { return s.AverageMatchPoints },
	SortNetPoints:     func(s model.TeamStats) float64 { return s.AverageNetPoints },
	SortHighScore:     func(s model.TeamStats) float64 { return float64(s.HighScore) },
	SortWins:          func(s model.TeamStats) float64 { return float64(s.Wins) },
	SortAverageRank:   func(s model.TeamStats) float64 { return -s.AverageRank },
	SortAdvancement:   func(s model.TeamStats) float64 { return float64(s.AdvancementPoints.Total) },
	SortJudging:       func(s model.TeamStats) float64 { return float64(s.AdvancementPoints.Judging) },
	SortPlayoff:       func(s model.TeamStats) float64 { return float64(s.AdvancementPoints.Playoff) },
	SortSelection:     func(s model.TeamStats) float64 { return float64(s.AdvancementPoints.Selection) },
	SortQualification: func(s model.TeamStats) float64 { return float64(s.AdvancementPoints.Qualification) },
}

// Sort orders all in place by key, ties broken by team number. An empty key
// keeps the current order.
func Sort(all []model.TeamStats, key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	value, ok := sortKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := value(all[i]), value(all[j])
		if a != b {
			return a > b
		}
		return all[i].TeamNumber < all[j].TeamNumber
	})
	return nil
}

// Advanced keeps the teams holding an accepted advancement slot.
func Advanced(all []model.TeamStats) []model.TeamStats {
	out := make([]model.TeamStats, 0, len(all))
	for _, s := range all {
		if s.HasAdvanced {
			out = append(out, s)
		}
	}
	return out
}
