// Package advancement marks teams that reached the championship and ranks
// them against each other.
package advancement

import (
	"sort"

	"github.com/okian/roboscout/internal/domain/model"
)

// Resolve returns a copy of teams where every team in roster is marked
// advanced. Advanced teams receive a 1-based projected rank by power score
// descending, ties broken by team number. Other teams keep a nil rank.
func Resolve(teams []model.TeamEvolution, roster []int) []model.TeamEvolution {
	out := make([]model.TeamEvolution, len(teams))
	copy(out, teams)

	qualified := make(map[int]struct{}, len(roster))
	for _, n := range roster {
		qualified[n] = struct{}{}
	}

	var advanced []int
	for i := range out {
		out[i].Advanced = false
		out[i].ProjectedNationalRank = nil
		if _, ok := qualified[out[i].TeamNumber]; ok {
			out[i].Advanced = true
			advanced = append(advanced, i)
		}
	}

	sort.SliceStable(advanced, func(a, b int) bool {
		ta, tb := out[advanced[a]], out[advanced[b]]
		if ta.PowerScore != tb.PowerScore {
			return ta.PowerScore > tb.PowerScore
		}
		return ta.TeamNumber < tb.TeamNumber
	})
	for pos, i := range advanced {
		rank := pos + 1
		out[i].ProjectedNationalRank = &rank
	}
	return out
}

// Roster lists the teams ranked at ev.
func Roster(ev model.EventData) []int {
	out := make([]int, 0, len(ev.Rankings))
	for _, r := range ev.Rankings {
		out = append(out, r.TeamNumber)
	}
	return out
}
