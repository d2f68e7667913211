package report

import (
	"slices"

	"github.com/okian/roboscout/internal/domain/model"
)

// Ranked returns a copy of teams sorted by power score descending, ties
// broken by team number.
func Ranked(teams []model.TeamEvolution) []model.TeamEvolution {
	out := slices.Clone(teams)
	slices.SortStableFunc(out, func(a, b model.TeamEvolution) int {
		switch {
		case a.PowerScore > b.PowerScore:
			return -1
		case a.PowerScore < b.PowerScore:
			return 1
		default:
			return a.TeamNumber - b.TeamNumber
		}
	})
	return out
}
