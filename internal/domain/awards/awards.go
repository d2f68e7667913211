// Package awards classifies award names into a closed taxonomy and values
// them for the power score.
package awards

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/roboscout/internal/domain/tuning"
)

// Category is the closed set of award kinds the power score distinguishes.
type Category string

// Categories.
const (
	Unknown  Category = ""
	Inspire  Category = "inspire"
	Winning  Category = "winning_alliance"
	Finalist Category = "finalist_alliance"
	Judged   Category = "judged"
)

// Keyword sets used by Classify. Matching is a case-folded substring test;
// sources that carry a structured award classification should set the
// category themselves and skip this path.
var (
	inspireKeywords  = []string{"inspire"}
	winningKeywords  = []string{"winning", "ganadora"}
	finalistKeywords = []string{"finalist"}
)

// Classify maps a free-text award name to a Category. Empty names are
// Unknown; any other unrecognised name is a Judged award.
func Classify(name string) Category {
	// A Caser keeps state between calls, so each call builds its own.
	folded := cases.Fold().String(strings.TrimSpace(name))
	switch {
	case folded == "":
		return Unknown
	case containsAny(folded, inspireKeywords):
		return Inspire
	case containsAny(folded, winningKeywords):
		return Winning
	case containsAny(folded, finalistKeywords):
		return Finalist
	default:
		return Judged
	}
}

// Value returns the power score credit for an award of category c placed at
// series. Series below 1 counts as first place.
func Value(c Category, series int, table tuning.Awards) float64 {
	if series < 1 {
		series = tuning.DefaultSeries
	}
	switch c {
	case Inspire:
		return byPlacement(table.Inspire, series)
	case Winning:
		return table.Winning
	case Finalist:
		return table.Finalist
	case Judged:
		return byPlacement(table.Placement, series)
	default:
		return 0
	}
}

// byPlacement reads values[series-1], with the last slot covering every
// placement beyond the table.
func byPlacement(values []float64, series int) float64 {
	if len(values) == 0 {
		return 0
	}
	if series > len(values) {
		series = len(values)
	}
	return values[series-1]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
