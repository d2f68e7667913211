// Package report renders a season analysis as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	service "github.com/okian/roboscout/internal/app"
	"github.com/okian/roboscout/internal/domain/model"
)

// Table layout constants.
const (
	minWidth = 0
	tabWidth = 4
	padding  = 2
	padChar  = ' '
)

// Render writes the event strength table followed by the top power
// ranking. top <= 0 prints every team.
func Render(w io.Writer, a service.Analysis, top int) error {
	if err := Events(w, a.Events); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return PowerRanking(w, a.Teams, top)
}

// Events writes one row per event summary.
func Events(w io.Writer, events []model.EventSummary) error {
	tw := tabwriter.NewWriter(w, minWidth, tabWidth, padding, padChar, 0)
	fmt.Fprintln(tw, "EVENT\tNAME\tTEAMS\tAVG SCORE\tAVG AUTO\tMAX\tSTRENGTH")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%d\t%.3f\n",
			e.Code, e.Name, e.TeamCount, e.AvgScore, e.AvgAuto, e.MaxScore, e.Strength)
	}
	return tw.Flush()
}

// PowerRanking writes teams ordered by power score, highest first.
func PowerRanking(w io.Writer, teams []model.TeamEvolution, top int) error {
	ranked := Ranked(teams)
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	tw := tabwriter.NewWriter(w, minWidth, tabWidth, padding, padChar, 0)
	fmt.Fprintln(tw, "#\tTEAM\tNAME\tPOWER\tTREND\tSTABILITY\tEVENTS\tADVANCED")
	for i, t := range ranked {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.1f\t%s\t%.0f\t%d\t%s\n",
			i+1, t.TeamNumber, t.TeamName, t.PowerScore, t.Trend, t.Stability(), len(t.Events), advanced(t))
	}
	return tw.Flush()
}

func advanced(t model.TeamEvolution) string {
	if !t.Advanced {
		return "-"
	}
	if t.ProjectedNationalRank == nil {
		return "yes"
	}
	return "#" + strconv.Itoa(*t.ProjectedNationalRank)
}
