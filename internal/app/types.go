package service

import (
	"fmt"
	"time"

	"github.com/okian/roboscout/internal/domain/model"
)

// EventInfo describes a stored event without its records.
type EventInfo struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	Teams     int       `json:"teams"`
	Matches   int       `json:"matches"`
	Awards    int       `json:"awards"`
}

func describe(ev model.EventData) EventInfo {
	return EventInfo{
		Code:      ev.Code,
		Name:      ev.Name,
		StartDate: ev.StartDate,
		Teams:     len(ev.Rankings),
		Matches:   len(ev.Matches),
		Awards:    len(ev.Awards),
	}
}

// Analysis is the result of a season analysis run.
type Analysis struct {
	TuningVersion string                `json:"tuning_version"`
	Championship  string                `json:"championship,omitempty"`
	Events        []model.EventSummary  `json:"events"`
	Teams         []model.TeamEvolution `json:"teams"`
}

// TeamQuery selects and orders season statistics.
type TeamQuery struct {
	// Query fuzzy-matches team number and name. Matches keep their match
	// order unless SortBy is set.
	Query string
	// Events limits the season to these event codes.
	Events []string
	// AdvancedOnly keeps teams holding an accepted advancement slot.
	AdvancedOnly bool
	// SortBy names a stats sort key such as advancement_total.
	SortBy string
}

// SimulationRequest selects two alliances for a simulated match.
type SimulationRequest struct {
	Red  []int `json:"red"`
	Blue []int `json:"blue"`
	// Events limits which observation samples feed the projections.
	Events []string `json:"events,omitempty"`
	// Adjustments adds manual point corrections per team. Results are
	// clamped at zero.
	Adjustments map[int]int `json:"adjustments,omitempty"`
}

func (r SimulationRequest) validate() error {
	if len(r.Red) != allianceSize || len(r.Blue) != allianceSize {
		return fmt.Errorf("%w: red=%d blue=%d", ErrAllianceSize, len(r.Red), len(r.Blue))
	}
	seen := make(map[int]struct{}, 2*allianceSize)
	for _, n := range append(append([]int{}, r.Red...), r.Blue...) {
		if n <= 0 {
			return fmt.Errorf("%w: invalid team %d", ErrInvalidRequest, n)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateTeam, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
