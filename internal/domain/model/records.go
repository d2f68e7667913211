// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/roboscout/internal/domain/awards"
)

// Stage is the tournament level a match was played at.
type Stage string

// Known stages.
const (
	StageQualification Stage = "qualification"
	StagePlayoff       Stage = "playoff"
	StagePractice      Stage = "practice"
)

// Alliance identifies one side of a match.
type Alliance string

// Alliances.
const (
	Red  Alliance = "red"
	Blue Alliance = "blue"
)

// AllianceScore is one alliance's scoring line for a match.
type AllianceScore struct {
	Final int `json:"final"`
	Auto  int `json:"auto"`
	Foul  int `json:"foul"`
}

// MatchTeam places a team in an alliance slot.
type MatchTeam struct {
	TeamNumber   int      `json:"team_number"`
	Alliance     Alliance `json:"alliance"`
	Slot         int      `json:"slot"`
	Disqualified bool     `json:"disqualified,omitempty"`
	OnField      bool     `json:"on_field"`
}

// MatchRecord is one played match. Teams holds at most two entries per
// alliance; fewer means the source roster was incomplete.
type MatchRecord struct {
	EventCode   string        `json:"event_code"`
	MatchNumber int           `json:"match_number"`
	Description string        `json:"description,omitempty"`
	Stage       Stage         `json:"stage"`
	Red         AllianceScore `json:"red"`
	Blue        AllianceScore `json:"blue"`
	Teams       []MatchTeam   `json:"teams"`
}

// Score returns the scoring line of the given alliance.
func (m MatchRecord) Score(a Alliance) AllianceScore {
	if a == Blue {
		return m.Blue
	}
	return m.Red
}

// Opponent returns the scoring line of the alliance facing a.
func (m MatchRecord) Opponent(a Alliance) AllianceScore {
	if a == Blue {
		return m.Red
	}
	return m.Blue
}

// AllianceOf reports which alliance team played on.
func (m MatchRecord) AllianceOf(team int) (Alliance, bool) {
	for _, t := range m.Teams {
		if t.TeamNumber == team {
			return t.Alliance, true
		}
	}
	return "", false
}

// Sort order positions within RankingRecord.SortOrder.
const (
	SortRankingScore = iota
	SortAvgNetPoints
	SortAvgBasePoints
	SortAvgAutoPoints
)

// RankingRecord is one team's standing at one event.
type RankingRecord struct {
	TeamNumber    int        `json:"team_number"`
	TeamName      string     `json:"team_name"`
	Rank          int        `json:"rank"`
	SortOrder     [4]float64 `json:"sort_order"`
	Wins          int        `json:"wins"`
	Losses        int        `json:"losses"`
	Ties          int        `json:"ties"`
	MatchesPlayed int        `json:"matches_played"`
	DQ            int        `json:"dq"`
}

// RankingScore is the competition's primary sort statistic.
func (r RankingRecord) RankingScore() float64 { return r.SortOrder[SortRankingScore] }

// AwardRecord is one award given to one team at one event.
type AwardRecord struct {
	TeamNumber int             `json:"team_number"`
	Name       string          `json:"name"`
	Series     int             `json:"series"`
	Category   awards.Category `json:"category"`
}

// AdvancementPoints is the advancement point breakdown FTC publishes per
// team and event.
type AdvancementPoints struct {
	Total         int `json:"total"`
	Judging       int `json:"judging"`
	Playoff       int `json:"playoff"`
	Selection     int `json:"selection"`
	Qualification int `json:"qualification"`
}

// Add returns the component-wise sum of p and o.
func (p AdvancementPoints) Add(o AdvancementPoints) AdvancementPoints {
	return AdvancementPoints{
		Total:         p.Total + o.Total,
		Judging:       p.Judging + o.Judging,
		Playoff:       p.Playoff + o.Playoff,
		Selection:     p.Selection + o.Selection,
		Qualification: p.Qualification + o.Qualification,
	}
}

// AdvancementRecord is one team's advancement points at one event.
type AdvancementRecord struct {
	TeamNumber int               `json:"team_number"`
	Points     AdvancementPoints `json:"points"`
}

// AdvancementSlot is one slot of an event's advancement list. A declined
// slot passed to the next team and does not advance its holder.
type AdvancementSlot struct {
	TeamNumber int    `json:"team_number"`
	Slot       int    `json:"slot"`
	Criteria   string `json:"criteria,omitempty"`
	Declined   bool   `json:"declined,omitempty"`
	Status     string `json:"status,omitempty"`
}

// EventData is the normalized input for one event.
type EventData struct {
	Code              string              `json:"code"`
	Name              string              `json:"name"`
	StartDate         time.Time           `json:"start_date"`
	Rankings          []RankingRecord     `json:"rankings"`
	Matches           []MatchRecord       `json:"matches"`
	Awards            []AwardRecord       `json:"awards"`
	AdvancementPoints []AdvancementRecord `json:"advancement_points,omitempty"`
	AdvancesTo        string              `json:"advances_to,omitempty"`
	AdvancementSlots  []AdvancementSlot   `json:"advancement_slots,omitempty"`
}

// QualificationMatches returns the matches played at the qualification stage.
func (e EventData) QualificationMatches() []MatchRecord {
	out := make([]MatchRecord, 0, len(e.Matches))
	for _, m := range e.Matches {
		if m.Stage == StageQualification {
			out = append(out, m)
		}
	}
	return out
}

// AwardsFor returns the awards team received at this event.
func (e EventData) AwardsFor(team int) []AwardRecord {
	var out []AwardRecord
	for _, a := range e.Awards {
		if a.TeamNumber == team {
			out = append(out, a)
		}
	}
	return out
}

// Advanced reports whether team holds an accepted advancement slot.
func (e EventData) Advanced(team int) bool {
	for _, a := range e.AdvancementSlots {
		if a.TeamNumber == team && !a.Declined {
			return true
		}
	}
	return false
}
