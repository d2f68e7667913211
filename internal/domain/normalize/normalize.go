// Package normalize converts raw per-event source payloads into the domain
// records the analytics consume.
//
// Normalization never fails: unknown stations, missing teams and unparseable
// dates degrade the record instead of rejecting it.
package normalize

import (
	"strings"
	"time"

	"github.com/okian/roboscout/internal/domain/awards"
	"github.com/okian/roboscout/internal/domain/model"
)

// dateLayouts are tried in order when parsing event start dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// namePrefixes are stripped from event names for display.
var namePrefixes = []string{
	"FIRST Tech Challenge ",
	"Torneo Regional ",
	"Torneo ",
	"Regional ",
	"FTC ",
}

// Event converts one event's raw payload.
func Event(raw RawEventPayload) model.EventData {
	code := strings.TrimSpace(raw.Event.Code)
	ev := model.EventData{
		Code:              code,
		Name:              EventName(raw.Event.Name, code),
		StartDate:         ParseDate(raw.Event.DateStart),
		Rankings:          Rankings(raw.Rankings),
		Matches:           Matches(code, raw.Matches),
		Awards:            Awards(raw.Awards),
		AdvancementPoints: AdvancementPoints(raw.AdvancementPoints),
	}
	if raw.Advancement != nil {
		ev.AdvancesTo = strings.TrimSpace(raw.Advancement.AdvancesTo)
		ev.AdvancementSlots = AdvancementSlots(raw.Advancement.Advancement)
	}
	return ev
}

// EventName strips sponsor and tier prefixes, falling back to code.
func EventName(name, code string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return code
	}
	for _, p := range namePrefixes {
		name = strings.Replace(name, p, "", 1)
	}
	if name = strings.TrimSpace(name); name == "" {
		return code
	}
	return name
}

// ParseDate returns the zero time when s matches no known layout.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Rankings converts ranking rows, keeping the first row per team.
func Rankings(raw []RawRanking) []model.RankingRecord {
	out := make([]model.RankingRecord, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for _, r := range raw {
		if r.TeamNumber <= 0 {
			continue
		}
		if _, dup := seen[r.TeamNumber]; dup {
			continue
		}
		seen[r.TeamNumber] = struct{}{}
		out = append(out, model.RankingRecord{
			TeamNumber:    r.TeamNumber,
			TeamName:      strings.TrimSpace(r.TeamName),
			Rank:          r.Rank,
			SortOrder:     [4]float64{r.SortOrder1, r.SortOrder2, r.SortOrder3, r.SortOrder4},
			Wins:          r.Wins,
			Losses:        r.Losses,
			Ties:          r.Ties,
			MatchesPlayed: r.MatchesPlayed,
			DQ:            r.DQ,
		})
	}
	return out
}

// Matches converts match rows for the event identified by code.
func Matches(code string, raw []RawMatch) []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(raw))
	for _, m := range raw {
		out = append(out, model.MatchRecord{
			EventCode:   code,
			MatchNumber: m.MatchNumber,
			Description: m.Description,
			Stage:       ParseStage(m.TournamentLevel),
			Red: model.AllianceScore{
				Final: nonNegative(m.ScoreRedFinal),
				Auto:  nonNegative(m.ScoreRedAuto),
				Foul:  nonNegative(m.ScoreRedFoul),
			},
			Blue: model.AllianceScore{
				Final: nonNegative(m.ScoreBlueFinal),
				Auto:  nonNegative(m.ScoreBlueAuto),
				Foul:  nonNegative(m.ScoreBlueFoul),
			},
			Teams: matchTeams(m.Teams),
		})
	}
	return out
}

// Awards converts award rows. Awards without a team (e.g. volunteer awards)
// are dropped.
func Awards(raw []RawAward) []model.AwardRecord {
	out := make([]model.AwardRecord, 0, len(raw))
	for _, a := range raw {
		if a.TeamNumber <= 0 {
			continue
		}
		name := a.AwardName
		if name == "" {
			name = a.Name
		}
		category := awards.Category(strings.TrimSpace(a.Category))
		if !known(category) {
			category = awards.Classify(name)
		}
		out = append(out, model.AwardRecord{
			TeamNumber: a.TeamNumber,
			Name:       strings.TrimSpace(name),
			Series:     a.Series,
			Category:   category,
		})
	}
	return out
}

// AdvancementPoints converts the positional point lines. Missing positions
// count as zero and negative values are clamped. Later lines for the same
// team replace earlier ones.
func AdvancementPoints(raw []RawAdvancementPoints) []model.AdvancementRecord {
	out := make([]model.AdvancementRecord, 0, len(raw))
	index := make(map[int]int, len(raw))
	for _, line := range raw {
		if line.Team <= 0 {
			continue
		}
		rec := model.AdvancementRecord{
			TeamNumber: line.Team,
			Points: model.AdvancementPoints{
				Total:         pointAt(line.Points, 0),
				Judging:       pointAt(line.Points, 1),
				Playoff:       pointAt(line.Points, 2),
				Selection:     pointAt(line.Points, 3),
				Qualification: pointAt(line.Points, 4),
			},
		}
		if i, dup := index[line.Team]; dup {
			out[i] = rec
			continue
		}
		index[line.Team] = len(out)
		out = append(out, rec)
	}
	return out
}

// AdvancementSlots converts advancement slots, dropping slots without a team.
func AdvancementSlots(raw []RawAdvancementSlot) []model.AdvancementSlot {
	out := make([]model.AdvancementSlot, 0, len(raw))
	for _, s := range raw {
		if s.Team <= 0 {
			continue
		}
		out = append(out, model.AdvancementSlot{
			TeamNumber: s.Team,
			Slot:       s.Slot,
			Criteria:   strings.TrimSpace(s.Criteria),
			Declined:   s.Declined,
			Status:     strings.TrimSpace(s.Status),
		})
	}
	return out
}

func pointAt(points []int, i int) int {
	if i >= len(points) {
		return 0
	}
	return max(0, points[i])
}

// ParseStage maps a tournament level to a Stage. Any elimination round
// counts as playoff.
func ParseStage(level string) model.Stage {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "QUALIFICATION", "QUAL", "QUALS":
		return model.StageQualification
	case "PRACTICE":
		return model.StagePractice
	default:
		return model.StagePlayoff
	}
}

// ParseStation splits a station such as "Red1" into alliance and slot.
func ParseStation(station string) (model.Alliance, int, bool) {
	s := strings.ToLower(strings.TrimSpace(station))
	var alliance model.Alliance
	switch {
	case strings.HasPrefix(s, string(model.Red)):
		alliance = model.Red
	case strings.HasPrefix(s, string(model.Blue)):
		alliance = model.Blue
	default:
		return "", 0, false
	}
	switch strings.TrimPrefix(s, string(alliance)) {
	case "1":
		return alliance, 1, true
	case "2":
		return alliance, 2, true
	default:
		return "", 0, false
	}
}

func matchTeams(raw []RawMatchTeam) []model.MatchTeam {
	out := make([]model.MatchTeam, 0, len(raw))
	type station struct {
		alliance model.Alliance
		slot     int
	}
	taken := make(map[station]struct{}, len(raw))
	for _, t := range raw {
		if t.TeamNumber <= 0 {
			continue
		}
		alliance, slot, ok := ParseStation(t.Station)
		if !ok {
			continue
		}
		key := station{alliance, slot}
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		out = append(out, model.MatchTeam{
			TeamNumber:   t.TeamNumber,
			Alliance:     alliance,
			Slot:         slot,
			Disqualified: t.DQ,
			OnField:      t.OnField,
		})
	}
	return out
}

func known(c awards.Category) bool {
	switch c {
	case awards.Inspire, awards.Winning, awards.Finalist, awards.Judged:
		return true
	}
	return false
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
