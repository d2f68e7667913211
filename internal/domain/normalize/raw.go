package normalize

// Raw payload shapes as served by the FTC events API (v2.0). Only the fields
// the analytics read are declared.

// RawEvent is an entry of the season event catalog.
type RawEvent struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	DateStart string `json:"dateStart"`
	DateEnd   string `json:"dateEnd,omitempty"`
}

// RawRanking is an entry of /rankings/{event}.
type RawRanking struct {
	Rank          int     `json:"rank"`
	TeamNumber    int     `json:"teamNumber"`
	TeamName      string  `json:"teamName"`
	SortOrder1    float64 `json:"sortOrder1"`
	SortOrder2    float64 `json:"sortOrder2"`
	SortOrder3    float64 `json:"sortOrder3"`
	SortOrder4    float64 `json:"sortOrder4"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	DQ            int     `json:"dq"`
	MatchesPlayed int     `json:"matchesPlayed"`
}

// RawMatchTeam is one station of a RawMatch.
type RawMatchTeam struct {
	TeamNumber int    `json:"teamNumber"`
	Station    string `json:"station"`
	DQ         bool   `json:"dq"`
	OnField    bool   `json:"onField"`
}

// RawMatch is an entry of /matches/{event}.
type RawMatch struct {
	Description     string         `json:"description"`
	MatchNumber     int            `json:"matchNumber"`
	TournamentLevel string         `json:"tournamentLevel"`
	ScoreRedFinal   int            `json:"scoreRedFinal"`
	ScoreBlueFinal  int            `json:"scoreBlueFinal"`
	ScoreRedAuto    int            `json:"scoreRedAuto"`
	ScoreBlueAuto   int            `json:"scoreBlueAuto"`
	ScoreRedFoul    int            `json:"scoreRedFoul"`
	ScoreBlueFoul   int            `json:"scoreBlueFoul"`
	Teams           []RawMatchTeam `json:"teams"`
}

// RawAward is an entry of /awards/{event}.
type RawAward struct {
	AwardID    int    `json:"awardId"`
	TeamNumber int    `json:"teamNumber"`
	AwardName  string `json:"awardName"`
	Name       string `json:"name,omitempty"`
	Series     int    `json:"series"`
	// Category is an optional structured classification. When empty the
	// award name is classified heuristically.
	Category string `json:"category,omitempty"`
}

// RawAdvancementPoints is one team's line from the advancement points
// report. Points is positional: total, judging, playoff, selection,
// qualification, followed by tie breakers that are not kept.
type RawAdvancementPoints struct {
	Team   int   `json:"team"`
	Points []int `json:"points"`
}

// RawAdvancementSlot is one slot of an event's advancement list.
type RawAdvancementSlot struct {
	Team        int    `json:"team"`
	DisplayTeam string `json:"displayTeam"`
	Slot        int    `json:"slot"`
	Criteria    string `json:"criteria"`
	Declined    bool   `json:"declined"`
	Status      string `json:"status"`
}

// RawAdvancement is the advancement report of one event.
type RawAdvancement struct {
	AdvancesTo  string               `json:"advancesTo"`
	Slots       int                  `json:"slots"`
	Advancement []RawAdvancementSlot `json:"advancement"`
}

// RawEventPayload bundles everything the source returns for one event.
// Advancement data is only published once an event finishes, so both
// advancement fields are optional.
type RawEventPayload struct {
	Event             RawEvent               `json:"event"`
	Rankings          []RawRanking           `json:"rankings"`
	Matches           []RawMatch             `json:"matches"`
	Awards            []RawAward             `json:"awards"`
	AdvancementPoints []RawAdvancementPoints `json:"advancementPoints,omitempty"`
	Advancement       *RawAdvancement        `json:"advancement,omitempty"`
}
