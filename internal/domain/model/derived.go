package model

import "math"

// EventSummary carries the aggregate statistics of one selected event.
// Averages cover qualification matches only and are per alliance.
type EventSummary struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	TeamCount int             `json:"team_count"`
	AvgScore  float64         `json:"avg_score"`
	AvgAuto   float64         `json:"avg_auto"`
	AvgFoul   float64         `json:"avg_foul"`
	MaxScore  int             `json:"max_score"`
	Strength  float64         `json:"strength"`
	Rankings  []RankingRecord `json:"rankings"`
	Matches   []MatchRecord   `json:"matches"`
}

// Trend classifies the direction of a team's season.
type Trend string

// Trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// EventPerformance is one team's result at one event.
type EventPerformance struct {
	EventCode     string        `json:"event_code"`
	Rank          int           `json:"rank"`
	AvgPoints     float64       `json:"avg_points"`
	AvgAuto       float64       `json:"avg_auto"`
	AvgTeleOp     float64       `json:"avg_teleop"`
	AvgFoul       float64       `json:"avg_foul"`
	MaxPoints     int           `json:"max_points"`
	RankingScore  float64       `json:"ranking_score"`
	MatchesPlayed int           `json:"matches_played"`
	Awards        []AwardRecord `json:"awards"`
}

// TeamEvolution is a team's season folded across the selected events.
type TeamEvolution struct {
	TeamNumber int                `json:"team_number"`
	TeamName   string             `json:"team_name"`
	Events     []EventPerformance `json:"events"`
	// Consistency is the coefficient of variation of per-event average
	// points. Lower is steadier.
	Consistency           float64 `json:"consistency"`
	Trend                 Trend   `json:"trend"`
	PowerScore            float64 `json:"power_score"`
	Advanced              bool    `json:"advanced"`
	ProjectedNationalRank *int    `json:"projected_national_rank,omitempty"`
}

// Stability inverts Consistency into a 0-100 figure.
func (t TeamEvolution) Stability() float64 {
	return math.Max(0, math.Min(100, 100*(1-t.Consistency)))
}

// Reliability grades how much observational data backs a projection.
type Reliability string

// Reliability tiers.
const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

// Breakdown splits projected points by match period.
type Breakdown struct {
	Auto    float64 `json:"auto"`
	Teleop  float64 `json:"teleop"`
	Endgame float64 `json:"endgame"`
}

// TeamProjection is a team's projected contribution to one match.
type TeamProjection struct {
	TeamNumber      int         `json:"team_number"`
	ProjectedPoints int         `json:"projected_points"`
	Breakdown       Breakdown   `json:"breakdown"`
	Confidence      float64     `json:"confidence"`
	Reliability     Reliability `json:"reliability"`
	RedFlags        []string    `json:"red_flags"`
}

// AllianceProjection is one side of a simulated match.
type AllianceProjection struct {
	Score int              `json:"score"`
	Teams []TeamProjection `json:"teams"`
}

// MatchProjection is the verdict for a simulated match.
type MatchProjection struct {
	Red  AllianceProjection `json:"red"`
	Blue AllianceProjection `json:"blue"`
	// RedWinProbability is always inside the configured bounds, never 0 or 1.
	RedWinProbability float64  `json:"red_win_probability"`
	Insights          []string `json:"insights"`
}

// TeamEventStats is one row of TeamStats.Events.
type TeamEventStats struct {
	EventCode    string  `json:"event_code"`
	Rank         int     `json:"rank"`
	RankingScore float64 `json:"ranking_score"`
	MatchPoints  float64 `json:"match_points"`
	NetPoints    float64 `json:"net_points"`
	HighScore    int     `json:"high_score"`
}

// TeamStats aggregates a team's season from ranking and match records.
type TeamStats struct {
	TeamNumber          int               `json:"team_number"`
	TeamName            string            `json:"team_name"`
	EventsAttended      int               `json:"events_attended"`
	AverageRankingScore float64           `json:"average_ranking_score"`
	AverageMatchPoints  float64           `json:"average_match_points"`
	AverageBasePoints   float64           `json:"average_base_points"`
	AverageAutoPoints   float64           `json:"average_auto_points"`
	AverageNetPoints    float64           `json:"average_net_points"`
	OPR                 float64           `json:"opr"`
	HighScore           int               `json:"high_score"`
	Wins                int               `json:"wins"`
	Losses              int               `json:"losses"`
	Ties                int               `json:"ties"`
	BestRank            int               `json:"best_rank"`
	AverageRank         float64           `json:"average_rank"`
	// AdvancementPoints sums the published advancement points over the
	// attended events.
	AdvancementPoints   AdvancementPoints `json:"advancement_points"`
	// HasAdvanced is set by any accepted advancement slot.
	HasAdvanced         bool              `json:"has_advanced"`
	Events              []TeamEventStats  `json:"events"`
}

// TeamRef identifies a team known to the catalog.
type TeamRef struct {
	TeamNumber int    `json:"team_number"`
	TeamName   string `json:"team_name"`
}
