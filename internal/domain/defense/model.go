package defense

const (
	ColTeam              = "team"
	ColSeason            = "season"
	ColWeek              = "week"
	ColPassYardsAllowed  = "pass_yards_allowed"
	ColRushYardsAllowed  = "rush_yards_allowed"
	ColTotalYardsAllowed = "total_yards_allowed"
	ColTouchdownsAllowed = "touchdowns_allowed"

	ColPassRank     = "opp_pass_yards_allowed_rank"
	ColRushRank     = "opp_rush_yards_allowed_rank"
	ColTotalRank    = "opp_total_yards_allowed_rank"
	ColPassStrength = "opp_pass_defense_strength"
	ColRushStrength = "opp_rush_defense_strength"
)

// WeekStat is the offensive production one defense allowed in one week.
type WeekStat struct {
	Team              string
	Season            int
	Week              int
	PassYardsAllowed  float64
	RushYardsAllowed  float64
	TotalYardsAllowed float64
	TouchdownsAllowed float64
}

// Ranking quotes a defense's season-to-date standing for the week it applies
// to. It is built only from weeks strictly before Week.
type Ranking struct {
	Team         string
	Season       int
	Week         int
	PassRank     int
	RushRank     int
	TotalRank    int
	PassStrength float64
	RushStrength float64
}

// RankingColumns is the column order of a rankings table.
var RankingColumns = []string{
	ColTeam,
	ColSeason,
	ColWeek,
	ColPassRank,
	ColRushRank,
	ColTotalRank,
	ColPassStrength,
	ColRushStrength,
}
