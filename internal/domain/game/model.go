package game

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/nfl-projections/internal/domain/team"
)

// Columns of the schedule table and of the context attached to player rows.
const (
	ColGameID      = "game_id"
	ColSeason      = "season"
	ColWeek        = "week"
	ColHomeTeam    = "home_team"
	ColAwayTeam    = "away_team"
	ColTemperature = "temperature"
	ColWindSpeed   = "wind_speed"
	ColRoof        = "roof"

	ColOpponent = "opponent"
	ColIsHome   = "is_home"
	ColIsDome   = "is_dome"
)

const (
	RoofDome     = "dome"
	RoofClosed   = "closed"
	RoofOpen     = "open"
	RoofOutdoors = "outdoors"
)

// Game is one scheduled regular-season game.
type Game struct {
	ID          string
	Season      int
	Week        int
	HomeTeam    string
	AwayTeam    string
	Temperature *float64
	WindSpeed   *float64
	Roof        string
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.Season <= 0 || g.Week <= 0 {
		return fmt.Errorf("game %s: season and week must be greater than zero", g.ID)
	}
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return fmt.Errorf("game %s: home and away teams are required", g.ID)
	}
	if g.HomeTeam == g.AwayTeam {
		return fmt.Errorf("game %s: home and away teams must differ", g.ID)
	}

	return nil
}

// IsDome reports whether a roof value means the game is played indoors.
func IsDome(roof string) bool {
	switch strings.ToLower(strings.TrimSpace(roof)) {
	case RoofDome, RoofClosed:
		return true
	default:
		return false
	}
}

// Normalize maps team codes to current franchises and drops games that fail
// validation. It returns the kept games and the number dropped.
func Normalize(games []Game) ([]Game, int) {
	out := make([]Game, 0, len(games))
	dropped := 0
	for _, g := range games {
		g.HomeTeam, _ = team.Normalize(g.HomeTeam)
		g.AwayTeam, _ = team.Normalize(g.AwayTeam)
		g.Roof = strings.ToLower(strings.TrimSpace(g.Roof))
		if err := g.Validate(); err != nil {
			dropped++
			continue
		}
		out = append(out, g)
	}
	return out, dropped
}
