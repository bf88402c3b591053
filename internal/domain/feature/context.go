package feature

import (
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// JoinReport counts how player rows matched the schedule.
type JoinReport struct {
	Rows          int
	Matched       int
	Unmatched     int
	DuplicateKeys int
}

type teamWeek struct {
	season int
	week   int
	team   string
}

type gameSide struct {
	row    int
	isHome bool
}

// AttachGameContext left-joins each player row to the game its team played
// that week, adding game_id, opponent and is_home. Rows without a game keep
// nulls in those columns. temperature, wind_speed and roof are copied from
// the schedule when it has them, and is_dome is derived from roof.
func AttachGameContext(players, games *frame.Table) (*frame.Table, JoinReport, error) {
	var report JoinReport
	if err := players.Require("player_weeks", playerweek.ColSeason, playerweek.ColWeek, playerweek.ColTeam); err != nil {
		return nil, report, err
	}
	if err := games.Require("games", game.ColSeason, game.ColWeek, game.ColHomeTeam, game.ColAwayTeam, game.ColGameID); err != nil {
		return nil, report, err
	}

	lookup, duplicates := indexGames(games)
	report.DuplicateKeys = duplicates

	season := players.Column(playerweek.ColSeason)
	week := players.Column(playerweek.ColWeek)
	teamCol := players.Column(playerweek.ColTeam)
	home := games.Column(game.ColHomeTeam)
	away := games.Column(game.ColAwayTeam)

	n := players.Len()
	gameRows := make([]int, n)
	opponent := frame.NewColumn(game.ColOpponent, frame.KindString, n)
	isHome := frame.NewColumn(game.ColIsHome, frame.KindBool, n)

	for i := 0; i < n; i++ {
		gameRows[i] = -1
		s, okS := season.IntAt(i)
		w, okW := week.IntAt(i)
		team, okT := teamCol.StringAt(i)
		if !okS || !okW || !okT {
			report.Unmatched++
			continue
		}
		side, ok := lookup[teamWeek{season: s, week: w, team: team}]
		if !ok {
			report.Unmatched++
			continue
		}
		report.Matched++
		gameRows[i] = side.row
		isHome.SetBool(i, side.isHome)
		var opp string
		if side.isHome {
			opp, _ = away.StringAt(side.row)
		} else {
			opp, _ = home.StringAt(side.row)
		}
		opponent.SetString(i, opp)
	}
	report.Rows = n

	added := []*frame.Column{
		games.Column(game.ColGameID).Take(gameRows),
		opponent,
		isHome,
	}
	for _, name := range []string{game.ColTemperature, game.ColWindSpeed, game.ColRoof} {
		if col := games.Column(name); col != nil {
			added = append(added, col.Take(gameRows))
		}
	}
	if roof := games.Column(game.ColRoof); roof != nil {
		added = append(added, domeColumn(roof, gameRows))
	}

	out, err := players.With(added...)
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// indexGames maps both sides of every game to its row. The first game seen
// for a (season, week, team) wins; later ones are counted as duplicates.
func indexGames(games *frame.Table) (map[teamWeek]gameSide, int) {
	season := games.Column(game.ColSeason)
	week := games.Column(game.ColWeek)
	home := games.Column(game.ColHomeTeam)
	away := games.Column(game.ColAwayTeam)

	lookup := make(map[teamWeek]gameSide, games.Len()*2)
	duplicates := 0
	for i := 0; i < games.Len(); i++ {
		s, okS := season.IntAt(i)
		w, okW := week.IntAt(i)
		if !okS || !okW {
			continue
		}
		for _, side := range []struct {
			col    *frame.Column
			isHome bool
		}{{home, true}, {away, false}} {
			team, ok := side.col.StringAt(i)
			if !ok {
				continue
			}
			key := teamWeek{season: s, week: w, team: team}
			if _, exists := lookup[key]; exists {
				duplicates++
				continue
			}
			lookup[key] = gameSide{row: i, isHome: side.isHome}
		}
	}
	return lookup, duplicates
}

func domeColumn(roof *frame.Column, gameRows []int) *frame.Column {
	out := frame.NewColumn(game.ColIsDome, frame.KindBool, len(gameRows))
	for i, row := range gameRows {
		if row < 0 {
			continue
		}
		value, ok := roof.StringAt(row)
		if !ok {
			continue
		}
		out.SetBool(i, game.IsDome(value))
	}
	return out
}
