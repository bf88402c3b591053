package game

import "github.com/riskibarqy/nfl-projections/internal/platform/frame"

func ToTable(games []Game) *frame.Table {
	n := len(games)
	ids := frame.NewColumn(ColGameID, frame.KindString, n)
	seasons := frame.NewColumn(ColSeason, frame.KindInt, n)
	weeks := frame.NewColumn(ColWeek, frame.KindInt, n)
	home := frame.NewColumn(ColHomeTeam, frame.KindString, n)
	away := frame.NewColumn(ColAwayTeam, frame.KindString, n)
	temps := frame.NewColumn(ColTemperature, frame.KindFloat, n)
	winds := frame.NewColumn(ColWindSpeed, frame.KindFloat, n)
	roofs := frame.NewColumn(ColRoof, frame.KindString, n)

	for i, g := range games {
		ids.SetString(i, g.ID)
		seasons.SetInt(i, g.Season)
		weeks.SetInt(i, g.Week)
		home.SetString(i, g.HomeTeam)
		away.SetString(i, g.AwayTeam)
		if g.Temperature != nil {
			temps.SetFloat(i, *g.Temperature)
		}
		if g.WindSpeed != nil {
			winds.SetFloat(i, *g.WindSpeed)
		}
		if g.Roof != "" {
			roofs.SetString(i, g.Roof)
		}
	}

	return frame.MustNew(ids, seasons, weeks, home, away, temps, winds, roofs)
}
