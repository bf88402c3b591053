package defense

import (
	"sort"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

var aggregateInputColumns = []string{
	game.ColOpponent,
	playerweek.ColSeason,
	playerweek.ColWeek,
	playerweek.StatPassingYards,
	playerweek.StatRushingYards,
	playerweek.StatReceivingYards,
	playerweek.StatPassingTDs,
	playerweek.StatRushingTDs,
	playerweek.StatReceivingTDs,
}

// AggregateWeekStats sums what each defense allowed per (opponent, season,
// week). Null stats count as zero. Rows without an opponent have no defense
// to attribute to and are skipped.
func AggregateWeekStats(t *frame.Table) ([]WeekStat, error) {
	if err := t.Require("player_weeks", aggregateInputColumns...); err != nil {
		return nil, err
	}

	opponent := t.Column(game.ColOpponent)
	season := t.Column(playerweek.ColSeason)
	week := t.Column(playerweek.ColWeek)
	passYds := t.Column(playerweek.StatPassingYards)
	rushYds := t.Column(playerweek.StatRushingYards)
	recYds := t.Column(playerweek.StatReceivingYards)
	passTD := t.Column(playerweek.StatPassingTDs)
	rushTD := t.Column(playerweek.StatRushingTDs)
	recTD := t.Column(playerweek.StatReceivingTDs)

	index := make(map[statKey]int)
	var out []WeekStat
	for i := 0; i < t.Len(); i++ {
		team, ok := opponent.StringAt(i)
		if !ok || team == "" {
			continue
		}
		s, okS := season.IntAt(i)
		w, okW := week.IntAt(i)
		if !okS || !okW {
			continue
		}

		key := statKey{team: team, season: s, week: w}
		pos, exists := index[key]
		if !exists {
			pos = len(out)
			index[key] = pos
			out = append(out, WeekStat{Team: team, Season: s, Week: w})
		}

		pass := valueOrZero(passYds, i)
		rush := valueOrZero(rushYds, i)
		rec := valueOrZero(recYds, i)
		out[pos].PassYardsAllowed += pass
		out[pos].RushYardsAllowed += rush
		out[pos].TotalYardsAllowed += pass + rush + rec
		out[pos].TouchdownsAllowed += valueOrZero(passTD, i) + valueOrZero(rushTD, i) + valueOrZero(recTD, i)
	}

	sortWeekStats(out)
	return out, nil
}

// ComputeWeekStats is AggregateWeekStats returning a table.
func ComputeWeekStats(t *frame.Table) (*frame.Table, error) {
	stats, err := AggregateWeekStats(t)
	if err != nil {
		return nil, err
	}
	return WeekStatsTable(stats), nil
}

func WeekStatsTable(stats []WeekStat) *frame.Table {
	n := len(stats)
	teams := frame.NewColumn(ColTeam, frame.KindString, n)
	seasons := frame.NewColumn(ColSeason, frame.KindInt, n)
	weeks := frame.NewColumn(ColWeek, frame.KindInt, n)
	pass := frame.NewColumn(ColPassYardsAllowed, frame.KindFloat, n)
	rush := frame.NewColumn(ColRushYardsAllowed, frame.KindFloat, n)
	total := frame.NewColumn(ColTotalYardsAllowed, frame.KindFloat, n)
	tds := frame.NewColumn(ColTouchdownsAllowed, frame.KindFloat, n)
	for i, s := range stats {
		teams.SetString(i, s.Team)
		seasons.SetInt(i, s.Season)
		weeks.SetInt(i, s.Week)
		pass.SetFloat(i, s.PassYardsAllowed)
		rush.SetFloat(i, s.RushYardsAllowed)
		total.SetFloat(i, s.TotalYardsAllowed)
		tds.SetFloat(i, s.TouchdownsAllowed)
	}
	return frame.MustNew(teams, seasons, weeks, pass, rush, total, tds)
}

// WeekStatsFromTable reads a table shaped like WeekStatsTable's output.
// touchdowns_allowed is optional.
func WeekStatsFromTable(t *frame.Table) ([]WeekStat, error) {
	if err := t.Require("defensive_week_stats", ColTeam, ColSeason, ColWeek, ColPassYardsAllowed, ColRushYardsAllowed, ColTotalYardsAllowed); err != nil {
		return nil, err
	}

	teams := t.Column(ColTeam)
	seasons := t.Column(ColSeason)
	weeks := t.Column(ColWeek)
	pass := t.Column(ColPassYardsAllowed)
	rush := t.Column(ColRushYardsAllowed)
	total := t.Column(ColTotalYardsAllowed)
	tds := t.Column(ColTouchdownsAllowed)

	out := make([]WeekStat, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		team, ok := teams.StringAt(i)
		if !ok {
			continue
		}
		s, okS := seasons.IntAt(i)
		w, okW := weeks.IntAt(i)
		if !okS || !okW {
			continue
		}
		stat := WeekStat{
			Team:              team,
			Season:            s,
			Week:              w,
			PassYardsAllowed:  valueOrZero(pass, i),
			RushYardsAllowed:  valueOrZero(rush, i),
			TotalYardsAllowed: valueOrZero(total, i),
		}
		if tds != nil {
			stat.TouchdownsAllowed = valueOrZero(tds, i)
		}
		out = append(out, stat)
	}
	return out, nil
}

func sortWeekStats(stats []WeekStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Season != stats[j].Season {
			return stats[i].Season < stats[j].Season
		}
		if stats[i].Week != stats[j].Week {
			return stats[i].Week < stats[j].Week
		}
		return stats[i].Team < stats[j].Team
	})
}

func valueOrZero(col *frame.Column, row int) float64 {
	v, ok := col.FloatAt(row)
	if !ok {
		return 0
	}
	return v
}

type statKey struct {
	team   string
	season int
	week   int
}
