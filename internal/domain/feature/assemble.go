package feature

import (
	"github.com/riskibarqy/nfl-projections/internal/domain/defense"
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// RankFunc turns defensive week stats into rankings. defense.Rank is the
// sequential implementation; callers may supply a parallel one as long as it
// returns the same rows in the same order.
type RankFunc func(stats []defense.WeekStat) []defense.Ranking

type Options struct {
	Window int
	Rank   RankFunc
}

// Report summarizes an assembly run.
type Report struct {
	Rows                  int
	Join                  JoinReport
	RollingColumns        []string
	DefensiveWeekStats    int
	Rankings              int
	MissingOpponentRating int
}

// Assemble builds the feature table from cleaned player weeks and the
// schedule with the sequential ranking engine.
func Assemble(players, games *frame.Table, window int) (*frame.Table, Report, error) {
	return AssembleWith(players, games, Options{Window: window})
}

// AssembleWith joins game context, normalizes weather, adds rolling
// averages, ranks defenses from prior weeks and joins those rankings onto
// each row by (opponent, season, week). Output is sorted by (season, week,
// player_id).
func AssembleWith(players, games *frame.Table, opts Options) (*frame.Table, Report, error) {
	var report Report
	if opts.Window < 1 {
		opts.Window = DefaultWindow
	}
	if opts.Rank == nil {
		opts.Rank = defense.Rank
	}

	joined, join, err := AttachGameContext(players, games)
	if err != nil {
		return nil, report, err
	}
	report.Join = join

	weathered, err := NormalizeWeather(joined)
	if err != nil {
		return nil, report, err
	}

	rolled, err := ComputeRolling(weathered, opts.Window)
	if err != nil {
		return nil, report, err
	}
	for _, stat := range RollingStats {
		if name := RollingColumn(stat, opts.Window); rolled.Has(name) {
			report.RollingColumns = append(report.RollingColumns, name)
		}
	}

	weekStats, err := defense.AggregateWeekStats(rolled)
	if err != nil {
		return nil, report, err
	}
	report.DefensiveWeekStats = len(weekStats)

	rankings := opts.Rank(weekStats)
	report.Rankings = len(rankings)

	withOpp, missing, err := JoinRankings(rolled, defense.RankingsTable(rankings))
	if err != nil {
		return nil, report, err
	}
	report.MissingOpponentRating = missing

	out, err := withOpp.SortBy(playerweek.ColSeason, playerweek.ColWeek, playerweek.ColPlayerID)
	if err != nil {
		return nil, report, err
	}
	report.Rows = out.Len()
	return out, report, nil
}

// JoinRankings left-joins ranking columns onto features where the feature
// row's opponent, season and week match the ranking's team, season and
// week. It returns the number of rows left without a ranking.
func JoinRankings(features, rankings *frame.Table) (*frame.Table, int, error) {
	if err := features.Require("features", game.ColOpponent, playerweek.ColSeason, playerweek.ColWeek); err != nil {
		return nil, 0, err
	}
	if err := rankings.Require("defensive_rankings", defense.RankingColumns...); err != nil {
		return nil, 0, err
	}

	rankTeam := rankings.Column(defense.ColTeam)
	rankSeason := rankings.Column(defense.ColSeason)
	rankWeek := rankings.Column(defense.ColWeek)
	index := make(map[teamWeek]int, rankings.Len())
	for i := 0; i < rankings.Len(); i++ {
		team, okT := rankTeam.StringAt(i)
		s, okS := rankSeason.IntAt(i)
		w, okW := rankWeek.IntAt(i)
		if !okT || !okS || !okW {
			continue
		}
		key := teamWeek{season: s, week: w, team: team}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	opponent := features.Column(game.ColOpponent)
	season := features.Column(playerweek.ColSeason)
	week := features.Column(playerweek.ColWeek)
	rows := make([]int, features.Len())
	missing := 0
	for i := range rows {
		rows[i] = -1
		team, okT := opponent.StringAt(i)
		s, okS := season.IntAt(i)
		w, okW := week.IntAt(i)
		if okT && okS && okW {
			if r, ok := index[teamWeek{season: s, week: w, team: team}]; ok {
				rows[i] = r
				continue
			}
		}
		missing++
	}

	added := make([]*frame.Column, 0, len(opponentColumns))
	for _, name := range opponentColumns {
		added = append(added, rankings.Column(name).Take(rows))
	}
	out, err := features.With(added...)
	if err != nil {
		return nil, 0, err
	}
	return out, missing, nil
}
