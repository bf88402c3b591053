package parquetstore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

type playerWeekRow struct {
	PlayerID       string   `parquet:"player_id"`
	PlayerName     string   `parquet:"player_name"`
	Position       string   `parquet:"position"`
	Team           string   `parquet:"team"`
	Season         int64    `parquet:"season"`
	Week           int64    `parquet:"week"`
	PassingYards   *float64 `parquet:"passing_yards,optional"`
	PassingTDs     *float64 `parquet:"passing_tds,optional"`
	Interceptions  *float64 `parquet:"interceptions,optional"`
	Attempts       *float64 `parquet:"attempts,optional"`
	Completions    *float64 `parquet:"completions,optional"`
	RushingYards   *float64 `parquet:"rushing_yards,optional"`
	RushingTDs     *float64 `parquet:"rushing_tds,optional"`
	Carries        *float64 `parquet:"carries,optional"`
	Receptions     *float64 `parquet:"receptions,optional"`
	Targets        *float64 `parquet:"targets,optional"`
	ReceivingYards *float64 `parquet:"receiving_yards,optional"`
	ReceivingTDs   *float64 `parquet:"receiving_tds,optional"`
	FantasyPPR     *float64 `parquet:"fantasy_points_ppr,optional"`
}

type gameRow struct {
	ID          string   `parquet:"game_id"`
	Season      int64    `parquet:"season"`
	Week        int64    `parquet:"week"`
	HomeTeam    string   `parquet:"home_team"`
	AwayTeam    string   `parquet:"away_team"`
	Temperature *float64 `parquet:"temperature,optional"`
	WindSpeed   *float64 `parquet:"wind_speed,optional"`
	Roof        string   `parquet:"roof"`
}

// CachedPlayerWeeks reads player weeks through the raw disk cache: a season
// is fetched from the next provider only when its file is missing, stale or
// a refresh is forced.
type CachedPlayerWeeks struct {
	next    playerweek.Provider
	store   *Store
	refresh bool
}

func (s *Store) CachedPlayerWeeks(next playerweek.Provider, refresh bool) *CachedPlayerWeeks {
	return &CachedPlayerWeeks{next: next, store: s, refresh: refresh}
}

func (c *CachedPlayerWeeks) ListBySeasons(ctx context.Context, seasons []int) ([]playerweek.Record, error) {
	var out []playerweek.Record
	for _, season := range seasons {
		path := c.store.path(rawDir, fmt.Sprintf("player_stats_%d.parquet", season))
		if !c.refresh && c.store.fresh(path) {
			rows, err := readRows[playerWeekRow](path)
			if err == nil {
				c.store.logger.DebugContext(ctx, "raw cache hit", "path", path, "rows", len(rows))
				for _, row := range rows {
					out = append(out, row.toRecord())
				}
				continue
			}
			c.store.logger.WarnContext(ctx, "raw cache unreadable, refetching", "path", path, "error", err)
		}

		records, err := c.next.ListBySeasons(ctx, []int{season})
		if err != nil {
			return nil, err
		}
		rows := make([]playerWeekRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, toPlayerWeekRow(rec))
		}
		if err := writeRows(path, rows); err != nil {
			return nil, err
		}
		c.store.logger.DebugContext(ctx, "raw cache stored", "path", path, "rows", len(rows))
		out = append(out, records...)
	}
	return out, nil
}

type CachedGames struct {
	next    game.Provider
	store   *Store
	refresh bool
}

func (s *Store) CachedGames(next game.Provider, refresh bool) *CachedGames {
	return &CachedGames{next: next, store: s, refresh: refresh}
}

func (c *CachedGames) ListBySeasons(ctx context.Context, seasons []int) ([]game.Game, error) {
	var out []game.Game
	for _, season := range seasons {
		path := c.store.path(rawDir, fmt.Sprintf("games_%d.parquet", season))
		if !c.refresh && c.store.fresh(path) {
			rows, err := readRows[gameRow](path)
			if err == nil {
				for _, row := range rows {
					out = append(out, row.toGame())
				}
				continue
			}
			c.store.logger.WarnContext(ctx, "raw cache unreadable, refetching", "path", path, "error", err)
		}

		games, err := c.next.ListBySeasons(ctx, []int{season})
		if err != nil {
			return nil, err
		}
		rows := make([]gameRow, 0, len(games))
		for _, g := range games {
			rows = append(rows, gameRow{
				ID:          g.ID,
				Season:      int64(g.Season),
				Week:        int64(g.Week),
				HomeTeam:    g.HomeTeam,
				AwayTeam:    g.AwayTeam,
				Temperature: g.Temperature,
				WindSpeed:   g.WindSpeed,
				Roof:        g.Roof,
			})
		}
		if err := writeRows(path, rows); err != nil {
			return nil, err
		}
		out = append(out, games...)
	}
	return out, nil
}

func (row gameRow) toGame() game.Game {
	return game.Game{
		ID:          row.ID,
		Season:      int(row.Season),
		Week:        int(row.Week),
		HomeTeam:    row.HomeTeam,
		AwayTeam:    row.AwayTeam,
		Temperature: row.Temperature,
		WindSpeed:   row.WindSpeed,
		Roof:        row.Roof,
	}
}

func toPlayerWeekRow(rec playerweek.Record) playerWeekRow {
	return playerWeekRow{
		PlayerID:       rec.PlayerID,
		PlayerName:     rec.PlayerName,
		Position:       string(rec.Position),
		Team:           rec.Team,
		Season:         int64(rec.Season),
		Week:           int64(rec.Week),
		PassingYards:   rec.PassingYards,
		PassingTDs:     rec.PassingTDs,
		Interceptions:  rec.Interceptions,
		Attempts:       rec.Attempts,
		Completions:    rec.Completions,
		RushingYards:   rec.RushingYards,
		RushingTDs:     rec.RushingTDs,
		Carries:        rec.Carries,
		Receptions:     rec.Receptions,
		Targets:        rec.Targets,
		ReceivingYards: rec.ReceivingYards,
		ReceivingTDs:   rec.ReceivingTDs,
		FantasyPPR:     rec.FantasyPPR,
	}
}

func (row playerWeekRow) toRecord() playerweek.Record {
	return playerweek.Record{
		PlayerID:       row.PlayerID,
		PlayerName:     row.PlayerName,
		Position:       playerweek.Position(row.Position),
		Team:           row.Team,
		Season:         int(row.Season),
		Week:           int(row.Week),
		PassingYards:   row.PassingYards,
		PassingTDs:     row.PassingTDs,
		Interceptions:  row.Interceptions,
		Attempts:       row.Attempts,
		Completions:    row.Completions,
		RushingYards:   row.RushingYards,
		RushingTDs:     row.RushingTDs,
		Carries:        row.Carries,
		Receptions:     row.Receptions,
		Targets:        row.Targets,
		ReceivingYards: row.ReceivingYards,
		ReceivingTDs:   row.ReceivingTDs,
		FantasyPPR:     row.FantasyPPR,
	}
}
