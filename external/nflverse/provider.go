package nflverse

import (
	"bytes"
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

// PlayerWeekProvider serves weekly player stats from the per-season
// release files.
type PlayerWeekProvider struct {
	client *Client
}

// GameProvider serves the schedule from the shared games file.
type GameProvider struct {
	client *Client
}

func (c *Client) PlayerWeeks() *PlayerWeekProvider {
	return &PlayerWeekProvider{client: c}
}

func (c *Client) Games() *GameProvider {
	return &GameProvider{client: c}
}

func (p *PlayerWeekProvider) ListBySeasons(ctx context.Context, seasons []int) ([]playerweek.Record, error) {
	var out []playerweek.Record
	for _, season := range seasons {
		if season <= 0 {
			return nil, fmt.Errorf("season must be greater than zero")
		}
		url := fmt.Sprintf(p.client.playerStatsURL, season)
		raw, err := p.client.download(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch player stats season=%d: %w", season, err)
		}
		records, skipped, err := parsePlayerWeeks(bytes.NewReader(raw), season)
		if err != nil {
			return nil, fmt.Errorf("parse player stats season=%d: %w", season, err)
		}
		p.client.logger.InfoContext(ctx, "fetched player stats",
			"season", season,
			"rows", len(records),
			"skipped_non_regular", skipped,
		)
		out = append(out, records...)
	}
	return out, nil
}

// ListBySeasons filters the schedule to seasons. The games file covers every
// season, so it is downloaded and parsed once per client.
func (p *GameProvider) ListBySeasons(ctx context.Context, seasons []int) ([]game.Game, error) {
	if len(seasons) == 0 {
		return nil, nil
	}
	all, err := p.client.schedule.GetOrLoad(ctx, p.client.gamesURL, p.loadSchedule)
	if err != nil {
		return nil, err
	}

	wanted := make(map[int]struct{}, len(seasons))
	for _, season := range seasons {
		wanted[season] = struct{}{}
	}
	var out []game.Game
	for _, g := range all {
		if _, ok := wanted[g.Season]; ok {
			out = append(out, g)
		}
	}
	p.client.logger.DebugContext(ctx, "listed schedules", "seasons", seasons, "games", len(out))
	return out, nil
}

func (p *GameProvider) loadSchedule(ctx context.Context) ([]game.Game, error) {
	raw, err := p.client.download(ctx, p.client.gamesURL)
	if err != nil {
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}
	games, err := parseGames(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schedules: %w", err)
	}
	p.client.logger.InfoContext(ctx, "fetched schedules", "games", len(games))
	return games, nil
}
