package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	basecache "github.com/riskibarqy/nfl-projections/internal/platform/cache"
)

type PlayerWeekProvider struct {
	next  playerweek.Provider
	cache *basecache.Store[[]playerweek.Record]
}

func NewPlayerWeekProvider(next playerweek.Provider, cache *basecache.Store[[]playerweek.Record]) *PlayerWeekProvider {
	return &PlayerWeekProvider{next: next, cache: cache}
}

func (p *PlayerWeekProvider) ListBySeasons(ctx context.Context, seasons []int) ([]playerweek.Record, error) {
	items, err := p.cache.GetOrLoad(ctx, seasonsKey("playerweek", seasons), func(ctx context.Context) ([]playerweek.Record, error) {
		items, err := p.next.ListBySeasons(ctx, seasons)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(items), nil
}

type GameProvider struct {
	next  game.Provider
	cache *basecache.Store[[]game.Game]
}

func NewGameProvider(next game.Provider, cache *basecache.Store[[]game.Game]) *GameProvider {
	return &GameProvider{next: next, cache: cache}
}

func (p *GameProvider) ListBySeasons(ctx context.Context, seasons []int) ([]game.Game, error) {
	items, err := p.cache.GetOrLoad(ctx, seasonsKey("game", seasons), func(ctx context.Context) ([]game.Game, error) {
		items, err := p.next.ListBySeasons(ctx, seasons)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(items), nil
}

// seasonsKey is independent of the order and repetition of seasons.
func seasonsKey(prefix string, seasons []int) string {
	sorted := slices.Clone(seasons)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, 0, len(sorted))
	for _, season := range sorted {
		parts = append(parts, strconv.Itoa(season))
	}
	return prefix + ":seasons:" + strings.Join(parts, ",")
}
