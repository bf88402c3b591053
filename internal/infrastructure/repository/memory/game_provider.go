package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
)

type GameProvider struct {
	mu       sync.RWMutex
	bySeason map[int][]game.Game
}

func NewGameProvider(games []game.Game) *GameProvider {
	bySeason := make(map[int][]game.Game)
	for _, item := range games {
		bySeason[item.Season] = append(bySeason[item.Season], item)
	}

	return &GameProvider{bySeason: bySeason}
}

func (p *GameProvider) ListBySeasons(_ context.Context, seasons []int) ([]game.Game, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []game.Game
	for _, season := range seasons {
		out = append(out, p.bySeason[season]...)
	}
	return out, nil
}
