package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

// PlayerWeekProvider serves player weeks held in memory, keyed by season.
type PlayerWeekProvider struct {
	mu       sync.RWMutex
	bySeason map[int][]playerweek.Record
}

func NewPlayerWeekProvider(records []playerweek.Record) *PlayerWeekProvider {
	bySeason := make(map[int][]playerweek.Record)
	for _, item := range records {
		bySeason[item.Season] = append(bySeason[item.Season], item)
	}

	return &PlayerWeekProvider{bySeason: bySeason}
}

func (p *PlayerWeekProvider) ListBySeasons(_ context.Context, seasons []int) ([]playerweek.Record, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []playerweek.Record
	for _, season := range seasons {
		out = append(out, p.bySeason[season]...)
	}
	return out, nil
}

// Put replaces every record of the seasons present in records.
func (p *PlayerWeekProvider) Put(records []playerweek.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	replaced := make(map[int]bool)
	for _, item := range records {
		if !replaced[item.Season] {
			p.bySeason[item.Season] = nil
			replaced[item.Season] = true
		}
		p.bySeason[item.Season] = append(p.bySeason[item.Season], item)
	}
}
