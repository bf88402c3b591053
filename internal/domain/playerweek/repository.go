package playerweek

import "context"

// Provider supplies raw player-week stats for whole seasons.
type Provider interface {
	ListBySeasons(ctx context.Context, seasons []int) ([]Record, error)
}
