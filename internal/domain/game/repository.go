package game

import "context"

// Provider supplies the schedule for whole seasons.
type Provider interface {
	ListBySeasons(ctx context.Context, seasons []int) ([]Game, error)
}
