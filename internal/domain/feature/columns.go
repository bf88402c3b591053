package feature

import (
	"fmt"

	"github.com/riskibarqy/nfl-projections/internal/domain/defense"
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

const (
	// ColumnsVersion changes whenever the order or membership of Columns
	// changes. Saved models are only valid against the version they were
	// trained with.
	ColumnsVersion = "v1"
	DefaultWindow  = 3

	ColTempNormalized = "temp_normalized"
	ColWindNormalized = "wind_normalized"
)

// RollingStats are the stat columns the rolling aggregator averages.
var RollingStats = []string{
	playerweek.StatPassingYards,
	playerweek.StatPassingTDs,
	playerweek.StatInterceptions,
	playerweek.StatRushingYards,
	playerweek.StatRushingTDs,
	playerweek.StatCarries,
	playerweek.StatReceivingYards,
	playerweek.StatReceivingTDs,
	playerweek.StatReceptions,
}

// modelRollingStats excludes interceptions, which is averaged but not fed to
// models.
var modelRollingStats = []string{
	playerweek.StatPassingYards,
	playerweek.StatPassingTDs,
	playerweek.StatRushingYards,
	playerweek.StatRushingTDs,
	playerweek.StatCarries,
	playerweek.StatReceivingYards,
	playerweek.StatReceivingTDs,
	playerweek.StatReceptions,
}

var opponentColumns = []string{
	defense.ColPassStrength,
	defense.ColRushStrength,
	defense.ColPassRank,
	defense.ColRushRank,
	defense.ColTotalRank,
}

var weatherColumns = []string{ColTempNormalized, ColWindNormalized}

var contextColumns = []string{game.ColIsHome, game.ColIsDome}

func RollingColumn(stat string, window int) string {
	return fmt.Sprintf("%s_roll%d", stat, window)
}

// Columns returns the ordered model input columns for a rolling window:
// 8 rolling, 5 opponent, 2 weather and 2 context columns. Training and
// inference must use this exact order.
func Columns(window int) []string {
	if window < 1 {
		window = DefaultWindow
	}
	out := make([]string, 0, len(modelRollingStats)+len(opponentColumns)+len(weatherColumns)+len(contextColumns))
	for _, stat := range modelRollingStats {
		out = append(out, RollingColumn(stat, window))
	}
	out = append(out, opponentColumns...)
	out = append(out, weatherColumns...)
	out = append(out, contextColumns...)
	return out
}

// DefaultColumns is Columns(DefaultWindow).
func DefaultColumns() []string {
	return Columns(DefaultWindow)
}

var targets = map[playerweek.Position][]string{
	playerweek.PositionQB: {
		playerweek.StatPassingYards,
		playerweek.StatPassingTDs,
	},
	playerweek.PositionRB: {
		playerweek.StatRushingYards,
		playerweek.StatRushingTDs,
		playerweek.StatCarries,
		playerweek.StatReceivingYards,
		playerweek.StatReceptions,
	},
	playerweek.PositionWR: {
		playerweek.StatReceivingYards,
		playerweek.StatReceivingTDs,
		playerweek.StatReceptions,
	},
	playerweek.PositionTE: {
		playerweek.StatReceivingYards,
		playerweek.StatReceivingTDs,
		playerweek.StatReceptions,
	},
}

// Targets returns the stat columns predicted for a position.
func Targets(position playerweek.Position) ([]string, error) {
	cols, ok := targets[position]
	if !ok {
		return nil, &InvalidPositionError{Position: string(position)}
	}
	return append([]string(nil), cols...), nil
}

// TargetMap returns a copy of the full position to targets mapping.
func TargetMap() map[playerweek.Position][]string {
	out := make(map[playerweek.Position][]string, len(targets))
	for pos, cols := range targets {
		out[pos] = append([]string(nil), cols...)
	}
	return out
}

// AllTargets lists every distinct target column in a stable order.
func AllTargets() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, pos := range []playerweek.Position{playerweek.PositionQB, playerweek.PositionRB, playerweek.PositionWR, playerweek.PositionTE} {
		for _, col := range targets[pos] {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			out = append(out, col)
		}
	}
	return out
}
