package feature

import (
	"gonum.org/v1/gonum/stat"

	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// ComputeRolling adds {stat}_roll{window} for every tracked stat present in
// t. Each value is the mean of the player's last window games up to and
// including the current one; early-career rows average what exists. Nulls
// are skipped, and a window of only nulls stays null. The result is sorted
// by (player_id, season, week).
func ComputeRolling(t *frame.Table, window int) (*frame.Table, error) {
	if window < 1 {
		window = DefaultWindow
	}
	if err := t.Require("player_weeks", playerweek.ColPlayerID, playerweek.ColSeason, playerweek.ColWeek); err != nil {
		return nil, err
	}

	sorted, err := t.SortBy(playerweek.ColPlayerID, playerweek.ColSeason, playerweek.ColWeek)
	if err != nil {
		return nil, err
	}
	starts := playerStarts(sorted.Column(playerweek.ColPlayerID))

	var added []*frame.Column
	for _, name := range RollingStats {
		src := sorted.Column(name)
		if src == nil {
			continue
		}
		added = append(added, rollingMean(src, starts, window, RollingColumn(name, window)))
	}
	if len(added) == 0 {
		return sorted, nil
	}
	return sorted.With(added...)
}

// playerStarts returns, for each row, the index of the first row of the
// same player. ids must already be grouped.
func playerStarts(ids *frame.Column) []int {
	starts := make([]int, ids.Len())
	start := 0
	prev, prevOK := "", false
	for i := 0; i < ids.Len(); i++ {
		id, ok := ids.StringAt(i)
		if i == 0 || id != prev || ok != prevOK {
			start = i
		}
		starts[i] = start
		prev, prevOK = id, ok
	}
	return starts
}

func rollingMean(src *frame.Column, starts []int, window int, name string) *frame.Column {
	out := frame.NewColumn(name, frame.KindFloat, src.Len())
	buf := make([]float64, 0, window)
	for i := 0; i < src.Len(); i++ {
		from := max(starts[i], i-window+1)
		buf = buf[:0]
		for j := from; j <= i; j++ {
			if v, ok := src.FloatAt(j); ok {
				buf = append(buf, v)
			}
		}
		if len(buf) == 0 {
			continue
		}
		out.SetFloat(i, stat.Mean(buf, nil))
	}
	return out
}
