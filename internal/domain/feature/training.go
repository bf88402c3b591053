package feature

import (
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// TrainingSet is a dense feature matrix for one position with one target
// vector per target stat. Rows of X line up with Keys and with every Y.
type TrainingSet struct {
	Position playerweek.Position
	Columns  []string
	Targets  []string
	X        [][]float64
	Y        map[string][]float64
	Keys     []RowKey
	Dropped  int
}

type RowKey struct {
	PlayerID string
	Season   int
	Week     int
}

func (s TrainingSet) Len() int {
	return len(s.X)
}

// PrepareTraining filters t to position and keeps rows where every feature
// and target is present. Booleans become 0/1.
func PrepareTraining(t *frame.Table, position playerweek.Position, window int) (TrainingSet, error) {
	targetCols, err := Targets(position)
	if err != nil {
		return TrainingSet{}, err
	}
	columns := Columns(window)

	required := []string{playerweek.ColPlayerID, playerweek.ColPosition, playerweek.ColSeason, playerweek.ColWeek}
	required = append(required, columns...)
	required = append(required, targetCols...)
	if err := t.Require("features", required...); err != nil {
		return TrainingSet{}, err
	}

	set := TrainingSet{
		Position: position,
		Columns:  columns,
		Targets:  targetCols,
		Y:        make(map[string][]float64, len(targetCols)),
	}

	posCol := t.Column(playerweek.ColPosition)
	featureCols := make([]*frame.Column, len(columns))
	for j, name := range columns {
		featureCols[j] = t.Column(name)
	}
	targetVals := make([]*frame.Column, len(targetCols))
	for j, name := range targetCols {
		targetVals[j] = t.Column(name)
	}

rows:
	for i := 0; i < t.Len(); i++ {
		pos, ok := posCol.StringAt(i)
		if !ok || playerweek.Position(pos) != position {
			continue
		}

		x := make([]float64, len(featureCols))
		for j, col := range featureCols {
			v, ok := col.FloatAt(i)
			if !ok {
				set.Dropped++
				continue rows
			}
			x[j] = v
		}
		y := make([]float64, len(targetVals))
		for j, col := range targetVals {
			v, ok := col.FloatAt(i)
			if !ok {
				set.Dropped++
				continue rows
			}
			y[j] = v
		}

		set.X = append(set.X, x)
		for j, name := range targetCols {
			set.Y[name] = append(set.Y[name], y[j])
		}
		key := RowKey{}
		key.PlayerID, _ = t.Column(playerweek.ColPlayerID).StringAt(i)
		key.Season, _ = t.Column(playerweek.ColSeason).IntAt(i)
		key.Week, _ = t.Column(playerweek.ColWeek).IntAt(i)
		set.Keys = append(set.Keys, key)
	}
	return set, nil
}

// HoldoutSplit trains on seasons before testSeason and tests on testSeason.
// Later seasons are in neither set.
func HoldoutSplit(t *frame.Table, testSeason int) (train, test *frame.Table, err error) {
	if err := t.Require("features", playerweek.ColSeason); err != nil {
		return nil, nil, err
	}
	season := t.Column(playerweek.ColSeason)
	train = t.Filter(func(row int) bool {
		s, ok := season.IntAt(row)
		return ok && s < testSeason
	})
	test = t.Filter(func(row int) bool {
		s, ok := season.IntAt(row)
		return ok && s == testSeason
	})
	return train, test, nil
}
