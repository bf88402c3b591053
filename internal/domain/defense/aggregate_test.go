package defense

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

func playerRows(opponents []*string, passYds []*float64) *frame.Table {
	n := len(opponents)
	seasons := make([]int, n)
	weeks := make([]int, n)
	zeros := make([]float64, n)
	for i := range seasons {
		seasons[i] = 2024
		weeks[i] = 1
	}
	return frame.MustNew(
		frame.NullableStrings("opponent", opponents),
		frame.Ints("season", seasons...),
		frame.Ints("week", weeks...),
		frame.NullableFloats("passing_yards", passYds),
		frame.Floats("rushing_yards", zeros...),
		frame.Floats("receiving_yards", zeros...),
		frame.Floats("passing_tds", zeros...),
		frame.Floats("rushing_tds", zeros...),
		frame.Floats("receiving_tds", zeros...),
	)
}

func str(v string) *string   { return &v }
func num(v float64) *float64 { return &v }

func TestAggregateWeekStats_SumsPerDefense(t *testing.T) {
	tbl := frame.MustNew(
		frame.Strings("opponent", "BUF", "BUF", "KC"),
		frame.Ints("season", 2024, 2024, 2024),
		frame.Ints("week", 1, 1, 1),
		frame.Floats("passing_yards", 250, 0, 180),
		frame.Floats("rushing_yards", 10, 60, 90),
		frame.Floats("receiving_yards", 0, 20, 0),
		frame.Floats("passing_tds", 2, 0, 1),
		frame.Floats("rushing_tds", 0, 1, 0),
		frame.Floats("receiving_tds", 0, 1, 0),
	)

	stats, err := AggregateWeekStats(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	buf := stats[0]
	assert.Equal(t, "BUF", buf.Team)
	assert.Equal(t, 250.0, buf.PassYardsAllowed)
	assert.Equal(t, 70.0, buf.RushYardsAllowed)
	assert.Equal(t, 340.0, buf.TotalYardsAllowed)
	assert.Equal(t, 4.0, buf.TouchdownsAllowed)

	kc := stats[1]
	assert.Equal(t, "KC", kc.Team)
	assert.Equal(t, 270.0, kc.TotalYardsAllowed)
}

func TestAggregateWeekStats_NullStatsCountAsZero(t *testing.T) {
	tbl := playerRows([]*string{str("KC"), str("KC")}, []*float64{num(100), nil})

	stats, err := AggregateWeekStats(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 100.0, stats[0].PassYardsAllowed)
}

func TestAggregateWeekStats_SkipsRowsWithoutOpponent(t *testing.T) {
	tbl := playerRows([]*string{str("KC"), nil}, []*float64{num(100), num(500)})

	stats, err := AggregateWeekStats(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 100.0, stats[0].PassYardsAllowed)
}

func TestAggregateWeekStats_MissingColumn(t *testing.T) {
	tbl := frame.MustNew(
		frame.Strings("opponent", "KC"),
		frame.Ints("season", 2024),
		frame.Ints("week", 1),
	)

	_, err := AggregateWeekStats(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, frame.ErrMissingColumn))

	var missing *frame.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "passing_yards", missing.Column)
}

func TestComputeWeekStats_RoundTripsThroughRankings(t *testing.T) {
	tbl := frame.MustNew(
		frame.Strings("opponent", "KC", "BUF", "KC", "BUF"),
		frame.Ints("season", 2024, 2024, 2024, 2024),
		frame.Ints("week", 1, 1, 2, 2),
		frame.Floats("passing_yards", 100, 300, 50, 50),
		frame.Floats("rushing_yards", 0, 0, 0, 0),
		frame.Floats("receiving_yards", 0, 0, 0, 0),
		frame.Floats("passing_tds", 0, 0, 0, 0),
		frame.Floats("rushing_tds", 0, 0, 0, 0),
		frame.Floats("receiving_tds", 0, 0, 0, 0),
	)

	weekly, err := ComputeWeekStats(tbl)
	require.NoError(t, err)
	require.Equal(t, 4, weekly.Len())

	rankings, err := ComputeRankings(weekly)
	require.NoError(t, err)
	require.Equal(t, 2, rankings.Len())

	team, _ := rankings.Column(ColTeam).StringAt(0)
	rank, _ := rankings.Column(ColPassRank).IntAt(0)
	week, _ := rankings.Column(ColWeek).IntAt(0)
	assert.Equal(t, "BUF", team)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 2, week)
}
