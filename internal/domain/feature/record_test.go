package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_RoundTrip(t *testing.T) {
	players, games := twoTeamSeason(340)
	features, _, err := Assemble(players, games, 3)
	require.NoError(t, err)

	records, err := Records(features, 3)
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, "pa", first.PlayerID)
	assert.Equal(t, "QB", first.Position)
	require.NotNil(t, first.Opponent)
	assert.Equal(t, "BBB", *first.Opponent)
	assert.Nil(t, first.OppPassRank)
	require.NotNil(t, first.PassingYardsRoll)
	assert.Equal(t, 100.0, *first.PassingYardsRoll)
	require.NotNil(t, first.IsHome)
	assert.True(t, *first.IsHome)

	rebuilt := RecordsTable(records)
	for _, name := range DefaultColumns() {
		require.True(t, rebuilt.Has(name), "missing %s", name)
	}

	again, err := Records(rebuilt, 3)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}
