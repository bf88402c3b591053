package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

func scheduleKCvsBUF() *frame.Table {
	return frame.MustNew(
		frame.Strings("game_id", "2024_01_BUF_KC"),
		frame.Ints("season", 2024),
		frame.Ints("week", 1),
		frame.Strings("home_team", "KC"),
		frame.Strings("away_team", "BUF"),
		frame.NullableFloats("temperature", []*float64{ptr(78)}),
		frame.NullableFloats("wind_speed", []*float64{nil}),
		frame.Strings("roof", "outdoors"),
	)
}

func TestAttachGameContext_HomeAndAway(t *testing.T) {
	players := frame.MustNew(
		frame.Strings("player_id", "kc1", "buf1"),
		frame.Strings("team", "KC", "BUF"),
		frame.Ints("season", 2024, 2024),
		frame.Ints("week", 1, 1),
	)

	out, report, err := AttachGameContext(players, scheduleKCvsBUF())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 0, report.Unmatched)

	isHome := out.Column("is_home")
	opp := out.Column("opponent")

	kcHome, _ := isHome.BoolAt(0)
	kcOpp, _ := opp.StringAt(0)
	assert.True(t, kcHome)
	assert.Equal(t, "BUF", kcOpp)

	bufHome, _ := isHome.BoolAt(1)
	bufOpp, _ := opp.StringAt(1)
	assert.False(t, bufHome)
	assert.Equal(t, "KC", bufOpp)

	gameID, _ := out.Column("game_id").StringAt(1)
	assert.Equal(t, "2024_01_BUF_KC", gameID)
	temp, _ := out.Column("temperature").FloatAt(0)
	assert.Equal(t, 78.0, temp)
	dome, ok := out.Column("is_dome").BoolAt(0)
	assert.True(t, ok)
	assert.False(t, dome)
}

func TestAttachGameContext_ByeWeekKeepsRowWithNulls(t *testing.T) {
	players := frame.MustNew(
		frame.Strings("player_id", "kc1", "sf1"),
		frame.Strings("team", "KC", "SF"),
		frame.Ints("season", 2024, 2024),
		frame.Ints("week", 1, 1),
	)

	out, report, err := AttachGameContext(players, scheduleKCvsBUF())
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 1, report.Unmatched)

	for _, name := range []string{"game_id", "opponent", "is_home"} {
		if out.Column(name).Valid(1) {
			t.Fatalf("expected null %s for bye-week row", name)
		}
	}
}

func TestAttachGameContext_WithoutWeatherColumns(t *testing.T) {
	games := frame.MustNew(
		frame.Strings("game_id", "g1"),
		frame.Ints("season", 2024),
		frame.Ints("week", 1),
		frame.Strings("home_team", "KC"),
		frame.Strings("away_team", "BUF"),
	)
	players := frame.MustNew(
		frame.Strings("team", "KC"),
		frame.Ints("season", 2024),
		frame.Ints("week", 1),
	)

	out, _, err := AttachGameContext(players, games)
	require.NoError(t, err)
	assert.False(t, out.Has("temperature"))
	assert.False(t, out.Has("roof"))
	assert.False(t, out.Has("is_dome"))
}

func TestAttachGameContext_DuplicateKeysKeepFirst(t *testing.T) {
	games := frame.MustNew(
		frame.Strings("game_id", "first", "second"),
		frame.Ints("season", 2024, 2024),
		frame.Ints("week", 1, 1),
		frame.Strings("home_team", "KC", "KC"),
		frame.Strings("away_team", "BUF", "DEN"),
	)
	players := frame.MustNew(
		frame.Strings("team", "KC"),
		frame.Ints("season", 2024),
		frame.Ints("week", 1),
	)

	out, report, err := AttachGameContext(players, games)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DuplicateKeys)
	id, _ := out.Column("game_id").StringAt(0)
	assert.Equal(t, "first", id)
}

func TestAttachGameContext_MissingColumns(t *testing.T) {
	players := frame.MustNew(frame.Ints("season", 2024), frame.Ints("week", 1))
	_, _, err := AttachGameContext(players, scheduleKCvsBUF())
	require.Error(t, err)
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "team", missing.Column)

	players = frame.MustNew(frame.Strings("team", "KC"), frame.Ints("season", 2024), frame.Ints("week", 1))
	games := frame.MustNew(frame.Ints("season", 2024), frame.Ints("week", 1), frame.Strings("home_team", "KC"), frame.Strings("away_team", "BUF"))
	_, _, err = AttachGameContext(players, games)
	require.Error(t, err)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "game_id", missing.Column)
}
