package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsMismatchedLengths(t *testing.T) {
	_, err := New(Ints("season", 2024, 2024), Ints("week", 1))
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := New(Ints("week", 1), Ints("week", 2))
	if err == nil {
		t.Fatalf("expected duplicate column error")
	}
}

func TestRequire_ReturnsMissingColumnError(t *testing.T) {
	tbl := MustNew(Ints("season", 2024))

	err := tbl.Require("players", "season", "week")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "week", missing.Column)
	assert.Equal(t, "players", missing.Table)
}

func TestSortBy_MultiKeyStableWithNullsLast(t *testing.T) {
	week := NewColumn("week", KindInt, 4)
	week.SetInt(0, 2)
	week.SetInt(2, 1)
	week.SetInt(3, 1)
	tbl := MustNew(
		Strings("player_id", "b", "a", "b", "a"),
		week,
		Floats("yards", 10, 20, 30, 40),
	)

	sorted, err := tbl.SortBy("player_id", "week")
	require.NoError(t, err)

	ids := sorted.Column("player_id")
	yards := sorted.Column("yards")
	gotIDs := make([]string, 0, sorted.Len())
	gotYards := make([]float64, 0, sorted.Len())
	for i := 0; i < sorted.Len(); i++ {
		id, _ := ids.StringAt(i)
		y, _ := yards.FloatAt(i)
		gotIDs = append(gotIDs, id)
		gotYards = append(gotYards, y)
	}
	assert.Equal(t, []string{"a", "a", "b", "b"}, gotIDs)
	assert.Equal(t, []float64{40, 20, 30, 10}, gotYards)

	// original order is untouched
	first, _ := tbl.Column("yards").FloatAt(0)
	assert.Equal(t, 10.0, first)
}

func TestTake_NegativeIndexYieldsNull(t *testing.T) {
	tbl := MustNew(Strings("game_id", "g1", "g2"))

	out := tbl.Take([]int{1, -1, 0})
	require.Equal(t, 3, out.Len())

	col := out.Column("game_id")
	v, ok := col.StringAt(0)
	assert.True(t, ok)
	assert.Equal(t, "g2", v)
	_, ok = col.StringAt(1)
	assert.False(t, ok)
	assert.Equal(t, 1, col.NullCount())
}

func TestWith_ReplacesExistingColumnInPlace(t *testing.T) {
	tbl := MustNew(Ints("season", 2024), Floats("yards", 1))

	out, err := tbl.With(Floats("yards", 99), Bools("is_home", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"season", "yards", "is_home"}, out.Names())

	v, _ := out.Column("yards").FloatAt(0)
	assert.Equal(t, 99.0, v)
	old, _ := tbl.Column("yards").FloatAt(0)
	assert.Equal(t, 1.0, old)
}

func TestColumnWidening(t *testing.T) {
	c := Ints("week", 3)
	f, ok := c.FloatAt(0)
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	b := Bools("is_home", true)
	f, ok = b.FloatAt(0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
}
