package postgres

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation player_week_features does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation player_week_features does not exist")
		if isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestFeatureModelsShareColumns(t *testing.T) {
	insertCols, err := qb.ModelColumns(featureInsertModel{})
	require.NoError(t, err)
	tableCols, err := qb.ModelColumns(featureTableModel{})
	require.NoError(t, err)

	// the table model only adds the surrogate key and timestamp
	assert.Equal(t, append([]string{"id"}, append(insertCols, "created_at")...), tableCols)
}

func TestBuildReplaceStatements(t *testing.T) {
	records := make([]feature.Record, 5)
	for i := range records {
		records[i] = feature.Record{PlayerID: "p", Season: 2023 + i%2, Week: i + 1, Window: 3}
	}

	clearStmt, inserts, err := buildReplaceStatements([]int{2023, 2024}, records, 2)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM player_week_features WHERE season = ANY($1)", clearStmt.query)
	require.Len(t, clearStmt.args, 1)
	assert.Equal(t, pq.Array([]int64{2023, 2024}), clearStmt.args[0])

	require.Len(t, inserts, 3)
	cols, err := qb.ModelColumns(featureInsertModel{})
	require.NoError(t, err)
	assert.Len(t, inserts[0].args, 2*len(cols))
	assert.Len(t, inserts[2].args, len(cols))
	assert.True(t, strings.HasPrefix(inserts[0].query, "INSERT INTO player_week_features ("))
}

func TestBuildReplaceStatements_RejectsForeignSeason(t *testing.T) {
	_, _, err := buildReplaceStatements([]int{2024}, []feature.Record{{PlayerID: "p", Season: 2022}}, 10)
	require.Error(t, err)
}

func TestBuildReplaceStatements_EmptyRecordsOnlyClears(t *testing.T) {
	_, inserts, err := buildReplaceStatements([]int{2024}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, inserts)
}

func TestBuildListStatement(t *testing.T) {
	stmt, err := buildListStatement([]int{2022, 2023})
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM player_week_features WHERE season = ANY($1) ORDER BY season, week, player_id", stmt.query)
	require.Len(t, stmt.args, 1)
	assert.Equal(t, pq.Array([]int64{2022, 2023}), stmt.args[0])

	_, err = buildListStatement(nil)
	require.Error(t, err)
}

func TestFeatureTableModel_ToRecord(t *testing.T) {
	row := featureTableModel{
		PlayerID:         "00-001",
		Position:         "QB",
		Season:           2024,
		Week:             5,
		Opponent:         sql.NullString{String: "LV", Valid: true},
		PassingYardsRoll: sql.NullFloat64{Float64: 275.5, Valid: true},
		OppPassRank:      sql.NullInt64{Int64: 4, Valid: true},
		IsHome:           sql.NullBool{Bool: false, Valid: true},
		Window:           3,
	}

	rec := row.toRecord()
	require.NotNil(t, rec.Opponent)
	assert.Equal(t, "LV", *rec.Opponent)
	assert.Nil(t, rec.GameID)
	assert.Equal(t, playerweek.Float(275.5), rec.PassingYardsRoll)
	require.NotNil(t, rec.OppPassRank)
	assert.Equal(t, 4, *rec.OppPassRank)
	assert.Nil(t, rec.OppRushRank)
	require.NotNil(t, rec.IsHome)
	assert.False(t, *rec.IsHome)
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
