package querybuilder

import (
	"testing"

	"github.com/lib/pq"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_id", "week").
		From("player_week_features").
		Where(Eq("season", 2024), Eq("position", "QB")).
		OrderBy("week", "player_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_id, week FROM player_week_features WHERE season = $1 AND position = $2 ORDER BY week, player_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 2024 || args[1] != "QB" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("team").From("teams").Where(In("team", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT team FROM teams WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("player_week_features").
		Where(AnyInt("season", []int{2023, 2024})).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM player_week_features WHERE season = ANY($1)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if _, ok := args[0].(*pq.Int64Array); !ok {
		t.Fatalf("expected pq int64 array arg, got %T", args[0])
	}
}

func TestDeleteBuilder_RequiresCondition(t *testing.T) {
	if _, _, err := DeleteFrom("player_week_features").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("player_week_features").
		Columns("player_id", "week").
		Values("p1", 1).
		Values("p2", 2).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO player_week_features (player_id, week) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type rowModel struct {
	PlayerID string   `db:"player_id"`
	Yards    *float64 `db:"yards"`
	internal int
	Skipped  string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	yards := 10.5
	query, args, err := InsertModels("rows", []any{
		rowModel{PlayerID: "p1", Yards: &yards},
		&rowModel{PlayerID: "p2"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO rows (player_id, yards) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels_RejectsMixedTypes(t *testing.T) {
	type other struct {
		Team string `db:"team"`
	}
	if _, _, err := InsertModels("rows", []any{rowModel{}, other{}}, ""); err == nil {
		t.Fatalf("expected error for mixed model columns")
	}
}
