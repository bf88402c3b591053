package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

// defaultInsertBatch keeps one insert well under the bind parameter limit.
const defaultInsertBatch = 1000

type FeatureRepository struct {
	db        *sqlx.DB
	batchSize int
}

func NewFeatureRepository(db *sqlx.DB) *FeatureRepository {
	return &FeatureRepository{db: db, batchSize: defaultInsertBatch}
}

type statement struct {
	query string
	args  []any
}

// ReplaceSeasons deletes every stored row of seasons and inserts records in
// one transaction. It returns the number of inserted rows.
func (r *FeatureRepository) ReplaceSeasons(ctx context.Context, seasons []int, records []feature.Record) (int, error) {
	if len(seasons) == 0 {
		return 0, fmt.Errorf("at least one season is required")
	}

	clearStmt, inserts, err := buildReplaceStatements(seasons, records, r.batchSize)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx replace feature seasons: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := execWithRetry(ctx, tx, clearStmt.query, clearStmt.args...); err != nil {
		return 0, fmt.Errorf("clear feature seasons %v: %w", seasons, err)
	}

	inserted := 0
	for i, stmt := range inserts {
		res, err := execWithRetry(ctx, tx, stmt.query, stmt.args...)
		if err != nil {
			return 0, fmt.Errorf("insert feature batch %d: %w", i, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace feature seasons tx: %w", err)
	}
	return inserted, nil
}

// ListBySeasons returns the stored rows of seasons ordered by season, week
// and player.
func (r *FeatureRepository) ListBySeasons(ctx context.Context, seasons []int) ([]feature.Record, error) {
	stmt, err := buildListStatement(seasons)
	if err != nil {
		return nil, err
	}

	var rows []featureTableModel
	if err := selectWithRetry(ctx, r.db, &rows, stmt.query, stmt.args...); err != nil {
		return nil, fmt.Errorf("list features seasons=%v: %w", seasons, err)
	}

	out := make([]feature.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func buildListStatement(seasons []int) (statement, error) {
	if len(seasons) == 0 {
		return statement{}, fmt.Errorf("at least one season is required")
	}
	query, args, err := qb.Select("*").
		From(featureTable).
		Where(qb.AnyInt("season", seasons)).
		OrderBy("season", "week", "player_id").
		ToSQL()
	if err != nil {
		return statement{}, fmt.Errorf("build list features query: %w", err)
	}
	return statement{query: query, args: args}, nil
}

// buildReplaceStatements rejects records outside seasons, since the delete
// would not cover them.
func buildReplaceStatements(seasons []int, records []feature.Record, batchSize int) (statement, []statement, error) {
	if batchSize < 1 {
		batchSize = defaultInsertBatch
	}

	allowed := make(map[int]struct{}, len(seasons))
	for _, season := range seasons {
		allowed[season] = struct{}{}
	}

	query, args, err := qb.DeleteFrom(featureTable).
		Where(qb.AnyInt("season", seasons)).
		ToSQL()
	if err != nil {
		return statement{}, nil, fmt.Errorf("build clear features query: %w", err)
	}
	clearStmt := statement{query: query, args: args}

	var inserts []statement
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		models := make([]any, 0, end-start)
		for _, rec := range records[start:end] {
			if _, ok := allowed[rec.Season]; !ok {
				return statement{}, nil, fmt.Errorf("record player=%s season=%d is outside the replaced seasons", rec.PlayerID, rec.Season)
			}
			models = append(models, newFeatureInsertModel(rec))
		}
		query, args, err := qb.InsertModels(featureTable, models, "")
		if err != nil {
			return statement{}, nil, fmt.Errorf("build insert features query: %w", err)
		}
		inserts = append(inserts, statement{query: query, args: args})
	}
	return clearStmt, inserts, nil
}
