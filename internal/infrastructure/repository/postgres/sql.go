package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// execer is satisfied by *sqlx.DB and *sqlx.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// isBindParameterMismatch matches the error a transaction pooler returns when
// an unnamed statement prepared on another backend is reused.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "(26000)")
}

func isStalePreparedStatement(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

// execWithRetry runs a statement and retries it once when the pooler lost the
// prepared statement.
func execWithRetry(ctx context.Context, db execer, query string, args ...any) (sql.Result, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if isStalePreparedStatement(err) {
		return db.ExecContext(ctx, query, args...)
	}
	return res, err
}

func selectWithRetry(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if isStalePreparedStatement(err) {
		return db.SelectContext(ctx, dest, query, args...)
	}
	return err
}

func nullFloatToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func nullBoolToPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	out := v.Bool
	return &out
}
