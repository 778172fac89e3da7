package sqlstore

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify turns a driver error into a *types.ConstraintViolation when its
// error code names a unique or foreign key constraint. The category is the
// entity the failed write targeted. Other errors are returned unchanged.
func classify(category string, err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := constraintOf(err); ok {
		return &types.ConstraintViolation{Category: category, Constraint: constraint, Err: err}
	}
	return err
}

// constraintOf inspects driver error codes from SQLite, pgx and lib/pq.
func constraintOf(err error) (string, bool) {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return types.ConstraintUnique, true
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return types.ConstraintForeignKey, true
		}
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgConstraint(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgConstraint(string(pqErr.Code))
	}
	return "", false
}

func pgConstraint(code string) (string, bool) {
	switch code {
	case pgUniqueViolation:
		return types.ConstraintUnique, true
	case pgForeignKeyViolation:
		return types.ConstraintForeignKey, true
	}
	return "", false
}
