package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var _ types.Tx = (*sqlTx)(nil)

// sqlTx implements types.Tx over a database/sql transaction. Statements are
// built with the backend's goqu dialect in prepared mode so placeholders
// match the driver (? for SQLite, $n for PostgreSQL).
type sqlTx struct {
	tx      *sqlx.Tx
	dialect goqu.DialectWrapper
	done    bool
}

// Insert dispatches on the entity type to the per-table writer.
func (t *sqlTx) Insert(ctx context.Context, e types.Entity) error {
	if t.done {
		return types.ErrTxDone
	}
	switch v := e.(type) {
	case *types.Publisher:
		return t.insertPublisher(ctx, v)
	case *types.Book:
		return t.insertBook(ctx, v)
	case types.AuthoringEntity:
		return t.insertAuthoring(ctx, v)
	default:
		return fmt.Errorf("%w: %T", types.ErrInvalidData, e)
	}
}

// Remove deletes one record of kind. Variant kinds only match rows carrying
// that variant's discriminator.
func (t *sqlTx) Remove(ctx context.Context, kind types.Kind, key string) error {
	if t.done {
		return types.ErrTxDone
	}
	table, err := kind.Table()
	if err != nil {
		return err
	}
	where := goqu.Ex{keyColumn(table): key}
	if d, ok := kind.Discriminator(); ok {
		where[types.DiscriminatorColumnName] = string(d)
	}
	query, args, err := t.dialect.Delete(table).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(kind.Category(), fmt.Errorf("deleting %s %q: %w", kind, key, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// QueryAll returns every record of kind ordered by key.
func (t *sqlTx) QueryAll(ctx context.Context, kind types.Kind) ([]types.Entity, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	switch {
	case kind == types.KindPublisher:
		return t.fetchPublishers(ctx)
	case kind == types.KindBook:
		return t.fetchBooks(ctx)
	case kind.IsAuthoring():
		return t.fetchAuthoring(ctx, kind)
	default:
		return nil, types.ErrUnknownKind
	}
}

// QueryByKey returns one record of kind, or ErrNotFound.
func (t *sqlTx) QueryByKey(ctx context.Context, kind types.Kind, key string) (types.Entity, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	switch {
	case kind == types.KindPublisher:
		p, err := t.getPublisher(ctx, key)
		if err != nil {
			return nil, err
		}
		return p, nil
	case kind == types.KindBook:
		b, err := t.getBook(ctx, key)
		if err != nil {
			return nil, err
		}
		return b, nil
	case kind.IsAuthoring():
		e, err := t.getAuthoring(ctx, key)
		if err != nil {
			return nil, err
		}
		if d, ok := kind.Discriminator(); ok && e.Discriminator() != d {
			return nil, types.ErrNotFound
		}
		return e, nil
	default:
		return nil, types.ErrUnknownKind
	}
}

// Commit applies the transaction. Returns ErrTxDone if already finished.
func (t *sqlTx) Commit() error {
	if t.done {
		return types.ErrTxDone
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction. It is a no-op once the transaction
// has finished so callers can defer it.
func (t *sqlTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

// keyColumn returns the primary key column of table.
func keyColumn(table string) string {
	switch table {
	case types.PublishersTable:
		return "name"
	case types.BooksTable:
		return "isbn"
	case types.TeamMembersTable:
		return "membership_id"
	default:
		return "email"
	}
}

// get runs a single-row select built by ds and scans it into dest.
// Returns ErrNotFound when no row matches.
func (t *sqlTx) get(ctx context.Context, dest any, ds *goqu.SelectDataset) error {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building select: %w", err)
	}
	if err := t.tx.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrNotFound
		}
		return err
	}
	return nil
}

// selectAll runs a select built by ds and scans all rows into dest.
func (t *sqlTx) selectAll(ctx context.Context, dest any, ds *goqu.SelectDataset) error {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building select: %w", err)
	}
	return t.tx.SelectContext(ctx, dest, query, args...)
}

// insert writes one row built from a db-tagged struct.
func (t *sqlTx) insert(ctx context.Context, category, table string, row any) error {
	query, args, err := t.dialect.Insert(table).Rows(row).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return classify(category, fmt.Errorf("inserting into %s: %w", table, err))
	}
	return nil
}
