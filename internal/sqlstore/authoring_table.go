package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// authoringRow is one row of the single authoring entity table. Variant
// columns are NULL for variants that do not carry them.
type authoringRow struct {
	Email      string         `db:"email"`
	Type       string         `db:"authoring_entity_type"`
	Name       string         `db:"name"`
	HeadWriter sql.NullString `db:"head_writer"`
	YearFormed sql.NullInt64  `db:"year_formed"`
}

var authoringColumns = []any{"email", "authoring_entity_type", "name", "head_writer", "year_formed"}

func (t *sqlTx) insertAuthoring(ctx context.Context, e types.AuthoringEntity) error {
	rec := types.RecordOf(e)
	row := authoringRow{Email: rec.Email, Type: rec.Type, Name: rec.Name}
	if rec.HeadWriter != nil {
		row.HeadWriter = sql.NullString{String: *rec.HeadWriter, Valid: true}
	}
	if rec.YearFormed != nil {
		row.YearFormed = sql.NullInt64{Int64: int64(*rec.YearFormed), Valid: true}
	}
	return t.insert(ctx, types.CategoryAuthoringEntity, types.AuthoringEntitiesTable, row)
}

func (t *sqlTx) getAuthoring(ctx context.Context, email string) (types.AuthoringEntity, error) {
	var row authoringRow
	ds := t.dialect.From(types.AuthoringEntitiesTable).
		Select(authoringColumns...).
		Where(goqu.Ex{"email": email})
	if err := t.get(ctx, &row, ds); err != nil {
		if err == types.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("getting authoring entity %q: %w", email, err)
	}
	return hydrateAuthoring(row)
}

// fetchAuthoring lists the rows of one variant, or of all variants for
// KindAuthoringEntity. An unknown discriminator aborts the listing.
func (t *sqlTx) fetchAuthoring(ctx context.Context, kind types.Kind) ([]types.Entity, error) {
	ds := t.dialect.From(types.AuthoringEntitiesTable).
		Select(authoringColumns...).
		Order(goqu.I("email").Asc())
	if d, ok := kind.Discriminator(); ok {
		ds = ds.Where(goqu.Ex{types.DiscriminatorColumnName: string(d)})
	}
	var rows []authoringRow
	if err := t.selectAll(ctx, &rows, ds); err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	out := make([]types.Entity, 0, len(rows))
	for _, r := range rows {
		e, err := hydrateAuthoring(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func hydrateAuthoring(r authoringRow) (types.AuthoringEntity, error) {
	rec := types.AuthoringRecord{Email: r.Email, Name: r.Name, Type: r.Type}
	if r.HeadWriter.Valid {
		hw := r.HeadWriter.String
		rec.HeadWriter = &hw
	}
	if r.YearFormed.Valid {
		yf := int(r.YearFormed.Int64)
		rec.YearFormed = &yf
	}
	return rec.Entity()
}
