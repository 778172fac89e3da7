package sqlstore

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

type publisherRow struct {
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
}

var publisherColumns = []any{"name", "email", "phone"}

func (t *sqlTx) insertPublisher(ctx context.Context, p *types.Publisher) error {
	row := publisherRow{Name: p.Name, Email: p.Email, Phone: p.Phone}
	return t.insert(ctx, types.CategoryPublisher, types.PublishersTable, row)
}

func (t *sqlTx) getPublisher(ctx context.Context, name string) (*types.Publisher, error) {
	var row publisherRow
	ds := t.dialect.From(types.PublishersTable).
		Select(publisherColumns...).
		Where(goqu.Ex{"name": name})
	if err := t.get(ctx, &row, ds); err != nil {
		if err == types.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("getting publisher %q: %w", name, err)
	}
	return hydratePublisher(row), nil
}

func (t *sqlTx) fetchPublishers(ctx context.Context) ([]types.Entity, error) {
	var rows []publisherRow
	ds := t.dialect.From(types.PublishersTable).
		Select(publisherColumns...).
		Order(goqu.I("name").Asc())
	if err := t.selectAll(ctx, &rows, ds); err != nil {
		return nil, fmt.Errorf("listing publishers: %w", err)
	}
	out := make([]types.Entity, 0, len(rows))
	for _, r := range rows {
		out = append(out, hydratePublisher(r))
	}
	return out, nil
}

func hydratePublisher(r publisherRow) *types.Publisher {
	return &types.Publisher{Name: r.Name, Email: r.Email, Phone: r.Phone}
}
