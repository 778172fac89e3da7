package sqlstore

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

type bookRow struct {
	ISBN          string `db:"isbn"`
	Title         string `db:"title"`
	YearPublished int    `db:"year_published"`
	AuthorEmail   string `db:"authoring_entity_email"`
	PublisherName string `db:"publisher_name"`
}

var bookColumns = []any{"isbn", "title", "year_published", "authoring_entity_email", "publisher_name"}

func (t *sqlTx) insertBook(ctx context.Context, b *types.Book) error {
	row := bookRow{
		ISBN:          b.ISBN,
		Title:         b.Title,
		YearPublished: b.YearPublished,
		AuthorEmail:   b.AuthorEmail,
		PublisherName: b.PublisherName,
	}
	return t.insert(ctx, types.CategoryBook, types.BooksTable, row)
}

func (t *sqlTx) getBook(ctx context.Context, isbn string) (*types.Book, error) {
	var row bookRow
	ds := t.dialect.From(types.BooksTable).
		Select(bookColumns...).
		Where(goqu.Ex{"isbn": isbn})
	if err := t.get(ctx, &row, ds); err != nil {
		if err == types.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("getting book %q: %w", isbn, err)
	}
	return hydrateBook(row), nil
}

func (t *sqlTx) fetchBooks(ctx context.Context) ([]types.Entity, error) {
	ds := t.dialect.From(types.BooksTable).
		Select(bookColumns...).
		Order(goqu.I("isbn").Asc())
	var rows []bookRow
	if err := t.selectAll(ctx, &rows, ds); err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	out := make([]types.Entity, 0, len(rows))
	for _, r := range rows {
		out = append(out, hydrateBook(r))
	}
	return out, nil
}

func hydrateBook(r bookRow) *types.Book {
	return &types.Book{
		ISBN:          r.ISBN,
		Title:         r.Title,
		YearPublished: r.YearPublished,
		AuthorEmail:   r.AuthorEmail,
		PublisherName: r.PublisherName,
	}
}
