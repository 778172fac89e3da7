package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// BookDetails is a book with its author and publisher resolved.
type BookDetails struct {
	Book      *types.Book           `json:"book"`
	Author    types.AuthoringEntity `json:"author"`
	Publisher *types.Publisher      `json:"publisher"`
}

// AuthorKey is the primary key of an authoring entity with its variant.
type AuthorKey struct {
	Email   string              `json:"email"`
	Variant types.Discriminator `json:"variant"`
}

// Keys lists the primary keys of every entity in the catalog.
type Keys struct {
	Publishers        []string    `json:"publishers"`
	Books             []string    `json:"books"`
	AuthoringEntities []AuthorKey `json:"authoring_entities"`
}

// Classify returns the stored discriminator of an authoring entity.
func (s *Service) Classify(ctx context.Context, email string) (types.Discriminator, error) {
	e, err := s.AuthoringEntity(ctx, email)
	if err != nil {
		return "", err
	}
	return e.Discriminator(), nil
}

// Publisher looks up a publisher by name.
func (s *Service) Publisher(ctx context.Context, name string) (*types.Publisher, error) {
	e, err := s.lookup(ctx, types.KindPublisher, name)
	if err != nil {
		return nil, err
	}
	return e.(*types.Publisher), nil
}

// AuthoringEntity looks up an authoring entity of any variant by email.
func (s *Service) AuthoringEntity(ctx context.Context, email string) (types.AuthoringEntity, error) {
	e, err := s.lookup(ctx, types.KindAuthoringEntity, email)
	if err != nil {
		return nil, err
	}
	return e.(types.AuthoringEntity), nil
}

// WritingGroup looks up a writing group by email. Other variants are not
// found.
func (s *Service) WritingGroup(ctx context.Context, email string) (*types.WritingGroup, error) {
	e, err := s.lookup(ctx, types.KindWritingGroup, email)
	if err != nil {
		return nil, err
	}
	return e.(*types.WritingGroup), nil
}

// Book looks up a book by ISBN.
func (s *Service) Book(ctx context.Context, isbn string) (*types.Book, error) {
	e, err := s.lookup(ctx, types.KindBook, isbn)
	if err != nil {
		return nil, err
	}
	return e.(*types.Book), nil
}

func (s *Service) lookup(ctx context.Context, kind types.Kind, key string) (types.Entity, error) {
	var e types.Entity
	err := s.run(ctx, "get "+string(kind), func(tx types.Tx) error {
		var err error
		e, err = tx.QueryByKey(ctx, kind, key)
		if err != nil {
			return fmt.Errorf("%s %q: %w", kind, key, err)
		}
		return nil
	})
	return e, err
}

// BookDetails returns a book with its author and publisher. A reference
// that does not resolve is an *types.IntegrityError.
func (s *Service) BookDetails(ctx context.Context, isbn string) (*BookDetails, error) {
	var d BookDetails
	err := s.run(ctx, "book details", func(tx types.Tx) error {
		e, err := tx.QueryByKey(ctx, types.KindBook, isbn)
		if err != nil {
			return fmt.Errorf("book %q: %w", isbn, err)
		}
		d.Book = e.(*types.Book)

		a, err := tx.QueryByKey(ctx, types.KindAuthoringEntity, d.Book.AuthorEmail)
		if err != nil {
			return danglingRef(isbn, "author", d.Book.AuthorEmail, err)
		}
		d.Author = a.(types.AuthoringEntity)

		p, err := tx.QueryByKey(ctx, types.KindPublisher, d.Book.PublisherName)
		if err != nil {
			return danglingRef(isbn, "publisher", d.Book.PublisherName, err)
		}
		d.Publisher = p.(*types.Publisher)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func danglingRef(isbn, role, key string, err error) error {
	if !errors.Is(err, types.ErrNotFound) {
		return err
	}
	return &types.IntegrityError{
		Kind:   types.KindBook,
		Key:    isbn,
		Reason: fmt.Sprintf("%s %q does not exist", role, key),
	}
}

// Works returns the books credited to an authoring entity, ordered by ISBN.
func (s *Service) Works(ctx context.Context, email string) ([]*types.Book, error) {
	var out []*types.Book
	err := s.run(ctx, "list works", func(tx types.Tx) error {
		if _, err := tx.QueryByKey(ctx, types.KindAuthoringEntity, email); err != nil {
			return fmt.Errorf("authoring entity %q: %w", email, err)
		}
		books, err := tx.QueryAll(ctx, types.KindBook)
		if err != nil {
			return err
		}
		for _, e := range books {
			if b := e.(*types.Book); b.AuthorEmail == email {
				out = append(out, b)
			}
		}
		return nil
	})
	return out, err
}

// Publishers lists all publishers ordered by name.
func (s *Service) Publishers(ctx context.Context) ([]*types.Publisher, error) {
	all, err := s.list(ctx, types.KindPublisher)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Publisher, 0, len(all))
	for _, e := range all {
		out = append(out, e.(*types.Publisher))
	}
	return out, nil
}

// AuthoringEntities lists authoring entities of kind ordered by email.
// KindAuthoringEntity selects every variant.
func (s *Service) AuthoringEntities(ctx context.Context, kind types.Kind) ([]types.AuthoringEntity, error) {
	if !kind.IsAuthoring() {
		return nil, fmt.Errorf("%w: %s is not an authoring entity kind", types.ErrUnknownKind, kind)
	}
	all, err := s.list(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]types.AuthoringEntity, 0, len(all))
	for _, e := range all {
		out = append(out, e.(types.AuthoringEntity))
	}
	return out, nil
}

// Books lists all books ordered by ISBN.
func (s *Service) Books(ctx context.Context) ([]*types.Book, error) {
	all, err := s.list(ctx, types.KindBook)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Book, 0, len(all))
	for _, e := range all {
		out = append(out, e.(*types.Book))
	}
	return out, nil
}

func (s *Service) list(ctx context.Context, kind types.Kind) ([]types.Entity, error) {
	var out []types.Entity
	err := s.run(ctx, "list "+string(kind), func(tx types.Tx) error {
		var err error
		out, err = tx.QueryAll(ctx, kind)
		return err
	})
	return out, err
}

// Keys returns the primary keys of publishers, books and authoring
// entities, each list ordered by key.
func (s *Service) Keys(ctx context.Context) (*Keys, error) {
	k := &Keys{Publishers: []string{}, Books: []string{}, AuthoringEntities: []AuthorKey{}}
	err := s.run(ctx, "list keys", func(tx types.Tx) error {
		pubs, err := tx.QueryAll(ctx, types.KindPublisher)
		if err != nil {
			return err
		}
		for _, e := range pubs {
			k.Publishers = append(k.Publishers, e.Key())
		}
		books, err := tx.QueryAll(ctx, types.KindBook)
		if err != nil {
			return err
		}
		for _, e := range books {
			k.Books = append(k.Books, e.Key())
		}
		authors, err := tx.QueryAll(ctx, types.KindAuthoringEntity)
		if err != nil {
			return err
		}
		for _, e := range authors {
			k.AuthoringEntities = append(k.AuthoringEntities, AuthorKey{
				Email:   e.Key(),
				Variant: e.(types.AuthoringEntity).Discriminator(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return k, nil
}
