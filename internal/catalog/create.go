package catalog

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// CreatePublisher validates and stores a publisher.
func (s *Service) CreatePublisher(ctx context.Context, name, email, phone string) (*types.Publisher, error) {
	p, err := types.NewPublisher(name, email, phone)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, "create publisher", p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateIndividualAuthor validates and stores an individual author.
func (s *Service) CreateIndividualAuthor(ctx context.Context, name, email string) (*types.IndividualAuthor, error) {
	a, err := types.NewIndividualAuthor(name, email)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, "create individual author", a); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateWritingGroup validates and stores a writing group.
func (s *Service) CreateWritingGroup(ctx context.Context, name, email, headWriter string, yearFormed int) (*types.WritingGroup, error) {
	g, err := types.NewWritingGroup(name, email, headWriter, yearFormed)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, "create writing group", g); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateAdHocTeam validates and stores an ad hoc team.
func (s *Service) CreateAdHocTeam(ctx context.Context, name, email string) (*types.AdHocTeam, error) {
	t, err := types.NewAdHocTeam(name, email)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, "create ad hoc team", t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) insert(ctx context.Context, op string, e types.Entity) error {
	return s.run(ctx, op, func(tx types.Tx) error {
		return tx.Insert(ctx, e)
	})
}

// CreateBook validates the fields, then checks that the catalog has at
// least one publisher and one authoring entity and that the named ones
// exist, and stores the book.
func (s *Service) CreateBook(ctx context.Context, isbn, title string, yearPublished int, authorEmail, publisherName string) (*types.Book, error) {
	b, err := types.NewBook(isbn, title, yearPublished, authorEmail, publisherName)
	if err != nil {
		return nil, err
	}
	err = s.run(ctx, "create book", func(tx types.Tx) error {
		if err := requireAny(ctx, tx, types.KindPublisher, types.ErrNoPublishers); err != nil {
			return err
		}
		if err := requireAny(ctx, tx, types.KindAuthoringEntity, types.ErrNoAuthors); err != nil {
			return err
		}
		if _, err := tx.QueryByKey(ctx, types.KindPublisher, publisherName); err != nil {
			return fmt.Errorf("publisher %q: %w", publisherName, err)
		}
		if _, err := tx.QueryByKey(ctx, types.KindAuthoringEntity, authorEmail); err != nil {
			return fmt.Errorf("authoring entity %q: %w", authorEmail, err)
		}
		return tx.Insert(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func requireAny(ctx context.Context, tx types.Tx, kind types.Kind, empty error) error {
	all, err := tx.QueryAll(ctx, kind)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return empty
	}
	return nil
}

// DeleteBook removes a book. Its author and publisher are untouched.
func (s *Service) DeleteBook(ctx context.Context, isbn string) error {
	return s.run(ctx, "delete book", func(tx types.Tx) error {
		if err := tx.Remove(ctx, types.KindBook, isbn); err != nil {
			return fmt.Errorf("book %q: %w", isbn, err)
		}
		return nil
	})
}
