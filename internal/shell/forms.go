package shell

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func (s *Shell) addMenu(ctx context.Context) error {
	i, err := s.menu("ADD MENU",
		"Add an individual author",
		"Add a writing group",
		"Add an ad hoc team",
		"Add individual authors to an ad hoc team",
		"Add a publisher",
		"Add a book",
	)
	if err != nil {
		return err
	}
	switch i {
	case 0:
		return s.retry(func() error {
			name, email, err := s.authorBase()
			if err != nil {
				return err
			}
			_, err = s.svc.CreateIndividualAuthor(ctx, name, email)
			return err
		})
	case 1:
		return s.retry(func() error {
			name, email, err := s.authorBase()
			if err != nil {
				return err
			}
			head, err := s.readLine("Head writer: ")
			if err != nil {
				return err
			}
			year, err := s.readInt("Year formed: ")
			if err != nil {
				return err
			}
			_, err = s.svc.CreateWritingGroup(ctx, name, email, head, year)
			return err
		})
	case 2:
		return s.retry(func() error {
			name, email, err := s.authorBase()
			if err != nil {
				return err
			}
			_, err = s.svc.CreateAdHocTeam(ctx, name, email)
			return err
		})
	case 3:
		return s.addMembers(ctx)
	case 4:
		return s.retry(func() error {
			name, err := s.readLine("Publisher name: ")
			if err != nil {
				return err
			}
			email, err := s.readLine("Publisher email: ")
			if err != nil {
				return err
			}
			phone, err := s.readLine("Publisher phone: ")
			if err != nil {
				return err
			}
			_, err = s.svc.CreatePublisher(ctx, name, email, phone)
			return err
		})
	default:
		return s.addBook(ctx)
	}
}

func (s *Shell) authorBase() (name, email string, err error) {
	if name, err = s.readLine("Name: "); err != nil {
		return "", "", err
	}
	if email, err = s.readLine("Email: "); err != nil {
		return "", "", err
	}
	return name, email, nil
}

func (s *Shell) addMembers(ctx context.Context) error {
	if err := s.showAuthors(ctx, types.KindAdHocTeam, "AVAILABLE AD HOC TEAMS"); err != nil {
		return err
	}
	team, err := s.readLine("Team email: ")
	if err != nil {
		return err
	}
	if err := s.showAuthors(ctx, types.KindIndividualAuthor, "AVAILABLE INDIVIDUAL AUTHORS"); err != nil {
		return err
	}
	line, err := s.readLine("Author emails (space separated): ")
	if err != nil {
		return err
	}
	n, err := s.svc.AddMembers(ctx, team, strings.Fields(line)...)
	if err != nil {
		return err
	}
	s.printf("%d new member(s) added to %s.\n", n, team)
	return nil
}

func (s *Shell) addBook(ctx context.Context) error {
	keys, err := s.svc.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys.Publishers) == 0 {
		return types.ErrNoPublishers
	}
	if len(keys.AuthoringEntities) == 0 {
		return types.ErrNoAuthors
	}
	return s.retry(func() error {
		isbn, err := s.readLine("ISBN: ")
		if err != nil {
			return err
		}
		title, err := s.readLine("Title: ")
		if err != nil {
			return err
		}
		year, err := s.readInt("Year published: ")
		if err != nil {
			return err
		}
		if err := s.showAuthors(ctx, types.KindAuthoringEntity, "AVAILABLE AUTHORS"); err != nil {
			return err
		}
		author, err := s.readLine("Author email: ")
		if err != nil {
			return err
		}
		s.printf("\n******** AVAILABLE PUBLISHERS ********\n")
		for _, p := range keys.Publishers {
			s.printf("  %s\n", p)
		}
		publisher, err := s.readLine("Publisher name: ")
		if err != nil {
			return err
		}
		_, err = s.svc.CreateBook(ctx, isbn, title, year, author, publisher)
		return err
	})
}

func (s *Shell) showAuthors(ctx context.Context, kind types.Kind, title string) error {
	list, err := s.svc.AuthoringEntities(ctx, kind)
	if err != nil {
		return err
	}
	s.printf("\n******** %s ********\n", title)
	for _, a := range list {
		s.printf("  %-30s %s (%s)\n", a.Key(), a.Base().Name, a.Discriminator().Label())
	}
	return nil
}

func (s *Shell) infoMenu(ctx context.Context) error {
	i, err := s.menu("INFO MENU",
		"Publisher information",
		"Book information",
		"Writing group information",
		"Ad hoc team members",
	)
	if err != nil {
		return err
	}
	switch i {
	case 0:
		name, err := s.readLine("Publisher name: ")
		if err != nil {
			return err
		}
		p, err := s.svc.Publisher(ctx, name)
		if err != nil {
			return err
		}
		s.printf("\n******** PUBLISHER INFO ********\n")
		s.printf("Name:  %s\nEmail: %s\nPhone: %s\n", p.Name, p.Email, p.Phone)
	case 1:
		isbn, err := s.readLine("ISBN: ")
		if err != nil {
			return err
		}
		d, err := s.svc.BookDetails(ctx, isbn)
		if err != nil {
			return err
		}
		s.printf("\n******** BOOK INFO ********\n")
		s.printf("Title:     %s\nAuthor:    %s (%s)\nYear:      %d\nPublisher: %s\nISBN:      %s\n",
			d.Book.Title, d.Author.Base().Name, d.Author.Discriminator().Label(),
			d.Book.YearPublished, d.Publisher.Name, d.Book.ISBN)
	case 2:
		email, err := s.readLine("Writing group email: ")
		if err != nil {
			return err
		}
		g, err := s.svc.WritingGroup(ctx, email)
		if err != nil {
			return err
		}
		s.printf("\n******** WRITING GROUP INFO ********\n")
		s.printf("Name:        %s\nEmail:       %s\nHead writer: %s\nYear formed: %d\n",
			g.Name, g.Email, g.HeadWriter, g.YearFormed)
	default:
		email, err := s.readLine("Team email: ")
		if err != nil {
			return err
		}
		members, err := s.svc.Members(ctx, email)
		if err != nil {
			return err
		}
		s.printf("\n******** TEAM MEMBERS ********\n")
		for _, m := range members {
			s.printf("  %-30s %s\n", m.Email, m.Name)
		}
	}
	return nil
}

func (s *Shell) deleteBook(ctx context.Context) error {
	books, err := s.svc.Books(ctx)
	if err != nil {
		return err
	}
	s.printf("\n******** AVAILABLE BOOKS ********\n")
	for _, b := range books {
		s.printf("  %-17s %s\n", b.ISBN, b.Title)
	}
	isbn, err := s.readLine("ISBN to delete: ")
	if err != nil {
		return err
	}
	b, err := s.svc.Book(ctx, isbn)
	if err != nil {
		return err
	}
	if err := s.svc.DeleteBook(ctx, isbn); err != nil {
		return err
	}
	s.printf("%s has been deleted (ISBN: %s)\n", b.Title, b.ISBN)
	return nil
}

func (s *Shell) listKeys(ctx context.Context) error {
	keys, err := s.svc.Keys(ctx)
	if err != nil {
		return err
	}
	s.printf("\n******** PUBLISHERS ********\n")
	for _, k := range keys.Publishers {
		s.printf("  %s\n", k)
	}
	s.printf("\n******** BOOKS ********\n")
	for _, k := range keys.Books {
		s.printf("  %s\n", k)
	}
	s.printf("\n******** AUTHORING ENTITIES ********\n")
	for _, k := range keys.AuthoringEntities {
		s.printf("  %-30s %s\n", k.Email, k.Variant.Label())
	}
	return nil
}
