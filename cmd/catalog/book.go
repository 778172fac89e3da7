package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newBookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Add, show, list and delete books",
	}

	var isbn, title, author, publisher string
	var year int
	add := &cobra.Command{
		Use:     "add",
		Short:   "Add a book",
		Example: `  catalog book add --isbn 978-0000000001 --title "Title" --year 2020 --author jane@example.com --publisher "Acme Press"`,
		Args:    cobra.NoArgs,
	}
	add.Flags().StringVar(&isbn, "isbn", "", "ISBN (unique)")
	add.Flags().StringVar(&title, "title", "", "title")
	add.Flags().IntVar(&year, "year", 0, "year published")
	add.Flags().StringVar(&author, "author", "", "email of the authoring entity")
	add.Flags().StringVar(&publisher, "publisher", "", "publisher name")
	add.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		b, err := svc.CreateBook(ctx, isbn, title, year, author, publisher)
		if err != nil {
			return err
		}
		return a.emit(add.OutOrStdout(), b, func(w io.Writer) {
			fmt.Fprintf(w, "Added book %s (%s)\n", b.Title, b.ISBN)
		})
	})

	get := &cobra.Command{
		Use:   "get <isbn>",
		Short: "Show a book with its author and publisher",
		Args:  cobra.ExactArgs(1),
	}
	get.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		d, err := svc.BookDetails(ctx, args[0])
		if err != nil {
			return err
		}
		out := struct {
			Book      *types.Book      `json:"book"`
			Author    AuthorView       `json:"author"`
			Publisher *types.Publisher `json:"publisher"`
		}{d.Book, viewOf(d.Author), d.Publisher}
		return a.emit(get.OutOrStdout(), out, func(w io.Writer) {
			fmt.Fprintf(w, "Title:     %s\nAuthor:    %s (%s)\nYear:      %d\nPublisher: %s\nISBN:      %s\n",
				d.Book.Title, d.Author.Base().Name, d.Author.Discriminator().Label(),
				d.Book.YearPublished, d.Publisher.Name, d.Book.ISBN)
		})
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
	}
	list.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		books, err := svc.Books(ctx)
		if err != nil {
			return err
		}
		return a.emit(list.OutOrStdout(), books, func(w io.Writer) {
			for _, b := range books {
				fmt.Fprintf(w, "%-17s %-40s %d\n", b.ISBN, b.Title, b.YearPublished)
			}
		})
	})

	del := &cobra.Command{
		Use:   "delete <isbn>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
	}
	del.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		b, err := svc.Book(ctx, args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteBook(ctx, args[0]); err != nil {
			return err
		}
		return a.emit(del.OutOrStdout(), b, func(w io.Writer) {
			fmt.Fprintf(w, "%s has been deleted (ISBN: %s)\n", b.Title, b.ISBN)
		})
	})

	cmd.AddCommand(add, get, list, del)
	return cmd
}
