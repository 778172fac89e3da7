package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newPublisherCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publisher",
		Short: "Add, show and list publishers",
	}

	var name, email, phone string
	add := &cobra.Command{
		Use:     "add",
		Short:   "Add a publisher",
		Example: `  catalog publisher add --name "Acme Press" --email acme@example.com --phone 555-0100`,
		Args:    cobra.NoArgs,
	}
	add.Flags().StringVar(&name, "name", "", "publisher name (unique)")
	add.Flags().StringVar(&email, "email", "", "publisher email (unique)")
	add.Flags().StringVar(&phone, "phone", "", "publisher phone (unique)")
	add.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		p, err := svc.CreatePublisher(ctx, name, email, phone)
		if err != nil {
			return err
		}
		return a.emit(add.OutOrStdout(), p, func(w io.Writer) {
			fmt.Fprintf(w, "Added publisher %s\n", p.Name)
		})
	})

	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a publisher",
		Args:  cobra.ExactArgs(1),
	}
	get.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		p, err := svc.Publisher(ctx, args[0])
		if err != nil {
			return err
		}
		return a.emit(get.OutOrStdout(), p, func(w io.Writer) { printPublisher(w, p) })
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List publishers",
		Args:  cobra.NoArgs,
	}
	list.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		pubs, err := svc.Publishers(ctx)
		if err != nil {
			return err
		}
		return a.emit(list.OutOrStdout(), pubs, func(w io.Writer) {
			for _, p := range pubs {
				fmt.Fprintf(w, "%-30s %-30s %s\n", p.Name, p.Email, p.Phone)
			}
		})
	})

	cmd.AddCommand(add, get, list)
	return cmd
}

func printPublisher(w io.Writer, p *types.Publisher) {
	fmt.Fprintf(w, "Name:  %s\nEmail: %s\nPhone: %s\n", p.Name, p.Email, p.Phone)
}
