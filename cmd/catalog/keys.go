package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/shell"
)

func newKeysCmd(a *app) *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "List the primary keys of publishers, books and authoring entities",
		Args:  cobra.NoArgs,
	}
	keys.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		k, err := svc.Keys(ctx)
		if err != nil {
			return err
		}
		return a.emit(keys.OutOrStdout(), k, func(w io.Writer) {
			fmt.Fprintln(w, "Publishers:")
			for _, p := range k.Publishers {
				fmt.Fprintf(w, "  %s\n", p)
			}
			fmt.Fprintln(w, "Books:")
			for _, b := range k.Books {
				fmt.Fprintf(w, "  %s\n", b)
			}
			fmt.Fprintln(w, "Authoring entities:")
			for _, e := range k.AuthoringEntities {
				fmt.Fprintf(w, "  %-30s %s\n", e.Email, e.Variant.Label())
			}
		})
	})
	return keys
}

func newShellCmd(a *app) *cobra.Command {
	sh := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
	}
	sh.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		return shell.New(svc, sh.InOrStdin(), sh.OutOrStdout(), shell.WithLogger(a.logger)).Run(ctx)
	})
	return sh
}
