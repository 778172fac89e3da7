package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/snapshot"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a directory of JSONL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			c, err := snapshot.Export(cmd.Context(), s, dir, snapshot.WithLogger(a.logger))
			if err != nil {
				return classify(err)
			}
			return a.emit(cmd.OutOrStdout(), c, func(w io.Writer) {
				fmt.Fprintf(w, "Exported %d publishers, %d authoring entities, %d books, %d team members to %s\n",
					c.Publishers, c.AuthoringEntities, c.Books, c.Members, dir)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "catalog-snapshot", "snapshot directory")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSONL snapshot into the catalog",
		Long: `Import adds every record of the snapshot in one transaction. If any
record conflicts with the catalog or with another record, nothing is
imported. Malformed lines are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			c, err := snapshot.Import(cmd.Context(), s, dir, snapshot.WithLogger(a.logger))
			if err != nil {
				return classify(err)
			}
			return a.emit(cmd.OutOrStdout(), c, func(w io.Writer) {
				fmt.Fprintf(w, "Imported %d publishers, %d authoring entities, %d books, %d team members",
					c.Publishers, c.AuthoringEntities, c.Books, c.Members)
				if c.Skipped > 0 {
					fmt.Fprintf(w, " (%d malformed lines skipped)", c.Skipped)
				}
				fmt.Fprintln(w)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "catalog-snapshot", "snapshot directory")
	return cmd
}
