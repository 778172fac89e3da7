package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/paths"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the catalog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "catalog", Version)
		},
	}
}

// initResult is the --json output of init.
type initResult struct {
	ConfigFile string `json:"config_file"`
	DataDir    string `json:"data_dir"`
	Backend    string `json:"backend"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and the catalog schema",
		Long: `Init writes a default config.yaml if none exists, creates the data
directory, and creates the catalog tables in the configured backend.
Running it again is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Attaching creates the schema.
			if _, err := a.openStore(); err != nil {
				return err
			}
			res := initResult{
				ConfigFile: paths.ConfigFile(a.configDir),
				DataDir:    a.config.DataDir,
				Backend:    a.config.Backend,
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "Catalog initialized (%s backend)\n", res.Backend)
				fmt.Fprintf(w, "  config: %s\n  data:   %s\n", res.ConfigFile, res.DataDir)
			})
		},
	}
}
