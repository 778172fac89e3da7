package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/logging"
	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/pkg/store"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "v0.1.0-dev"

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	logFormat string
	json      bool
}

// app carries the state of one invocation: flags, the effective
// configuration, and the store opened on first use.
type app struct {
	flags     rootFlags
	configDir string
	viper     *viper.Viper
	config    types.Config
	logger    zerolog.Logger
	store     types.Store
	svc       *catalog.Service
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "catalog",
		Short:   "Manage publishers, authors and books",
		Long:    "Catalog records publishers, authoring entities (individual authors,\nwriting groups and ad hoc teams) and the books they publish.",
		Version: Version,
		// Errors are printed once by run.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: nearest .catalog, else the user config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.catalog-db)")
	pf.StringVar(&a.flags.backend, "backend", "", "store backend: sqlite, postgres or memory")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", logging.FormatText, "log format on stderr: text or json")
	pf.BoolVar(&a.flags.json, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newConfigCmd(a),
		newPublisherCmd(a),
		newAuthorCmd(a),
		newTeamCmd(a),
		newBookCmd(a),
		newKeysCmd(a),
		newShellCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

// load resolves directories, reads the configuration and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.viper = v

	cfg, err := effectiveConfig(v, a.flags)
	if err != nil {
		return err
	}
	a.config = cfg

	logger, err := logging.NewFormat(a.flags.logFormat, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// service opens the configured store on first use.
func (a *app) service() (*catalog.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.svc = catalog.New(s, catalog.WithLogger(a.logger))
	return a.svc, nil
}

func (a *app) openStore() (types.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := store.Open(a.config, a.logger)
	if err != nil {
		return nil, &systemError{fmt.Errorf("opening %s store: %w", a.config.Backend, err)}
	}
	a.store = s
	return s, nil
}

// close detaches the store if one was opened.
func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Detach()
	a.store, a.svc = nil, nil
	if err != nil {
		return &systemError{fmt.Errorf("detaching store: %w", err)}
	}
	return nil
}

// withService adapts a command body that needs the catalog service.
// Errors the user cannot fix are marked as system errors.
func (a *app) withService(fn func(ctx context.Context, svc *catalog.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := a.service()
		if err != nil {
			return err
		}
		return classify(fn(cmd.Context(), svc, args))
	}
}
