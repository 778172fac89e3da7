package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/internal/logging"
	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "CATALOG"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyLogLevel       = "log_level"
	cfgKeyPostgresDSN    = "postgres.dsn"
	cfgKeyPostgresDriver = "postgres.driver"
)

// defaultConfig is written to config.yaml on first run.
var defaultConfig = types.Config{
	Backend:  types.BackendSQLite,
	LogLevel: logging.DefaultLevel,
}

const configHeader = "# catalog configuration\n# backend: sqlite | postgres | memory\n"

// loadConfig reads config.yaml from configDir, creating the directory and
// a default file on first run. An optional .env in configDir is loaded
// into the environment first; variables already set win. Environment
// variables prefixed with CATALOG_ override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, &systemError{fmt.Errorf("creating config dir: %w", err)}
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir), defaultConfig); err != nil {
		return nil, &systemError{err}
	}
	if err := godotenv.Load(paths.EnvFile(configDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", paths.EnvFile(configDir), err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyPostgresDriver, types.PostgresDriverPgx)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyPostgresDSN, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// effectiveConfig merges the loaded configuration with the global flags
// and resolves the data directory.
func effectiveConfig(v *viper.Viper, f rootFlags) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	dataDir, err := paths.ResolveDataDir(f.dataDir, cfg.DataDir)
	if err != nil {
		return cfg, fmt.Errorf("resolving data dir: %w", err)
	}
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// writeConfigIfMissing writes cfg to path unless the file exists.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := struct {
				ConfigDir    string `json:"config_dir" yaml:"config_dir"`
				types.Config `yaml:",inline"`
			}{a.configDir, a.config}
			if out.Postgres.DSN != "" {
				out.Postgres.DSN = "********"
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			data, err := yaml.Marshal(&out)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return &systemError{fmt.Errorf("writing config: %w", err)}
			}
			return nil
		},
	}
}
