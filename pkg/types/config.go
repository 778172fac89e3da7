package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend  string         `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir  string         `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	LogLevel string         `json:"log_level,omitempty" yaml:"log_level,omitempty" mapstructure:"log_level"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
}

// PostgresConfig holds connection parameters for the postgres backend.
type PostgresConfig struct {
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty" mapstructure:"driver"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// database/sql driver names usable with the postgres backend.
const (
	PostgresDriverPgx = "pgx"
	PostgresDriverPq  = "postgres"
)

// Config validation errors.
var (
	ErrBackendEmpty          = errors.New("backend must not be empty")
	ErrBackendUnknown        = errors.New("unknown backend")
	ErrPostgresDSNEmpty      = errors.New("postgres backend requires postgres.dsn")
	ErrPostgresDriverUnknown = errors.New("unknown postgres driver")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
	BackendMemory:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend != BackendPostgres {
		return nil
	}
	if c.Postgres.DSN == "" {
		return ErrPostgresDSNEmpty
	}
	switch c.Postgres.DriverName() {
	case PostgresDriverPgx, PostgresDriverPq:
		return nil
	default:
		return ErrPostgresDriverUnknown
	}
}

// DriverName returns the configured driver, defaulting to pgx.
func (p PostgresConfig) DriverName() string {
	if p.Driver == "" {
		return PostgresDriverPgx
	}
	return p.Driver
}
