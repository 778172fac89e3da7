// Package sqlstore implements the catalog store over a relational database.
// SQLite (modernc.org/sqlite) is the default embedded engine; PostgreSQL is
// reachable through the pgx stdlib driver or lib/pq. Statements are built
// with goqu and rows are scanned with sqlx.
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// DatabaseFile is the SQLite file created inside Config.DataDir.
const DatabaseFile = "catalog.db"

const (
	driverSQLite   = "sqlite"
	dialectSQLite  = "sqlite3"
	dialectPostgre = "postgres"
)

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store over database/sql.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB
	dialect  goqu.DialectWrapper
	logger   zerolog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for schema and connection events.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// NewBackend creates a new SQL backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the database described by config and creates the schema if
// it does not exist. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	var (
		db  *sqlx.DB
		err error
	)
	switch config.Backend {
	case types.BackendSQLite:
		db, err = openSQLite(config.DataDir)
		b.dialect = goqu.Dialect(dialectSQLite)
	case types.BackendPostgres:
		db, err = sqlx.Open(config.Postgres.DriverName(), config.Postgres.DSN)
		b.dialect = goqu.Dialect(dialectPostgre)
	default:
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
	if err != nil {
		return fmt.Errorf("opening %s database: %w", config.Backend, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug().Str("backend", config.Backend).Msg("store attached")
	return nil
}

func openSQLite(dataDir string) (*sqlx.DB, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	dsn := "file:" + filepath.Join(dataDir, DatabaseFile) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open(driverSQLite, dsn)
	if err != nil {
		return nil, err
	}
	// One writer at a time; the pragma applies per connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Detach closes the database connection. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	b.logger.Debug().Msg("store detached")
	return nil
}

// Begin starts a transaction.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Begin(ctx context.Context) (types.Tx, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &sqlTx{tx: tx, dialect: b.dialect}, nil
}
