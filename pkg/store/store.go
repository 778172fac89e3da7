// Package store provides the public factory for catalog store backends
// while keeping the implementations internal.
package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/catalog/internal/memdb"
	"github.com/mesh-intelligence/catalog/internal/sqlstore"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// New returns a detached store for the backend named in config.
// Call Attach with the same Config to open it.
//
// Example:
//
//	s, err := store.New(cfg, logger)
//	if err != nil { ... }
//	if err := s.Attach(cfg); err != nil { ... }
//	defer s.Detach()
func New(config types.Config, logger zerolog.Logger) (types.Store, error) {
	switch config.Backend {
	case types.BackendSQLite, types.BackendPostgres:
		return sqlstore.NewBackend(sqlstore.WithLogger(logger)), nil
	case types.BackendMemory:
		return memdb.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
}

// Open creates the store for config and attaches it.
func Open(config types.Config, logger zerolog.Logger) (types.Store, error) {
	s, err := New(config, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(config); err != nil {
		return nil, err
	}
	return s, nil
}
