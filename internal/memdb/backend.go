// Package memdb implements the catalog store in memory on hashicorp/go-memdb.
// Contents are lost on Detach. It backs --backend memory and the shared
// store contract tests.
package memdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store over an in-memory database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *MemDB
}

// NewBackend creates a detached in-memory backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates an empty database. Returns ErrAlreadyAttached if already
// attached and ErrBackendUnknown unless config selects the memory backend.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendMemory {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
	db, err := NewMemDB(catalogSchema())
	if err != nil {
		return fmt.Errorf("creating memdb: %w", err)
	}
	b.db = db
	b.attached = true
	return nil
}

// Detach drops the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.db = nil
	b.attached = false
	return nil
}

// Begin starts a write transaction. go-memdb admits one writer at a time,
// so Begin blocks while another transaction is open.
func (b *Backend) Begin(ctx context.Context) (types.Tx, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{txn: b.db.Txn(true)}, nil
}
