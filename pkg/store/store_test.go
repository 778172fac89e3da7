package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/internal/memdb"
	"github.com/mesh-intelligence/catalog/internal/sqlstore"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestNew(t *testing.T) {
	s, err := New(types.Config{Backend: types.BackendSQLite}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &sqlstore.Backend{}, s)

	s, err = New(types.Config{Backend: types.BackendPostgres}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &sqlstore.Backend{}, s)

	s, err = New(types.Config{Backend: types.BackendMemory}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memdb.Backend{}, s)

	_, err = New(types.Config{}, zerolog.Nop())
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = New(types.Config{Backend: "oracle"}, zerolog.Nop())
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestOpen(t *testing.T) {
	s, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, s.Detach())
}
