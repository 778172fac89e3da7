package memdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func attached(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttach(t *testing.T) {
	b := NewBackend()
	_, err := b.Begin(context.Background())
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendSQLite}), types.ErrBackendUnknown)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendMemory}), types.ErrAlreadyAttached)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())
}

func TestUniqueConstraints(t *testing.T) {
	tests := []struct {
		name string
		dup  *types.Publisher
	}{
		{name: "duplicate name", dup: &types.Publisher{Name: "Acme", Email: "b@x.com", Phone: "2"}},
		{name: "duplicate email", dup: &types.Publisher{Name: "Beta", Email: "acme@x.com", Phone: "2"}},
		{name: "duplicate phone", dup: &types.Publisher{Name: "Beta", Email: "b@x.com", Phone: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := attached(t)
			tx, err := b.Begin(ctx)
			require.NoError(t, err)
			defer tx.Rollback()

			require.NoError(t, tx.Insert(ctx, &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "1"}))
			err = tx.Insert(ctx, tt.dup)
			var cv *types.ConstraintViolation
			require.ErrorAs(t, err, &cv)
			assert.Equal(t, types.CategoryPublisher, cv.Category)
			assert.Equal(t, types.ConstraintUnique, cv.Constraint)
			assert.ErrorIs(t, err, ErrUniqueConstraint)
		})
	}
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	b := attached(t)
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.Insert(ctx, &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "1"}))
	err = tx.Insert(ctx, &types.Book{ISBN: "1", Title: "T", AuthorEmail: "ghost@x.com", PublisherName: "Acme"})
	var cv *types.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, types.CategoryBook, cv.Category)
	assert.Equal(t, types.ConstraintForeignKey, cv.Constraint)

	require.NoError(t, tx.Insert(ctx, &types.IndividualAuthor{AuthorBase: types.AuthorBase{Email: "jane@x.com", Name: "Jane"}}))
	require.NoError(t, tx.Insert(ctx, &types.Book{ISBN: "1", Title: "T", AuthorEmail: "jane@x.com", PublisherName: "Acme"}))

	err = tx.Remove(ctx, types.KindPublisher, "Acme")
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, types.ConstraintForeignKey, cv.Constraint)

	require.NoError(t, tx.Remove(ctx, types.KindBook, "1"))
	require.NoError(t, tx.Remove(ctx, types.KindPublisher, "Acme"))
	assert.ErrorIs(t, tx.Remove(ctx, types.KindPublisher, "Acme"), types.ErrNotFound)
}

func TestRollbackDiscards(t *testing.T) {
	ctx := context.Background()
	b := attached(t)

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "1"}))
	require.NoError(t, tx.Rollback())
	assert.ErrorIs(t, tx.Commit(), types.ErrTxDone)

	tx, err = b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	all, err := tx.QueryAll(ctx, types.KindPublisher)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInsertedEntityIsCopied(t *testing.T) {
	ctx := context.Background()
	b := attached(t)
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	p := &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "1"}
	require.NoError(t, tx.Insert(ctx, p))
	p.Phone = "changed"

	got, err := tx.QueryByKey(ctx, types.KindPublisher, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "1", got.(*types.Publisher).Phone)
}

func TestMembershipEdges(t *testing.T) {
	ctx := context.Background()
	b := attached(t)
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.Insert(ctx, &types.AdHocTeam{AuthorBase: types.AuthorBase{Email: "tiger@x.com", Name: "Tiger"}}))
	require.NoError(t, tx.Insert(ctx, &types.IndividualAuthor{AuthorBase: types.AuthorBase{Email: "zed@x.com", Name: "Zed"}}))
	require.NoError(t, tx.Insert(ctx, &types.IndividualAuthor{AuthorBase: types.AuthorBase{Email: "amy@x.com", Name: "Amy"}}))

	for _, email := range []string{"zed@x.com", "amy@x.com", "zed@x.com"} {
		_, err := tx.AddEdge(ctx, "tiger@x.com", email)
		require.NoError(t, err)
	}

	members, err := tx.Members(ctx, "tiger@x.com")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "amy@x.com", members[0].Email)
	assert.Equal(t, "zed@x.com", members[1].Email)

	teams, err := tx.Memberships(ctx, "zed@x.com")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "tiger@x.com", teams[0].Email)

	_, err = tx.AddEdge(ctx, "zed@x.com", "amy@x.com")
	assert.ErrorIs(t, err, types.ErrWrongVariant)
}
