package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// attachTemp attaches a SQLite backend in a temporary data directory.
func attachTemp(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// inTx runs fn in a transaction and commits it.
func inTx(t *testing.T, b *Backend, fn func(tx types.Tx)) {
	t.Helper()
	ctx := context.Background()
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	fn(tx)
	require.NoError(t, tx.Commit())
}

func seed(t *testing.T, b *Backend) {
	t.Helper()
	ctx := context.Background()
	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, tx.Insert(ctx, &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "555-0100"}))
		require.NoError(t, tx.Insert(ctx, &types.IndividualAuthor{AuthorBase: types.AuthorBase{Email: "jane@x.com", Name: "Jane Doe"}}))
		require.NoError(t, tx.Insert(ctx, &types.IndividualAuthor{AuthorBase: types.AuthorBase{Email: "bob@x.com", Name: "Bob Roe"}}))
		require.NoError(t, tx.Insert(ctx, &types.AdHocTeam{AuthorBase: types.AuthorBase{Email: "tiger@x.com", Name: "Tiger Team"}}))
		require.NoError(t, tx.Insert(ctx, &types.WritingGroup{
			AuthorBase: types.AuthorBase{Email: "ink@x.com", Name: "Inklings"},
			HeadWriter: "C.S. Lewis",
			YearFormed: 1933,
		}))
	})
}

func TestAttachDetach(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	_, err := b.Begin(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, b.Attach(cfg))
	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err = b.Begin(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestAttachCreatesStandardTables(t *testing.T) {
	b := attachTemp(t)
	for _, table := range types.StandardTableNames {
		var n int
		require.NoError(t, b.db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table))
		assert.Equal(t, 1, n, table)
	}
}

func TestAttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendMemory}), types.ErrBackendUnknown)
}

func TestDataSurvivesReattach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	seed(t, b)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	tx, err := b2.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	e, err := tx.QueryByKey(ctx, types.KindWritingGroup, "ink@x.com")
	require.NoError(t, err)
	g := e.(*types.WritingGroup)
	assert.Equal(t, "Inklings", g.Name)
	assert.Equal(t, "C.S. Lewis", g.HeadWriter)
	assert.Equal(t, 1933, g.YearFormed)
}

func TestInsertConstraintViolations(t *testing.T) {
	tests := []struct {
		name           string
		entity         types.Entity
		wantCategory   string
		wantConstraint string
	}{
		{
			name:           "duplicate publisher name",
			entity:         &types.Publisher{Name: "Acme", Email: "other@x.com", Phone: "555-0199"},
			wantCategory:   types.CategoryPublisher,
			wantConstraint: types.ConstraintUnique,
		},
		{
			name:           "duplicate publisher email",
			entity:         &types.Publisher{Name: "Other", Email: "acme@x.com", Phone: "555-0199"},
			wantCategory:   types.CategoryPublisher,
			wantConstraint: types.ConstraintUnique,
		},
		{
			name:           "duplicate publisher phone",
			entity:         &types.Publisher{Name: "Other", Email: "other@x.com", Phone: "555-0100"},
			wantCategory:   types.CategoryPublisher,
			wantConstraint: types.ConstraintUnique,
		},
		{
			name:           "email shared across variants",
			entity:         &types.AdHocTeam{AuthorBase: types.AuthorBase{Email: "jane@x.com", Name: "Jane Team"}},
			wantCategory:   types.CategoryAuthoringEntity,
			wantConstraint: types.ConstraintUnique,
		},
		{
			name:           "book with missing author",
			entity:         &types.Book{ISBN: "1", Title: "T", YearPublished: 2020, AuthorEmail: "ghost@x.com", PublisherName: "Acme"},
			wantCategory:   types.CategoryBook,
			wantConstraint: types.ConstraintForeignKey,
		},
		{
			name:           "book with missing publisher",
			entity:         &types.Book{ISBN: "1", Title: "T", YearPublished: 2020, AuthorEmail: "jane@x.com", PublisherName: "Nobody"},
			wantCategory:   types.CategoryBook,
			wantConstraint: types.ConstraintForeignKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := attachTemp(t)
			seed(t, b)

			tx, err := b.Begin(ctx)
			require.NoError(t, err)
			defer tx.Rollback()

			err = tx.Insert(ctx, tt.entity)
			var cv *types.ConstraintViolation
			require.True(t, errors.As(err, &cv), "expected ConstraintViolation, got %v", err)
			assert.Equal(t, tt.wantCategory, cv.Category)
			assert.Equal(t, tt.wantConstraint, cv.Constraint)
		})
	}
}

func TestRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, &types.Publisher{Name: "Acme", Email: "acme@x.com", Phone: "1"}))
	require.NoError(t, tx.Rollback())
	assert.ErrorIs(t, tx.Commit(), types.ErrTxDone)
	assert.NoError(t, tx.Rollback(), "rollback after finish is a no-op")

	inTx(t, b, func(tx types.Tx) {
		all, err := tx.QueryAll(ctx, types.KindPublisher)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestQueryByVariant(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)
	seed(t, b)

	inTx(t, b, func(tx types.Tx) {
		all, err := tx.QueryAll(ctx, types.KindAuthoringEntity)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "bob@x.com", all[0].Key(), "ordered by email")

		individuals, err := tx.QueryAll(ctx, types.KindIndividualAuthor)
		require.NoError(t, err)
		assert.Len(t, individuals, 2)

		_, err = tx.QueryByKey(ctx, types.KindWritingGroup, "jane@x.com")
		assert.ErrorIs(t, err, types.ErrNotFound, "key under another variant is not found")

		e, err := tx.QueryByKey(ctx, types.KindAuthoringEntity, "tiger@x.com")
		require.NoError(t, err)
		assert.IsType(t, &types.AdHocTeam{}, e)

		_, err = tx.QueryByKey(ctx, types.KindPublisher, "Nobody")
		assert.ErrorIs(t, err, types.ErrNotFound)

		_, err = tx.QueryAll(ctx, types.Kind("trail"))
		assert.ErrorIs(t, err, types.ErrUnknownKind)
	})
}

func TestUnknownDiscriminatorIsIntegrityError(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)
	_, err := b.db.Exec(`INSERT INTO authoring_entities (email, authoring_entity_type, name) VALUES ('odd@x.com', 'Ghostwriter', 'Odd')`)
	require.NoError(t, err)

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.QueryByKey(ctx, types.KindAuthoringEntity, "odd@x.com")
	assert.True(t, types.IsIntegrity(err), "got %v", err)

	_, err = tx.QueryAll(ctx, types.KindAuthoringEntity)
	assert.True(t, types.IsIntegrity(err), "got %v", err)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)
	seed(t, b)

	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, tx.Insert(ctx, &types.Book{ISBN: "000-0000000001", Title: "Title X", YearPublished: 2020, AuthorEmail: "jane@x.com", PublisherName: "Acme"}))
	})

	inTx(t, b, func(tx types.Tx) {
		err := tx.Remove(ctx, types.KindPublisher, "Acme")
		var cv *types.ConstraintViolation
		require.ErrorAs(t, err, &cv, "publisher is still referenced by a book")
		assert.Equal(t, types.ConstraintForeignKey, cv.Constraint)
	})

	inTx(t, b, func(tx types.Tx) {
		require.NoError(t, tx.Remove(ctx, types.KindBook, "000-0000000001"))
		assert.ErrorIs(t, tx.Remove(ctx, types.KindBook, "000-0000000001"), types.ErrNotFound)

		_, err := tx.QueryByKey(ctx, types.KindPublisher, "Acme")
		assert.NoError(t, err)
		_, err = tx.QueryByKey(ctx, types.KindIndividualAuthor, "jane@x.com")
		assert.NoError(t, err)
	})
}

func TestAddEdge(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)
	seed(t, b)

	inTx(t, b, func(tx types.Tx) {
		added, err := tx.AddEdge(ctx, "tiger@x.com", "jane@x.com")
		require.NoError(t, err)
		assert.True(t, added)

		added, err = tx.AddEdge(ctx, "tiger@x.com", "jane@x.com")
		require.NoError(t, err)
		assert.False(t, added, "second add is a no-op")

		added, err = tx.AddEdge(ctx, "tiger@x.com", "bob@x.com")
		require.NoError(t, err)
		assert.True(t, added)
	})

	inTx(t, b, func(tx types.Tx) {
		members, err := tx.Members(ctx, "tiger@x.com")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "bob@x.com", members[0].Email)
		assert.Equal(t, "jane@x.com", members[1].Email)

		teams, err := tx.Memberships(ctx, "jane@x.com")
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, "tiger@x.com", teams[0].Email)
	})
}

func TestAddEdgeRequiresVariants(t *testing.T) {
	ctx := context.Background()
	b := attachTemp(t)
	seed(t, b)

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.AddEdge(ctx, "ink@x.com", "jane@x.com")
	assert.ErrorIs(t, err, types.ErrWrongVariant, "writing group cannot own members")

	_, err = tx.AddEdge(ctx, "tiger@x.com", "ink@x.com")
	assert.ErrorIs(t, err, types.ErrWrongVariant, "only individual authors can be members")

	_, err = tx.AddEdge(ctx, "ghost@x.com", "jane@x.com")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestConstraintOf(t *testing.T) {
	_, ok := constraintOf(errors.New("UNIQUE constraint failed: publishers.name"))
	assert.False(t, ok, "messages are never parsed")
	assert.Nil(t, classify(types.CategoryBook, nil))
}
