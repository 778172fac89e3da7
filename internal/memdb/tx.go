package memdb

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var _ types.Tx = (*memTx)(nil)

type memTx struct {
	txn  *Txn
	done bool
}

// Insert stores a copy of e so later changes by the caller are not visible.
func (t *memTx) Insert(_ context.Context, e types.Entity) error {
	if t.done {
		return types.ErrTxDone
	}
	switch v := e.(type) {
	case *types.Publisher:
		cp := *v
		return t.txn.Insert(types.PublishersTable, &cp)
	case *types.Book:
		cp := *v
		return t.txn.Insert(types.BooksTable, &cp)
	case types.AuthoringEntity:
		rec := types.RecordOf(v)
		return t.txn.Insert(types.AuthoringEntitiesTable, &rec)
	default:
		return fmt.Errorf("%w: %T", types.ErrInvalidData, e)
	}
}

func (t *memTx) Remove(ctx context.Context, kind types.Kind, key string) error {
	if t.done {
		return types.ErrTxDone
	}
	table, err := kind.Table()
	if err != nil {
		return err
	}
	raw, err := t.txn.First(table, PK, key)
	if err != nil {
		return fmt.Errorf("looking up %s %q: %w", kind, key, err)
	}
	if raw == nil {
		return types.ErrNotFound
	}
	if d, ok := kind.Discriminator(); ok && raw.(*types.AuthoringRecord).Type != string(d) {
		return types.ErrNotFound
	}
	return t.txn.Delete(table, raw)
}

func (t *memTx) QueryAll(_ context.Context, kind types.Kind) ([]types.Entity, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	table, err := kind.Table()
	if err != nil {
		return nil, err
	}
	index, args := PK, []any{}
	if d, ok := kind.Discriminator(); ok {
		index, args = idxType, []any{string(d)}
	}
	it, err := t.txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	var out []types.Entity
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e, err := hydrate(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b types.Entity) int { return strings.Compare(a.Key(), b.Key()) })
	return out, nil
}

func (t *memTx) QueryByKey(_ context.Context, kind types.Kind, key string) (types.Entity, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	table, err := kind.Table()
	if err != nil {
		return nil, err
	}
	raw, err := t.txn.First(table, PK, key)
	if err != nil {
		return nil, fmt.Errorf("getting %s %q: %w", kind, key, err)
	}
	if raw == nil {
		return nil, types.ErrNotFound
	}
	e, err := hydrate(raw)
	if err != nil {
		return nil, err
	}
	if d, ok := kind.Discriminator(); ok && e.(types.AuthoringEntity).Discriminator() != d {
		return nil, types.ErrNotFound
	}
	return e, nil
}

func (t *memTx) AddEdge(_ context.Context, teamEmail, authorEmail string) (bool, error) {
	if t.done {
		return false, types.ErrTxDone
	}
	if err := t.requireVariant(teamEmail, types.DiscriminatorAdHocTeam); err != nil {
		return false, err
	}
	if err := t.requireVariant(authorEmail, types.DiscriminatorIndividualAuthor); err != nil {
		return false, err
	}
	raw, err := t.txn.First(types.TeamMembersTable, idxEdge, teamEmail, authorEmail)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	if raw != nil {
		return false, nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("generating UUID v7: %w", err)
	}
	m := &types.Membership{
		ID:          id.String(),
		TeamEmail:   teamEmail,
		AuthorEmail: authorEmail,
		CreatedAt:   time.Now().UTC(),
	}
	if err := t.txn.Insert(types.TeamMembersTable, m); err != nil {
		return false, err
	}
	return true, nil
}

func (t *memTx) requireVariant(email string, want types.Discriminator) error {
	e, err := t.authoring(email)
	if err != nil {
		return err
	}
	if e.Discriminator() != want {
		return fmt.Errorf("%w: %s is a %s, not a %s",
			types.ErrWrongVariant, email, e.Discriminator().Label(), want.Label())
	}
	return nil
}

func (t *memTx) Members(_ context.Context, teamEmail string) ([]*types.IndividualAuthor, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	ends, err := t.edgeEnds(idxTeam, teamEmail, func(m *types.Membership) string { return m.AuthorEmail })
	if err != nil {
		return nil, err
	}
	out := make([]*types.IndividualAuthor, 0, len(ends))
	for _, e := range ends {
		a, ok := e.(*types.IndividualAuthor)
		if !ok {
			return nil, &types.IntegrityError{
				Kind:   types.KindAdHocTeam,
				Key:    teamEmail,
				Reason: fmt.Sprintf("member %s is a %s", e.Key(), e.Discriminator().Label()),
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (t *memTx) Memberships(_ context.Context, authorEmail string) ([]*types.AdHocTeam, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	ends, err := t.edgeEnds(idxAuthor, authorEmail, func(m *types.Membership) string { return m.TeamEmail })
	if err != nil {
		return nil, err
	}
	out := make([]*types.AdHocTeam, 0, len(ends))
	for _, e := range ends {
		team, ok := e.(*types.AdHocTeam)
		if !ok {
			return nil, &types.IntegrityError{
				Kind:   types.KindIndividualAuthor,
				Key:    authorEmail,
				Reason: fmt.Sprintf("team %s is a %s", e.Key(), e.Discriminator().Label()),
			}
		}
		out = append(out, team)
	}
	return out, nil
}

// edgeEnds resolves the far end of every membership edge found under
// index=key, sorted by email.
func (t *memTx) edgeEnds(index, key string, far func(*types.Membership) string) ([]types.AuthoringEntity, error) {
	it, err := t.txn.Get(types.TeamMembersTable, index, key)
	if err != nil {
		return nil, fmt.Errorf("listing memberships of %q: %w", key, err)
	}
	var out []types.AuthoringEntity
	for raw := it.Next(); raw != nil; raw = it.Next() {
		email := far(raw.(*types.Membership))
		e, err := t.authoring(email)
		if err != nil {
			if err == types.ErrNotFound {
				return nil, &types.IntegrityError{
					Kind:   types.KindAuthoringEntity,
					Key:    email,
					Reason: "membership references a missing authoring entity",
				}
			}
			return nil, err
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b types.AuthoringEntity) int { return strings.Compare(a.Key(), b.Key()) })
	return out, nil
}

func (t *memTx) authoring(email string) (types.AuthoringEntity, error) {
	raw, err := t.txn.First(types.AuthoringEntitiesTable, PK, email)
	if err != nil {
		return nil, fmt.Errorf("getting authoring entity %q: %w", email, err)
	}
	if raw == nil {
		return nil, types.ErrNotFound
	}
	return raw.(*types.AuthoringRecord).Entity()
}

func (t *memTx) Commit() error {
	if t.done {
		return types.ErrTxDone
	}
	t.done = true
	t.txn.Commit()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.txn.Abort()
	return nil
}

// hydrate copies a stored object back into an entity.
func hydrate(raw any) (types.Entity, error) {
	switch v := raw.(type) {
	case *types.Publisher:
		cp := *v
		return &cp, nil
	case *types.Book:
		cp := *v
		return &cp, nil
	case *types.AuthoringRecord:
		return v.Entity()
	default:
		return nil, fmt.Errorf("%w: %T", types.ErrInvalidData, raw)
	}
}
