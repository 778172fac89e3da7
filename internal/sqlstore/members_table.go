package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// membershipRow is one edge of the ad hoc team membership relation.
type membershipRow struct {
	ID          string `db:"membership_id"`
	TeamEmail   string `db:"team_email"`
	AuthorEmail string `db:"author_email"`
	CreatedAt   string `db:"created_at"`
}

// AddEdge writes the (team, author) edge unless it already exists. Both
// ends must exist with the right variant: ErrNotFound when either is
// missing, ErrWrongVariant when the team is not an ad hoc team or the
// author is not an individual author.
func (t *sqlTx) AddEdge(ctx context.Context, teamEmail, authorEmail string) (bool, error) {
	if t.done {
		return false, types.ErrTxDone
	}
	if err := t.requireVariant(ctx, teamEmail, types.DiscriminatorAdHocTeam); err != nil {
		return false, err
	}
	if err := t.requireVariant(ctx, authorEmail, types.DiscriminatorIndividualAuthor); err != nil {
		return false, err
	}

	var existing []string
	ds := t.dialect.From(types.TeamMembersTable).
		Select("membership_id").
		Where(goqu.Ex{"team_email": teamEmail, "author_email": authorEmail})
	if err := t.selectAll(ctx, &existing, ds); err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("generating UUID v7: %w", err)
	}
	row := membershipRow{
		ID:          id.String(),
		TeamEmail:   teamEmail,
		AuthorEmail: authorEmail,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := t.insert(ctx, types.CategoryTeamMembership, types.TeamMembersTable, row); err != nil {
		return false, err
	}
	return true, nil
}

func (t *sqlTx) requireVariant(ctx context.Context, email string, want types.Discriminator) error {
	e, err := t.getAuthoring(ctx, email)
	if err != nil {
		return err
	}
	if e.Discriminator() != want {
		return fmt.Errorf("%w: %s is a %s, not a %s",
			types.ErrWrongVariant, email, e.Discriminator().Label(), want.Label())
	}
	return nil
}

// Members returns the individual authors on a team, ordered by email.
func (t *sqlTx) Members(ctx context.Context, teamEmail string) ([]*types.IndividualAuthor, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	rows, err := t.edgeEnds(ctx, "author_email", "team_email", teamEmail)
	if err != nil {
		return nil, fmt.Errorf("listing members of %q: %w", teamEmail, err)
	}
	out := make([]*types.IndividualAuthor, 0, len(rows))
	for _, r := range rows {
		e, err := hydrateAuthoring(r)
		if err != nil {
			return nil, err
		}
		a, ok := e.(*types.IndividualAuthor)
		if !ok {
			return nil, &types.IntegrityError{
				Kind:   types.KindAdHocTeam,
				Key:    teamEmail,
				Reason: fmt.Sprintf("member %s is a %s", r.Email, e.Discriminator().Label()),
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// Memberships returns the ad hoc teams an author belongs to, ordered by
// email. It reads the same edges as Members.
func (t *sqlTx) Memberships(ctx context.Context, authorEmail string) ([]*types.AdHocTeam, error) {
	if t.done {
		return nil, types.ErrTxDone
	}
	rows, err := t.edgeEnds(ctx, "team_email", "author_email", authorEmail)
	if err != nil {
		return nil, fmt.Errorf("listing memberships of %q: %w", authorEmail, err)
	}
	out := make([]*types.AdHocTeam, 0, len(rows))
	for _, r := range rows {
		e, err := hydrateAuthoring(r)
		if err != nil {
			return nil, err
		}
		team, ok := e.(*types.AdHocTeam)
		if !ok {
			return nil, &types.IntegrityError{
				Kind:   types.KindIndividualAuthor,
				Key:    authorEmail,
				Reason: fmt.Sprintf("team %s is a %s", r.Email, e.Discriminator().Label()),
			}
		}
		out = append(out, team)
	}
	return out, nil
}

// edgeEnds joins the membership table to the authoring entity table and
// returns the entities at the `want` end of every edge whose `by` end is key.
func (t *sqlTx) edgeEnds(ctx context.Context, want, by, key string) ([]authoringRow, error) {
	ds := t.dialect.From(goqu.T(types.AuthoringEntitiesTable).As("a")).
		Join(
			goqu.T(types.TeamMembersTable).As("m"),
			goqu.On(goqu.I("m."+want).Eq(goqu.I("a.email"))),
		).
		Select(
			goqu.I("a.email"),
			goqu.I("a.authoring_entity_type"),
			goqu.I("a.name"),
			goqu.I("a.head_writer"),
			goqu.I("a.year_formed"),
		).
		Where(goqu.I("m." + by).Eq(key)).
		Order(goqu.I("a.email").Asc())
	var rows []authoringRow
	if err := t.selectAll(ctx, &rows, ds); err != nil {
		return nil, err
	}
	return rows, nil
}
