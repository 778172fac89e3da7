package catalog

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// AddMember puts an individual author on an ad hoc team. It reports
// whether a new edge was written; adding an existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, teamEmail, authorEmail string) (bool, error) {
	var added bool
	err := s.run(ctx, "add team member", func(tx types.Tx) error {
		var err error
		added, err = tx.AddEdge(ctx, teamEmail, authorEmail)
		return err
	})
	return added, err
}

// AddMembers adds several authors to a team in one transaction and
// returns how many edges were new. Any failure leaves the team unchanged.
func (s *Service) AddMembers(ctx context.Context, teamEmail string, authorEmails ...string) (int, error) {
	var n int
	err := s.run(ctx, "add team members", func(tx types.Tx) error {
		n = 0
		for _, email := range authorEmails {
			added, err := tx.AddEdge(ctx, teamEmail, email)
			if err != nil {
				return fmt.Errorf("member %q: %w", email, err)
			}
			if added {
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Members returns the individual authors on a team, ordered by email.
func (s *Service) Members(ctx context.Context, teamEmail string) ([]*types.IndividualAuthor, error) {
	var out []*types.IndividualAuthor
	err := s.run(ctx, "list team members", func(tx types.Tx) error {
		if err := requireVariant(ctx, tx, teamEmail, types.DiscriminatorAdHocTeam); err != nil {
			return err
		}
		var err error
		out, err = tx.Members(ctx, teamEmail)
		return err
	})
	return out, err
}

// Memberships returns the ad hoc teams an individual author belongs to,
// ordered by email.
func (s *Service) Memberships(ctx context.Context, authorEmail string) ([]*types.AdHocTeam, error) {
	var out []*types.AdHocTeam
	err := s.run(ctx, "list memberships", func(tx types.Tx) error {
		if err := requireVariant(ctx, tx, authorEmail, types.DiscriminatorIndividualAuthor); err != nil {
			return err
		}
		var err error
		out, err = tx.Memberships(ctx, authorEmail)
		return err
	})
	return out, err
}

// requireVariant returns ErrNotFound if email is not stored and
// ErrWrongVariant if it is stored under another variant.
func requireVariant(ctx context.Context, tx types.Tx, email string, want types.Discriminator) error {
	e, err := tx.QueryByKey(ctx, types.KindAuthoringEntity, email)
	if err != nil {
		return fmt.Errorf("authoring entity %q: %w", email, err)
	}
	got := e.(types.AuthoringEntity).Discriminator()
	if got != want {
		return fmt.Errorf("%w: %s is a %s, not a %s", types.ErrWrongVariant, email, got.Label(), want.Label())
	}
	return nil
}
