package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newTeamCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage ad hoc team membership",
	}

	addMember := &cobra.Command{
		Use:   "add-member <team-email> <author-email>...",
		Short: "Add individual authors to an ad hoc team",
		Long: `Add-member puts each named individual author on the team in one
transaction. Authors already on the team are left as they are; if any
author cannot be added, none are.`,
		Args: cobra.MinimumNArgs(2),
	}
	addMember.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		n, err := svc.AddMembers(ctx, args[0], args[1:]...)
		if err != nil {
			return err
		}
		res := struct {
			Team  string `json:"team"`
			Added int    `json:"added"`
		}{args[0], n}
		return a.emit(addMember.OutOrStdout(), res, func(w io.Writer) {
			fmt.Fprintf(w, "Added %d new member(s) to %s\n", n, args[0])
		})
	})

	members := &cobra.Command{
		Use:   "members <team-email>",
		Short: "List the individual authors on a team",
		Args:  cobra.ExactArgs(1),
	}
	members.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		list, err := svc.Members(ctx, args[0])
		if err != nil {
			return err
		}
		if list == nil {
			list = []*types.IndividualAuthor{}
		}
		return a.emit(members.OutOrStdout(), list, func(w io.Writer) {
			for _, m := range list {
				fmt.Fprintf(w, "%-30s %s\n", m.Email, m.Name)
			}
		})
	})

	memberships := &cobra.Command{
		Use:   "memberships <author-email>",
		Short: "List the ad hoc teams an individual author belongs to",
		Args:  cobra.ExactArgs(1),
	}
	memberships.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		list, err := svc.Memberships(ctx, args[0])
		if err != nil {
			return err
		}
		if list == nil {
			list = []*types.AdHocTeam{}
		}
		return a.emit(memberships.OutOrStdout(), list, func(w io.Writer) {
			for _, t := range list {
				fmt.Fprintf(w, "%-30s %s\n", t.Email, t.Name)
			}
		})
	})

	cmd.AddCommand(addMember, members, memberships)
	return cmd
}
