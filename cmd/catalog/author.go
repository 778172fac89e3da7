package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newAuthorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "author",
		Aliases: []string{"authors"},
		Short:   "Add, show and list authoring entities",
	}
	cmd.AddCommand(newAuthorAddCmd(a), newAuthorGetCmd(a), newAuthorListCmd(a))
	return cmd
}

func newAuthorAddCmd(a *app) *cobra.Command {
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an individual author, writing group or ad hoc team",
	}

	var name, email, headWriter string
	var year int

	individual := &cobra.Command{Use: "individual", Short: "Add an individual author", Args: cobra.NoArgs}
	individual.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		e, err := svc.CreateIndividualAuthor(ctx, name, email)
		if err != nil {
			return err
		}
		return a.emitAdded(individual.OutOrStdout(), e)
	})

	group := &cobra.Command{Use: "group", Short: "Add a writing group", Args: cobra.NoArgs}
	group.Flags().StringVar(&headWriter, "head-writer", "", "head writer of the group")
	group.Flags().IntVar(&year, "year", 0, "year the group was formed")
	group.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		e, err := svc.CreateWritingGroup(ctx, name, email, headWriter, year)
		if err != nil {
			return err
		}
		return a.emitAdded(group.OutOrStdout(), e)
	})

	team := &cobra.Command{Use: "team", Short: "Add an ad hoc team", Args: cobra.NoArgs}
	team.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		e, err := svc.CreateAdHocTeam(ctx, name, email)
		if err != nil {
			return err
		}
		return a.emitAdded(team.OutOrStdout(), e)
	})

	for _, c := range []*cobra.Command{individual, group, team} {
		c.Flags().StringVar(&name, "name", "", "name")
		c.Flags().StringVar(&email, "email", "", "email (unique across all authoring entities)")
		add.AddCommand(c)
	}
	return add
}

// AuthorView is the --json shape of an authoring entity.
type AuthorView struct {
	types.AuthoringRecord
	Label string `json:"label"`
}

func viewOf(e types.AuthoringEntity) AuthorView {
	return AuthorView{AuthoringRecord: types.RecordOf(e), Label: e.Discriminator().Label()}
}

func (a *app) emitAdded(w io.Writer, e types.AuthoringEntity) error {
	return a.emit(w, viewOf(e), func(w io.Writer) {
		fmt.Fprintf(w, "Added %s %s <%s>\n", e.Discriminator().Label(), e.Base().Name, e.Key())
	})
}

// authorDetails is the output of author get.
type authorDetails struct {
	AuthorView
	Works       []*types.Book             `json:"works"`
	Members     []*types.IndividualAuthor `json:"members,omitempty"`
	Memberships []*types.AdHocTeam        `json:"memberships,omitempty"`
}

func newAuthorGetCmd(a *app) *cobra.Command {
	get := &cobra.Command{
		Use:   "get <email>",
		Short: "Show an authoring entity with its variant, works and team links",
		Args:  cobra.ExactArgs(1),
	}
	get.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		e, err := svc.AuthoringEntity(ctx, args[0])
		if err != nil {
			return err
		}
		d := authorDetails{AuthorView: viewOf(e)}
		if d.Works, err = svc.Works(ctx, e.Key()); err != nil {
			return err
		}
		if d.Works == nil {
			d.Works = []*types.Book{}
		}
		switch e.Discriminator() {
		case types.DiscriminatorAdHocTeam:
			d.Members, err = svc.Members(ctx, e.Key())
		case types.DiscriminatorIndividualAuthor:
			d.Memberships, err = svc.Memberships(ctx, e.Key())
		}
		if err != nil {
			return err
		}
		return a.emit(get.OutOrStdout(), d, func(w io.Writer) { printAuthor(w, e, d) })
	})
	return get
}

func printAuthor(w io.Writer, e types.AuthoringEntity, d authorDetails) {
	fmt.Fprintf(w, "Type:  %s\nName:  %s\nEmail: %s\n", e.Discriminator().Label(), e.Base().Name, e.Key())
	if g, ok := e.(*types.WritingGroup); ok {
		fmt.Fprintf(w, "Head writer: %s\nYear formed: %d\n", g.HeadWriter, g.YearFormed)
	}
	for _, m := range d.Members {
		fmt.Fprintf(w, "Member: %s <%s>\n", m.Name, m.Email)
	}
	for _, t := range d.Memberships {
		fmt.Fprintf(w, "Team:   %s <%s>\n", t.Name, t.Email)
	}
	for _, b := range d.Works {
		fmt.Fprintf(w, "Work:   %s %s (%d)\n", b.ISBN, b.Title, b.YearPublished)
	}
}

func newAuthorListCmd(a *app) *cobra.Command {
	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List authoring entities",
		Args:  cobra.NoArgs,
	}
	list.Flags().StringVar(&kind, "kind", "", "individual, group, team or all")
	list.RunE = a.withService(func(ctx context.Context, svc *catalog.Service, args []string) error {
		k := types.KindAuthoringEntity
		if kind != "" {
			parsed, err := types.ParseKind(kind)
			if err != nil || !parsed.IsAuthoring() {
				return fmt.Errorf("%w: %q (want individual, group, team or all)", types.ErrUnknownKind, kind)
			}
			k = parsed
		}
		all, err := svc.AuthoringEntities(ctx, k)
		if err != nil {
			return err
		}
		views := make([]AuthorView, 0, len(all))
		for _, e := range all {
			views = append(views, viewOf(e))
		}
		return a.emit(list.OutOrStdout(), views, func(w io.Writer) {
			for _, e := range all {
				fmt.Fprintf(w, "%-30s %-18s %s\n", e.Key(), e.Discriminator().Label(), e.Base().Name)
			}
		})
	})
	return list
}
