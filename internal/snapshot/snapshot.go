// Package snapshot exports the whole catalog to a directory of JSONL files
// and imports it back. Each entity type has its own file; records are
// sorted by key so snapshots diff cleanly under version control.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Snapshot file names, in import order.
const (
	PublishersFile  = "publishers.jsonl"
	AuthoringFile   = "authoring_entities.jsonl"
	BooksFile       = "books.jsonl"
	TeamMembersFile = "team_members.jsonl"
)

// Member is one membership edge as written to team_members.jsonl.
type Member struct {
	TeamEmail   string `json:"team_email"`
	AuthorEmail string `json:"author_email"`
}

// Counts reports how many records of each type were exported or imported,
// and how many malformed lines an import skipped.
type Counts struct {
	Publishers        int `json:"publishers"`
	AuthoringEntities int `json:"authoring_entities"`
	Books             int `json:"books"`
	Members           int `json:"members"`
	Skipped           int `json:"skipped"`
}

// Option configures Export and Import.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used to report skipped lines.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Export writes the catalog held by store into dir, creating dir if
// needed. All records are read in one transaction.
func Export(ctx context.Context, store types.Store, dir string, opts ...Option) (*Counts, error) {
	o := newOptions(opts)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	tx, err := store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	pubs, err := tx.QueryAll(ctx, types.KindPublisher)
	if err != nil {
		return nil, fmt.Errorf("reading publishers: %w", err)
	}
	authors, err := tx.QueryAll(ctx, types.KindAuthoringEntity)
	if err != nil {
		return nil, fmt.Errorf("reading authoring entities: %w", err)
	}
	books, err := tx.QueryAll(ctx, types.KindBook)
	if err != nil {
		return nil, fmt.Errorf("reading books: %w", err)
	}

	var (
		records = make([]types.AuthoringRecord, 0, len(authors))
		members []Member
	)
	for _, e := range authors {
		a := e.(types.AuthoringEntity)
		records = append(records, types.RecordOf(a))
		if a.Discriminator() != types.DiscriminatorAdHocTeam {
			continue
		}
		team, err := tx.Members(ctx, a.Key())
		if err != nil {
			return nil, fmt.Errorf("reading members of %s: %w", a.Key(), err)
		}
		for _, m := range team {
			members = append(members, Member{TeamEmail: a.Key(), AuthorEmail: m.Email})
		}
	}

	if err := writeJSONL(filepath.Join(dir, PublishersFile), pubs); err != nil {
		return nil, fmt.Errorf("writing %s: %w", PublishersFile, err)
	}
	if err := writeJSONL(filepath.Join(dir, AuthoringFile), records); err != nil {
		return nil, fmt.Errorf("writing %s: %w", AuthoringFile, err)
	}
	if err := writeJSONL(filepath.Join(dir, BooksFile), books); err != nil {
		return nil, fmt.Errorf("writing %s: %w", BooksFile, err)
	}
	if err := writeJSONL(filepath.Join(dir, TeamMembersFile), members); err != nil {
		return nil, fmt.Errorf("writing %s: %w", TeamMembersFile, err)
	}

	c := &Counts{
		Publishers:        len(pubs),
		AuthoringEntities: len(records),
		Books:             len(books),
		Members:           len(members),
	}
	o.logger.Info().Str("dir", dir).
		Int("publishers", c.Publishers).
		Int("authoring_entities", c.AuthoringEntities).
		Int("books", c.Books).
		Int("members", c.Members).
		Msg("exported")
	return c, nil
}

// Import loads the snapshot in dir into store inside a single transaction:
// publishers, then authoring entities, then books, then memberships. Any
// failure rolls the whole import back. Missing files are treated as empty
// and malformed lines are skipped.
func Import(ctx context.Context, store types.Store, dir string, opts ...Option) (*Counts, error) {
	o := newOptions(opts)
	var c Counts

	tx, err := store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	steps := []struct {
		file  string
		count *int
		load  func(raw []byte) (added bool, err error)
	}{
		{PublishersFile, &c.Publishers, func(raw []byte) (bool, error) {
			var p types.Publisher
			if err := json.Unmarshal(raw, &p); err != nil {
				return false, err
			}
			if err := p.Validate(); err != nil {
				return false, err
			}
			return inserted(tx.Insert(ctx, &p))
		}},
		{AuthoringFile, &c.AuthoringEntities, func(raw []byte) (bool, error) {
			var r types.AuthoringRecord
			if err := json.Unmarshal(raw, &r); err != nil {
				return false, err
			}
			e, err := r.Entity()
			if err != nil {
				return false, err
			}
			if err := types.ValidateAuthoringEntity(e); err != nil {
				return false, err
			}
			return inserted(tx.Insert(ctx, e))
		}},
		{BooksFile, &c.Books, func(raw []byte) (bool, error) {
			var b types.Book
			if err := json.Unmarshal(raw, &b); err != nil {
				return false, err
			}
			if err := b.Validate(); err != nil {
				return false, err
			}
			return inserted(tx.Insert(ctx, &b))
		}},
		{TeamMembersFile, &c.Members, func(raw []byte) (bool, error) {
			var m Member
			if err := json.Unmarshal(raw, &m); err != nil {
				return false, err
			}
			// A repeated edge is a no-op and is not counted.
			return tx.AddEdge(ctx, m.TeamEmail, m.AuthorEmail)
		}},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		lines, skipped, err := readJSONL(path)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			o.logger.Warn().Str("file", step.file).Int("skipped", skipped).Msg("malformed lines skipped")
		}
		c.Skipped += skipped
		for _, l := range lines {
			added, err := step.load(l.raw)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", step.file, l.n, err)
			}
			if added {
				*step.count++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	o.logger.Info().Str("dir", dir).
		Int("publishers", c.Publishers).
		Int("authoring_entities", c.AuthoringEntities).
		Int("books", c.Books).
		Int("members", c.Members).
		Msg("imported")
	return &c, nil
}

// inserted adapts an Insert result to the load signature.
func inserted(err error) (bool, error) {
	return err == nil, err
}
