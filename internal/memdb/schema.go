package memdb

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// PK is the mandatory primary index of every go-memdb table.
const PK = "id"

// Secondary index names.
const (
	idxEmail     = "email"
	idxPhone     = "phone"
	idxType      = "type"
	idxAuthor    = "author"
	idxPublisher = "publisher"
	idxTeam      = "team"
	idxEdge      = "edge"
)

// Relation ties a field of one table to the primary key of another.
type Relation struct {
	Field        string // field of the referencing object
	RelatedTable string // table whose PK the field holds
	RelatedIndex string // index on the referencing table over Field
}

// DBSchema extends the go-memdb schema with the constraints go-memdb does
// not enforce: unique secondary indexes and foreign keys.
type DBSchema struct {
	Tables map[string]*hcmemdb.TableSchema
	// UniqueConstraints lists indexes checked before Insert.
	UniqueConstraints map[string][]string
	// ForeignKeys lists references that must resolve at Insert.
	ForeignKeys map[string][]Relation
	// Categories names the entity category reported for each table.
	Categories map[string]string
}

// referencesTo returns every relation pointing at table.
func (s *DBSchema) referencesTo(table string) map[string][]Relation {
	out := map[string][]Relation{}
	for child, rels := range s.ForeignKeys {
		for _, r := range rels {
			if r.RelatedTable == table {
				out[child] = append(out[child], r)
			}
		}
	}
	return out
}

func catalogSchema() *DBSchema {
	return &DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			types.PublishersTable: {
				Name: types.PublishersTable,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK:       {Name: PK, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "Name"}},
					idxEmail: {Name: idxEmail, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "Email"}},
					idxPhone: {Name: idxPhone, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "Phone"}},
				},
			},
			types.AuthoringEntitiesTable: {
				Name: types.AuthoringEntitiesTable,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK:      {Name: PK, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "Email"}},
					idxType: {Name: idxType, Indexer: &hcmemdb.StringFieldIndex{Field: "Type"}},
				},
			},
			types.BooksTable: {
				Name: types.BooksTable,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK:           {Name: PK, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "ISBN"}},
					idxAuthor:    {Name: idxAuthor, Indexer: &hcmemdb.StringFieldIndex{Field: "AuthorEmail"}},
					idxPublisher: {Name: idxPublisher, Indexer: &hcmemdb.StringFieldIndex{Field: "PublisherName"}},
				},
			},
			types.TeamMembersTable: {
				Name: types.TeamMembersTable,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK:        {Name: PK, Unique: true, Indexer: &hcmemdb.StringFieldIndex{Field: "ID"}},
					idxTeam:   {Name: idxTeam, Indexer: &hcmemdb.StringFieldIndex{Field: "TeamEmail"}},
					idxAuthor: {Name: idxAuthor, Indexer: &hcmemdb.StringFieldIndex{Field: "AuthorEmail"}},
					idxEdge: {
						Name:   idxEdge,
						Unique: true,
						Indexer: &hcmemdb.CompoundIndex{Indexes: []hcmemdb.Indexer{
							&hcmemdb.StringFieldIndex{Field: "TeamEmail"},
							&hcmemdb.StringFieldIndex{Field: "AuthorEmail"},
						}},
					},
				},
			},
		},
		UniqueConstraints: map[string][]string{
			types.PublishersTable:        {PK, idxEmail, idxPhone},
			types.AuthoringEntitiesTable: {PK},
			types.BooksTable:             {PK},
			types.TeamMembersTable:       {PK, idxEdge},
		},
		ForeignKeys: map[string][]Relation{
			types.BooksTable: {
				{Field: "AuthorEmail", RelatedTable: types.AuthoringEntitiesTable, RelatedIndex: idxAuthor},
				{Field: "PublisherName", RelatedTable: types.PublishersTable, RelatedIndex: idxPublisher},
			},
			types.TeamMembersTable: {
				{Field: "TeamEmail", RelatedTable: types.AuthoringEntitiesTable, RelatedIndex: idxTeam},
				{Field: "AuthorEmail", RelatedTable: types.AuthoringEntitiesTable, RelatedIndex: idxAuthor},
			},
		},
		Categories: map[string]string{
			types.PublishersTable:        types.CategoryPublisher,
			types.AuthoringEntitiesTable: types.CategoryAuthoringEntity,
			types.BooksTable:             types.CategoryBook,
			types.TeamMembersTable:       types.CategoryTeamMembership,
		},
	}
}
