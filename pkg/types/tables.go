package types

// Kind names an entity type or authoring-entity variant for store queries.
type Kind string

// Entity kinds accepted by Tx.QueryAll, Tx.QueryByKey and Tx.Remove.
const (
	KindPublisher        Kind = "publisher"
	KindBook             Kind = "book"
	KindAuthoringEntity  Kind = "authoring_entity"
	KindIndividualAuthor Kind = "individual_author"
	KindWritingGroup     Kind = "writing_group"
	KindAdHocTeam        Kind = "ad_hoc_team"
)

// Table names shared by the SQL schema, the memdb schema and snapshots.
const (
	PublishersTable         = "publishers"
	AuthoringEntitiesTable  = "authoring_entities"
	BooksTable              = "books"
	TeamMembersTable        = "ad_hoc_team_members"
	DiscriminatorColumnName = "authoring_entity_type"
)

// StandardTableNames lists all tables in dependency order.
var StandardTableNames = []string{
	PublishersTable,
	AuthoringEntitiesTable,
	BooksTable,
	TeamMembersTable,
}

// kindTables maps each kind to the table its records live in.
var kindTables = map[Kind]string{
	KindPublisher:        PublishersTable,
	KindBook:             BooksTable,
	KindAuthoringEntity:  AuthoringEntitiesTable,
	KindIndividualAuthor: AuthoringEntitiesTable,
	KindWritingGroup:     AuthoringEntitiesTable,
	KindAdHocTeam:        AuthoringEntitiesTable,
}

// Table returns the table that stores records of kind k.
// Returns ErrUnknownKind for kinds outside the catalog.
func (k Kind) Table() (string, error) {
	t, ok := kindTables[k]
	if !ok {
		return "", ErrUnknownKind
	}
	return t, nil
}

// Discriminator returns the discriminator value that selects kind k inside
// the authoring entity table. The second result is false for kinds that are
// not a single variant (publisher, book, and the abstract authoring entity).
func (k Kind) Discriminator() (Discriminator, bool) {
	switch k {
	case KindIndividualAuthor:
		return DiscriminatorIndividualAuthor, true
	case KindWritingGroup:
		return DiscriminatorWritingGroup, true
	case KindAdHocTeam:
		return DiscriminatorAdHocTeam, true
	default:
		return "", false
	}
}

// IsAuthoring reports whether k addresses the authoring entity table.
func (k Kind) IsAuthoring() bool {
	t, err := k.Table()
	return err == nil && t == AuthoringEntitiesTable
}

// kindAliases holds the short names ParseKind accepts besides the Kind
// values themselves.
var kindAliases = map[string]Kind{
	"all":        KindAuthoringEntity,
	"individual": KindIndividualAuthor,
	"group":      KindWritingGroup,
	"team":       KindAdHocTeam,
}

// ParseKind converts a user-facing name (a Kind value or one of the short
// aliases all, individual, group and team) to a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	k := Kind(s)
	if _, ok := kindTables[k]; !ok {
		return "", ErrUnknownKind
	}
	return k, nil
}

// Category returns the entity category reported in constraint violations.
func (k Kind) Category() string {
	switch k {
	case KindPublisher:
		return CategoryPublisher
	case KindBook:
		return CategoryBook
	default:
		return CategoryAuthoringEntity
	}
}
