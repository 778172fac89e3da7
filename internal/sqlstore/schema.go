package sqlstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Schema DDL for all tables. The statements are valid for both SQLite and
// PostgreSQL; VARCHAR widths mirror the field limits in pkg/types.
const (
	createPublishers = `CREATE TABLE IF NOT EXISTS publishers (
    name VARCHAR(80) NOT NULL PRIMARY KEY,
    email VARCHAR(80) NOT NULL UNIQUE,
    phone VARCHAR(24) NOT NULL UNIQUE
);`

	createAuthoringEntities = `CREATE TABLE IF NOT EXISTS authoring_entities (
    email VARCHAR(30) NOT NULL PRIMARY KEY,
    authoring_entity_type VARCHAR(31) NOT NULL,
    name VARCHAR(80) NOT NULL,
    head_writer VARCHAR(80),
    year_formed INTEGER
);`

	createBooks = `CREATE TABLE IF NOT EXISTS books (
    isbn VARCHAR(17) NOT NULL PRIMARY KEY,
    title VARCHAR(80) NOT NULL,
    year_published INTEGER NOT NULL,
    authoring_entity_email VARCHAR(30) NOT NULL,
    publisher_name VARCHAR(80) NOT NULL,
    FOREIGN KEY (authoring_entity_email) REFERENCES authoring_entities(email),
    FOREIGN KEY (publisher_name) REFERENCES publishers(name)
);`

	createTeamMembers = `CREATE TABLE IF NOT EXISTS ad_hoc_team_members (
    membership_id VARCHAR(36) NOT NULL PRIMARY KEY,
    team_email VARCHAR(30) NOT NULL,
    author_email VARCHAR(30) NOT NULL,
    created_at VARCHAR(40) NOT NULL,
    FOREIGN KEY (team_email) REFERENCES authoring_entities(email),
    FOREIGN KEY (author_email) REFERENCES authoring_entities(email)
);`
)

// Index DDL for common queries.
const (
	idxAuthoringType     = `CREATE INDEX IF NOT EXISTS idx_authoring_entities_type ON authoring_entities(authoring_entity_type);`
	idxBooksAuthor       = `CREATE INDEX IF NOT EXISTS idx_books_author ON books(authoring_entity_email);`
	idxBooksPublisher    = `CREATE INDEX IF NOT EXISTS idx_books_publisher ON books(publisher_name);`
	idxTeamMembersUnique = `CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_unique ON ad_hoc_team_members(team_email, author_email);`
	idxTeamMembersAuthor = `CREATE INDEX IF NOT EXISTS idx_team_members_author ON ad_hoc_team_members(author_email);`
)

// tableDDL maps each table to its CREATE TABLE statement. Tables are
// created in types.StandardTableNames order so foreign keys resolve.
var tableDDL = map[string]string{
	types.PublishersTable:        createPublishers,
	types.AuthoringEntitiesTable: createAuthoringEntities,
	types.BooksTable:             createBooks,
	types.TeamMembersTable:       createTeamMembers,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxAuthoringType,
	idxBooksAuthor,
	idxBooksPublisher,
	idxTeamMembersUnique,
	idxTeamMembersAuthor,
}

// createSchema executes the table and index DDL in one transaction.
func createSchema(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range types.StandardTableNames {
		stmt, ok := tableDDL[table]
		if !ok {
			return fmt.Errorf("no DDL for table %s", table)
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating table %s: %w", table, err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}
