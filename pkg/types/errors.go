package types

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup and data errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidData  = errors.New("invalid entity data")
	ErrUnknownKind  = errors.New("unknown entity kind")
	ErrWrongVariant = errors.New("authoring entity is not of the required variant")
)

// Catalog precondition errors.
var (
	ErrNoPublishers = errors.New("no publishers in the catalog; add a publisher first")
	ErrNoAuthors    = errors.New("no authoring entities in the catalog; add an author first")
)

// Constraint names carried by ConstraintViolation.
const (
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
)

// Categories carried by ConstraintViolation.
const (
	CategoryPublisher       = "publisher"
	CategoryAuthoringEntity = "authoring entity"
	CategoryBook            = "book"
	CategoryTeamMembership  = "team membership"
)

// ValidationError reports a field that violates a static constraint (empty,
// too long, not a number). It is raised before any store interaction.
type ValidationError struct {
	Entity string // e.g. "publisher", "book"
	Field  string // offending field, e.g. "isbn"
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %v", e.Entity, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConstraintViolation reports a uniqueness or required-reference rule
// broken by a write. The enclosing transaction is rolled back.
type ConstraintViolation struct {
	Category   string // entity category the write targeted
	Constraint string // ConstraintUnique or ConstraintForeignKey
	Err        error  // driver error, when one exists
}

func (e *ConstraintViolation) Error() string {
	switch e.Constraint {
	case ConstraintForeignKey:
		return fmt.Sprintf("%s references a record that does not exist", e.Category)
	default:
		article := "a"
		if e.Category != "" && strings.ContainsRune("aeiou", rune(e.Category[0])) {
			article = "an"
		}
		return fmt.Sprintf("%s %s already exists with the given information", article, e.Category)
	}
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IntegrityError reports stored data the catalog cannot interpret, such as
// an unrecognized discriminator or a book whose author or publisher is
// missing. It indicates store corruption and aborts the operation.
type IntegrityError struct {
	Kind   Kind
	Key    string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error on %s %q: %s", e.Kind, e.Key, e.Reason)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConstraintViolation reports whether err carries a ConstraintViolation.
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}

// IsIntegrity reports whether err carries an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
