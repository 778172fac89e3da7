package types

import (
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Discriminator is the stored tag that tells which authoring entity variant a
// row of the shared authoring entity table represents. It never changes after
// the entity is created.
type Discriminator string

// Discriminator values persisted in the authoring_entity_type column.
const (
	DiscriminatorIndividualAuthor Discriminator = "IndividualAuthor"
	DiscriminatorWritingGroup     Discriminator = "WritingGroup"
	DiscriminatorAdHocTeam        Discriminator = "AdHocTeam"
)

// Discriminators lists every recognized discriminator value.
var Discriminators = []Discriminator{
	DiscriminatorIndividualAuthor,
	DiscriminatorWritingGroup,
	DiscriminatorAdHocTeam,
}

// Label returns the human-readable variant name.
func (d Discriminator) Label() string {
	switch d {
	case DiscriminatorIndividualAuthor:
		return "Individual Author"
	case DiscriminatorWritingGroup:
		return "Writing Group"
	case DiscriminatorAdHocTeam:
		return "Ad Hoc Team"
	default:
		return "Authoring Entity"
	}
}

// Kind returns the query kind selecting this variant.
func (d Discriminator) Kind() Kind {
	switch d {
	case DiscriminatorIndividualAuthor:
		return KindIndividualAuthor
	case DiscriminatorWritingGroup:
		return KindWritingGroup
	case DiscriminatorAdHocTeam:
		return KindAdHocTeam
	default:
		return KindAuthoringEntity
	}
}

// Valid reports whether d is one of the recognized variants.
func (d Discriminator) Valid() bool {
	return slices.Contains(Discriminators, d)
}

// AuthoringEntity is the closed sum of IndividualAuthor, WritingGroup and
// AdHocTeam. All variants share the email identity space.
type AuthoringEntity interface {
	Entity
	// Base returns the attributes shared by every variant.
	Base() AuthorBase
	// Discriminator returns the stored variant tag.
	Discriminator() Discriminator
	authoring()
}

// AuthorBase holds the attributes shared by all authoring entity variants.
type AuthorBase struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Key implements Entity.
func (b AuthorBase) Key() string { return b.Email }

// Base implements AuthoringEntity.
func (b AuthorBase) Base() AuthorBase { return b }

func (AuthorBase) authoring() {}

// IndividualAuthor is a single person credited as an author.
type IndividualAuthor struct {
	AuthorBase
}

// Kind implements Entity.
func (*IndividualAuthor) Kind() Kind { return KindIndividualAuthor }

// Discriminator implements AuthoringEntity.
func (*IndividualAuthor) Discriminator() Discriminator { return DiscriminatorIndividualAuthor }

// WritingGroup is a formal group of writers with a head writer.
type WritingGroup struct {
	AuthorBase
	HeadWriter string `json:"head_writer"`
	YearFormed int    `json:"year_formed"`
}

// Kind implements Entity.
func (*WritingGroup) Kind() Kind { return KindWritingGroup }

// Discriminator implements AuthoringEntity.
func (*WritingGroup) Discriminator() Discriminator { return DiscriminatorWritingGroup }

// AdHocTeam is a team of individual authors. The team is itself an
// authoring entity addressed by its own email.
type AdHocTeam struct {
	AuthorBase
}

// Kind implements Entity.
func (*AdHocTeam) Kind() Kind { return KindAdHocTeam }

// Discriminator implements AuthoringEntity.
func (*AdHocTeam) Discriminator() Discriminator { return DiscriminatorAdHocTeam }

// NewIndividualAuthor validates the fields and returns an individual author.
func NewIndividualAuthor(name, email string) (*IndividualAuthor, error) {
	a := &IndividualAuthor{AuthorBase{Email: email, Name: name}}
	if err := validateBase("individual author", &a.AuthorBase); err != nil {
		return nil, err
	}
	return a, nil
}

// NewWritingGroup validates the fields and returns a writing group.
func NewWritingGroup(name, email, headWriter string, yearFormed int) (*WritingGroup, error) {
	g := &WritingGroup{
		AuthorBase: AuthorBase{Email: email, Name: name},
		HeadWriter: headWriter,
		YearFormed: yearFormed,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewAdHocTeam validates the fields and returns an ad hoc team.
func NewAdHocTeam(name, email string) (*AdHocTeam, error) {
	t := &AdHocTeam{AuthorBase{Email: email, Name: name}}
	if err := validateBase("ad hoc team", &t.AuthorBase); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the column constraints of a writing group.
func (g *WritingGroup) Validate() error {
	if err := validateBase("writing group", &g.AuthorBase); err != nil {
		return err
	}
	err := validation.ValidateStruct(g,
		validation.Field(&g.HeadWriter, text(MaxHeadWriterLen)...),
	)
	return fieldError("writing group", err, "head_writer")
}

func validateBase(entity string, b *AuthorBase) error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.Name, text(MaxAuthorNameLen)...),
		validation.Field(&b.Email, text(MaxAuthorEmailLen)...),
	)
	return fieldError(entity, err, "name", "email")
}

// ValidateAuthoringEntity runs the field checks of whichever variant e is.
func ValidateAuthoringEntity(e AuthoringEntity) error {
	switch v := e.(type) {
	case *IndividualAuthor:
		return validateBase("individual author", &v.AuthorBase)
	case *WritingGroup:
		return v.Validate()
	case *AdHocTeam:
		return validateBase("ad hoc team", &v.AuthorBase)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidData, e)
	}
}

// AuthoringRecord is the single-table row shape of an authoring entity:
// the shared columns, the discriminator, and the union of the variant
// columns. Backends store and load this shape.
type AuthoringRecord struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Type       string  `json:"authoring_entity_type"`
	HeadWriter *string `json:"head_writer,omitempty"`
	YearFormed *int    `json:"year_formed,omitempty"`
}

// RecordOf flattens an authoring entity into its table row.
func RecordOf(e AuthoringEntity) AuthoringRecord {
	b := e.Base()
	rec := AuthoringRecord{Email: b.Email, Name: b.Name, Type: string(e.Discriminator())}
	if g, ok := e.(*WritingGroup); ok {
		hw, yf := g.HeadWriter, g.YearFormed
		rec.HeadWriter = &hw
		rec.YearFormed = &yf
	}
	return rec
}

// Classify resolves the variant of a stored record from its discriminator.
// An unrecognized tag is an *IntegrityError.
func (r AuthoringRecord) Classify() (Discriminator, error) {
	d := Discriminator(r.Type)
	if !d.Valid() {
		return "", &IntegrityError{
			Kind:   KindAuthoringEntity,
			Key:    r.Email,
			Reason: fmt.Sprintf("unrecognized discriminator %q", r.Type),
		}
	}
	return d, nil
}

// Entity rebuilds the variant the record represents.
func (r AuthoringRecord) Entity() (AuthoringEntity, error) {
	d, err := r.Classify()
	if err != nil {
		return nil, err
	}
	base := AuthorBase{Email: r.Email, Name: r.Name}
	switch d {
	case DiscriminatorWritingGroup:
		g := &WritingGroup{AuthorBase: base}
		if r.HeadWriter != nil {
			g.HeadWriter = *r.HeadWriter
		}
		if r.YearFormed != nil {
			g.YearFormed = *r.YearFormed
		}
		return g, nil
	case DiscriminatorAdHocTeam:
		return &AdHocTeam{AuthorBase: base}, nil
	default:
		return &IndividualAuthor{AuthorBase: base}, nil
	}
}
