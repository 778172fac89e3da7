package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	tests := []struct {
		name      string
		pubName   string
		email     string
		phone     string
		wantField string
	}{
		{name: "valid publisher", pubName: "Acme", email: "acme@x.com", phone: "555-0100"},
		{name: "empty name", pubName: "", email: "acme@x.com", phone: "555-0100", wantField: "name"},
		{name: "blank name", pubName: "   ", email: "acme@x.com", phone: "555-0100", wantField: "name"},
		{name: "name at limit", pubName: strings.Repeat("n", MaxPublisherNameLen), email: "a@x.com", phone: "1"},
		{name: "name too long", pubName: strings.Repeat("n", MaxPublisherNameLen+1), email: "a@x.com", phone: "1", wantField: "name"},
		{name: "empty email", pubName: "Acme", email: "", phone: "555-0100", wantField: "email"},
		{name: "phone too long", pubName: "Acme", email: "acme@x.com", phone: strings.Repeat("5", MaxPublisherPhoneLen+1), wantField: "phone"},
		{name: "first offending field is reported", pubName: "", email: "", phone: "", wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPublisher(tt.pubName, tt.email, tt.phone)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.pubName, p.Key())
				assert.Equal(t, KindPublisher, p.Kind())
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, "publisher", ve.Entity)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Nil(t, p)
		})
	}
}

func TestNewAuthoringEntities(t *testing.T) {
	t.Run("individual author", func(t *testing.T) {
		a, err := NewIndividualAuthor("Jane Doe", "jane@x.com")
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", a.Key())
		assert.Equal(t, KindIndividualAuthor, a.Kind())
		assert.Equal(t, DiscriminatorIndividualAuthor, a.Discriminator())
	})

	t.Run("email longer than 30 characters", func(t *testing.T) {
		_, err := NewIndividualAuthor("Jane Doe", strings.Repeat("j", MaxAuthorEmailLen-5)+"@x.com")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Field)
		assert.Equal(t, "individual author", ve.Entity)
	})

	t.Run("writing group keeps variant fields", func(t *testing.T) {
		g, err := NewWritingGroup("Inklings", "ink@x.com", "C.S. Lewis", 1933)
		require.NoError(t, err)
		assert.Equal(t, "C.S. Lewis", g.HeadWriter)
		assert.Equal(t, 1933, g.YearFormed)
		assert.Equal(t, DiscriminatorWritingGroup, g.Discriminator())
	})

	t.Run("writing group with empty head writer", func(t *testing.T) {
		_, err := NewWritingGroup("Inklings", "ink@x.com", "", 1933)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "head_writer", ve.Field)
	})

	t.Run("ad hoc team", func(t *testing.T) {
		team, err := NewAdHocTeam("Tiger Team", "tiger@x.com")
		require.NoError(t, err)
		assert.Equal(t, KindAdHocTeam, team.Kind())
		assert.Equal(t, "tiger@x.com", team.Base().Email)
	})

	t.Run("ad hoc team with empty name", func(t *testing.T) {
		_, err := NewAdHocTeam("", "tiger@x.com")
		assert.True(t, IsValidation(err))
	})
}

func TestNewBook(t *testing.T) {
	tests := []struct {
		name      string
		isbn      string
		title     string
		wantField string
	}{
		{name: "valid book", isbn: "000-0000000001", title: "Title X"},
		{name: "isbn at limit", isbn: strings.Repeat("1", MaxISBNLen), title: "Title X"},
		{name: "isbn of 18 characters", isbn: strings.Repeat("1", MaxISBNLen+1), title: "Title X", wantField: "isbn"},
		{name: "empty isbn", isbn: "", title: "Title X", wantField: "isbn"},
		{name: "empty title", isbn: "000-0000000001", title: "", wantField: "title"},
		{name: "title too long", isbn: "000-0000000001", title: strings.Repeat("t", MaxTitleLen+1), wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBook(tt.isbn, tt.title, 2020, "jane@x.com", "Acme")
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.isbn, b.Key())
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "book", ve.Entity)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestAuthoringRecordRoundTrip(t *testing.T) {
	g, err := NewWritingGroup("Inklings", "ink@x.com", "C.S. Lewis", 1933)
	require.NoError(t, err)
	a, err := NewIndividualAuthor("Jane Doe", "jane@x.com")
	require.NoError(t, err)
	team, err := NewAdHocTeam("Tiger Team", "tiger@x.com")
	require.NoError(t, err)

	for _, e := range []AuthoringEntity{g, a, team} {
		rec := RecordOf(e)
		assert.Equal(t, string(e.Discriminator()), rec.Type)

		got, err := rec.Entity()
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	rec := RecordOf(a)
	assert.Nil(t, rec.HeadWriter)
	assert.Nil(t, rec.YearFormed)
}

func TestAuthoringRecordUnknownDiscriminator(t *testing.T) {
	rec := AuthoringRecord{Email: "x@x.com", Name: "X", Type: "Ghostwriter"}

	_, err := rec.Classify()
	var ie *IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "x@x.com", ie.Key)
	assert.Contains(t, ie.Error(), "Ghostwriter")

	_, err = rec.Entity()
	assert.True(t, IsIntegrity(err))
}

func TestKindTables(t *testing.T) {
	for _, k := range []Kind{KindIndividualAuthor, KindWritingGroup, KindAdHocTeam, KindAuthoringEntity} {
		table, err := k.Table()
		require.NoError(t, err)
		assert.Equal(t, AuthoringEntitiesTable, table)
		assert.True(t, k.IsAuthoring())
	}

	_, err := Kind("trail").Table()
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, ok := KindAuthoringEntity.Discriminator()
	assert.False(t, ok)
	d, ok := KindWritingGroup.Discriminator()
	require.True(t, ok)
	assert.Equal(t, KindWritingGroup, d.Kind())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"all", KindAuthoringEntity},
		{"individual", KindIndividualAuthor},
		{"group", KindWritingGroup},
		{"team", KindAdHocTeam},
		{"book", KindBook},
		{"ad_hoc_team", KindAdHocTeam},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "robot", "Team"} {
		_, err := ParseKind(bad)
		assert.ErrorIs(t, err, ErrUnknownKind, bad)
	}
}

func TestDiscriminatorValid(t *testing.T) {
	for _, d := range Discriminators {
		assert.True(t, d.Valid(), d)
		assert.True(t, d.Kind().IsAuthoring(), d)
	}
	assert.False(t, Discriminator("Ghostwriter").Valid())
	assert.False(t, Discriminator("").Valid())
}

func TestConstraintViolationMessage(t *testing.T) {
	dup := &ConstraintViolation{Category: CategoryPublisher, Constraint: ConstraintUnique}
	assert.Equal(t, "a publisher already exists with the given information", dup.Error())
	dup.Category = CategoryAuthoringEntity
	assert.Equal(t, "an authoring entity already exists with the given information", dup.Error())

	fk := &ConstraintViolation{Category: CategoryBook, Constraint: ConstraintForeignKey}
	assert.Equal(t, "book references a record that does not exist", fk.Error())
	assert.True(t, IsConstraintViolation(fk))
}
