package types

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Book binds one work to exactly one authoring entity and one publisher.
// Both references are set at creation and never change.
type Book struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	YearPublished int    `json:"year_published"`
	AuthorEmail   string `json:"author_email"`
	PublisherName string `json:"publisher_name"`
}

// NewBook validates the fields and returns a book ready to insert. It does
// not check that the author and publisher exist; the store enforces that.
func NewBook(isbn, title string, yearPublished int, authorEmail, publisherName string) (*Book, error) {
	b := &Book{
		ISBN:          isbn,
		Title:         title,
		YearPublished: yearPublished,
		AuthorEmail:   authorEmail,
		PublisherName: publisherName,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Kind implements Entity.
func (b *Book) Kind() Kind { return KindBook }

// Key implements Entity.
func (b *Book) Key() string { return b.ISBN }

// Validate checks the column constraints of a book.
func (b *Book) Validate() error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.ISBN, text(MaxISBNLen)...),
		validation.Field(&b.Title, text(MaxTitleLen)...),
		validation.Field(&b.AuthorEmail, validation.Required.Error("cannot be empty")),
		validation.Field(&b.PublisherName, validation.Required.Error("cannot be empty")),
	)
	return fieldError("book", err, "isbn", "title", "author_email", "publisher_name")
}
