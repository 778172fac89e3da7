package types

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Publisher is identified by its name; email and phone are unique too.
type Publisher struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewPublisher validates the fields and returns a publisher ready to insert.
func NewPublisher(name, email, phone string) (*Publisher, error) {
	p := &Publisher{Name: name, Email: email, Phone: phone}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Kind implements Entity.
func (p *Publisher) Kind() Kind { return KindPublisher }

// Key implements Entity.
func (p *Publisher) Key() string { return p.Name }

// Validate checks the column constraints of a publisher.
// Returns a *ValidationError naming the first offending field.
func (p *Publisher) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, text(MaxPublisherNameLen)...),
		validation.Field(&p.Email, text(MaxPublisherEmailLen)...),
		validation.Field(&p.Phone, text(MaxPublisherPhoneLen)...),
	)
	return fieldError("publisher", err, "name", "email", "phone")
}
