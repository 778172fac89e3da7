package types

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Column widths of the catalog schema.
const (
	MaxPublisherNameLen  = 80
	MaxPublisherEmailLen = 80
	MaxPublisherPhoneLen = 24
	MaxAuthorNameLen     = 80
	MaxAuthorEmailLen    = 30
	MaxHeadWriterLen     = 80
	MaxISBNLen           = 17
	MaxTitleLen          = 80
)

var nonBlank = regexp.MustCompile(`\S`)

// text returns the rules for a required text column of at most max runes.
func text(max int) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("cannot be empty"),
		validation.Match(nonBlank).Error("cannot be blank"),
		validation.RuneLength(0, max).Error("cannot exceed {{.max}} characters"),
	}
}

// fieldError converts the result of validation.ValidateStruct into a
// *ValidationError naming the first offending field in the given order.
func fieldError(entity string, err error, order ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return &ValidationError{Entity: entity, Field: "", Err: err}
	}
	for _, field := range order {
		if fe, ok := errs[field]; ok && fe != nil {
			return &ValidationError{Entity: entity, Field: field, Err: fe}
		}
	}
	for field, fe := range errs {
		return &ValidationError{Entity: entity, Field: field, Err: fe}
	}
	return nil
}
