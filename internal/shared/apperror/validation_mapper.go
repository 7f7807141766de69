package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a json field name into a label: "page_size" and
// "searchText" both become title-cased words.
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

// MapValidationError converts gin binding failures into an AppError. The
// first failing field names the message; every failing field is listed in
// the details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return ErrInvalidInput.WithDetails(err.Error())
	}

	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}

	// e.Field() is the json name thanks to RegisterTagNameFunc in Init.
	first := errs[0]
	label := formatFieldName(first.Field())

	switch first.Tag() {
	case "required":
		return RequiredField(label).WithDetails(details)
	default:
		return InvalidField(label).WithDetails(details)
	}
}
