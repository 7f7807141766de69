package employee

import (
	"regexp"
	"strings"
	"time"
)

// Validation kinds double as message ids of the locale catalogs.
const (
	KindRequired = "validation.required"
	KindEmail    = "validation.email"
	KindPhone    = "validation.phone"
	KindDate     = "validation.date"
	KindMinAge   = "validation.minAge"
	KindPastDate = "validation.pastDate"
)

// MinimumAge is the youngest an employee may be on the day of validation.
const MinimumAge = 18

const dateLayout = "2006-01-02"

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneNoise      = regexp.MustCompile(`[\s\-()]`)
	landlinePattern = regexp.MustCompile(`^0[0-46-9]\d{8}$`)
	mobilePattern   = regexp.MustCompile(`^(\+90|0)5\d{9}$`)
)

// FieldError describes why a field failed. Params feed message interpolation.
type FieldError struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

// ValidationErrors maps field names to their error. Empty means valid.
type ValidationErrors map[string]FieldError

// Valid reports whether no field failed.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Validate checks the draft against the current clock.
func Validate(form *Form) ValidationErrors {
	return ValidateAt(form, time.Now())
}

// ValidateAt checks the draft as of now. A nil draft is treated as empty.
// Age and future-date checks run last and overwrite earlier date errors.
func ValidateAt(form *Form, now time.Time) ValidationErrors {
	var f Form
	if form != nil {
		f = *form
	}
	errs := ValidationErrors{}

	requireTrimmed(errs, FieldFirstName, f.FirstName)
	requireTrimmed(errs, FieldLastName, f.LastName)

	if requireTrimmed(errs, FieldEmail, f.Email) && !IsValidEmail(f.Email) {
		errs[FieldEmail] = FieldError{Kind: KindEmail}
	}

	if requireTrimmed(errs, FieldPhone, f.Phone) && !IsValidPhone(f.Phone) {
		errs[FieldPhone] = FieldError{Kind: KindPhone}
	}

	if require(errs, FieldDateOfBirth, f.DateOfBirth) && !IsValidDate(f.DateOfBirth) {
		errs[FieldDateOfBirth] = FieldError{Kind: KindDate}
	}
	if require(errs, FieldDateOfEmployment, f.DateOfEmployment) && !IsValidDate(f.DateOfEmployment) {
		errs[FieldDateOfEmployment] = FieldError{Kind: KindDate}
	}

	require(errs, FieldDepartment, f.Department)
	require(errs, FieldPosition, f.Position)

	if birth, ok := parseDate(f.DateOfBirth, now.Location()); ok {
		if yearsBetween(birth, now) < MinimumAge {
			errs[FieldDateOfBirth] = FieldError{
				Kind:   KindMinAge,
				Params: map[string]any{"age": MinimumAge},
			}
		}
	}

	if employed, ok := parseDate(f.DateOfEmployment, now.Location()); ok {
		if employed.After(startOfDay(now)) {
			errs[FieldDateOfEmployment] = FieldError{Kind: KindPastDate}
		}
	}

	return errs
}

// IsValidEmail reports whether s has a local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone accepts Turkish landline and mobile numbers, ignoring
// spaces, hyphens and parentheses.
func IsValidPhone(s string) bool {
	clean := phoneNoise.ReplaceAllString(s, "")
	return landlinePattern.MatchString(clean) || mobilePattern.MatchString(clean)
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func requireTrimmed(errs ValidationErrors, field, value string) bool {
	return require(errs, field, strings.TrimSpace(value))
}

func require(errs ValidationErrors, field, value string) bool {
	if value == "" {
		errs[field] = FieldError{
			Kind:   KindRequired,
			Params: map[string]any{"field": "employee.details." + field},
		}
		return false
	}
	return true
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// yearsBetween counts full years elapsed from from to to.
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
