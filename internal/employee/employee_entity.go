package employee

import "strings"

// Employee is a committed roster record. Dates are ISO "YYYY-MM-DD" strings.
type Employee struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
}

// Form is the editable draft of an employee, without the id.
type Form struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Department       *string `json:"department,omitempty"`
	Position         *string `json:"position,omitempty"`
	DateOfEmployment *string `json:"dateOfEmployment,omitempty"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty"`
}

// Field names as they appear in forms, validation results and patches.
const (
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldDepartment       = "department"
	FieldPosition         = "position"
	FieldDateOfEmployment = "dateOfEmployment"
	FieldDateOfBirth      = "dateOfBirth"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldDepartment,
	FieldPosition,
	FieldDateOfEmployment,
	FieldDateOfBirth,
}

var (
	Positions   = []string{"Junior", "Medior", "Senior"}
	Departments = []string{"Tech", "Analytics", "Marketing", "Sales"}
)

// Form returns the draft view of a committed employee.
func (e Employee) Form() Form {
	return Form{
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Position:         e.Position,
		DateOfEmployment: e.DateOfEmployment,
		DateOfBirth:      e.DateOfBirth,
	}
}

// Apply merges the non-nil fields of p into e. The id is never touched.
func (e *Employee) Apply(p Patch) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.FirstName, p.FirstName)
	set(&e.LastName, p.LastName)
	set(&e.Email, p.Email)
	set(&e.Phone, p.Phone)
	set(&e.Department, p.Department)
	set(&e.Position, p.Position)
	set(&e.DateOfEmployment, p.DateOfEmployment)
	set(&e.DateOfBirth, p.DateOfBirth)
}

// Employee builds a record with the given id from the draft.
func (f Form) Employee(id string) Employee {
	return Employee{
		ID:               id,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Email:            f.Email,
		Phone:            f.Phone,
		Department:       f.Department,
		Position:         f.Position,
		DateOfEmployment: f.DateOfEmployment,
		DateOfBirth:      f.DateOfBirth,
	}
}

// Patch returns a patch that overwrites every field with the draft values.
func (f Form) Patch() Patch {
	return Patch{
		FirstName:        &f.FirstName,
		LastName:         &f.LastName,
		Email:            &f.Email,
		Phone:            &f.Phone,
		Department:       &f.Department,
		Position:         &f.Position,
		DateOfEmployment: &f.DateOfEmployment,
		DateOfBirth:      &f.DateOfBirth,
	}
}

// Set applies a single field change event. It reports false for unknown fields.
func (f *Form) Set(field, value string) bool {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldDepartment:
		f.Department = value
	case FieldPosition:
		f.Position = value
	case FieldDateOfEmployment:
		f.DateOfEmployment = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	default:
		return false
	}
	return true
}

// matches reports whether the first or last name contains the lowered query.
func (e Employee) matches(lowered string) bool {
	return strings.Contains(strings.ToLower(e.FirstName), lowered) ||
		strings.Contains(strings.ToLower(e.LastName), lowered)
}
