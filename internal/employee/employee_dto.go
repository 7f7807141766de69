package employee

// View names the two list layouts. Each has its own page size.
const (
	ViewList = "list"
	ViewCard = "card"
)

var ViewSizes = map[string]int{
	ViewList: 10,
	ViewCard: 6,
}

type CreateEmployeeRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
}

func (r CreateEmployeeRequest) Form() Form {
	return Form(r)
}

// UpdateEmployeeRequest is a partial update; omitted fields keep their value.
type UpdateEmployeeRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Department       *string `json:"department"`
	Position         *string `json:"position"`
	DateOfEmployment *string `json:"dateOfEmployment"`
	DateOfBirth      *string `json:"dateOfBirth"`
}

func (r UpdateEmployeeRequest) Patch() Patch {
	return Patch(r)
}

// ListQuery is the query string of GET /employees. Zero values leave the
// stored filters as they are.
type ListQuery struct {
	Page   int     `form:"page" binding:"omitempty,min=1"`
	Size   int     `form:"size" binding:"omitempty,min=1,max=100"`
	Search *string `form:"q"`
	View   string  `form:"view" binding:"omitempty,oneof=list card"`
}

type SetFiltersRequest struct {
	Page       *int    `json:"page" binding:"omitempty,min=1"`
	Size       *int    `json:"size" binding:"omitempty,min=1,max=100"`
	SearchText *string `json:"searchText"`
}

func (r SetFiltersRequest) Patch() FilterPatch {
	return FilterPatch(r)
}

type SetFormRequest struct {
	Form *Form `json:"form"`
}

type FormFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ListResult is one page of the filtered roster.
type ListResult struct {
	Items   []Employee
	Filters Filters
	Total   int
}

type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// SubmitResult reports what a form submission committed.
type SubmitResult struct {
	Employee Employee `json:"employee"`
	Created  bool     `json:"created"`
}
