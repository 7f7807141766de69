package employee

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Add(form Form) Employee
	Update(id string, patch Patch) (Employee, bool)
	Remove(id string) bool
	ByID(id string) (Employee, bool)

	Filters() Filters
	SetFilters(patch FilterPatch)
	ResetFilters()
	PaginatedList() []Employee
	Total() int

	SetLoading(loading bool)
	SetError(msg *string)

	Form() Form
	SetForm(form *Form)
	SetFormField(field, value string) bool
	EditForm(id string) bool
	ResetForm()

	State() State
	Subscribe(l Listener) (unsubscribe func())
}

var _ Repository = (*Store)(nil)
