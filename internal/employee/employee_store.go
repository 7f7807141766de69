package employee

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPageSize is the list view page length.
const DefaultPageSize = 10

// Action names the mutation that produced a Change.
type Action string

const (
	ActionSetAll        Action = "employees/setAll"
	ActionAdd           Action = "employees/add"
	ActionUpdate        Action = "employees/update"
	ActionRemove        Action = "employees/remove"
	ActionSetFilters    Action = "employees/setFilters"
	ActionSetPage       Action = "employees/setPage"
	ActionSetSize       Action = "employees/setSize"
	ActionSetSearchText Action = "employees/setSearchText"
	ActionResetFilters  Action = "employees/resetFilters"
	ActionSetLoading    Action = "employees/setLoading"
	ActionSetError      Action = "employees/setError"
	ActionSetForm       Action = "employees/setForm"
	ActionSetFormField  Action = "employees/setFormField"
	ActionResetForm     Action = "employees/resetForm"
)

// Filters is the list query state. Page is 1-based.
type Filters struct {
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	SearchText string `json:"searchText"`
}

// FilterPatch is a shallow partial update of Filters.
type FilterPatch struct {
	Page       *int    `json:"page,omitempty"`
	Size       *int    `json:"size,omitempty"`
	SearchText *string `json:"searchText,omitempty"`
}

// State is a point-in-time copy of the store contents.
type State struct {
	Employees []Employee `json:"employees"`
	Filters   Filters    `json:"filters"`
	Loading   bool       `json:"loading"`
	Error     *string    `json:"error"`
	Form      Form       `json:"form"`
	Version   uint64     `json:"version"`
}

// Change is delivered to listeners after every mutation. Applied is false
// when the mutation referenced an unknown id or field and changed nothing.
type Change struct {
	Action     Action
	EmployeeID string
	Applied    bool
	State      State
}

// Listener observes store changes. It runs on the goroutine that dispatched
// the mutation, before that mutation returns. Listeners see changes in
// Version order and may read the store, but must not mutate it.
type Listener func(Change)

// Store is the single in-memory source of truth of a roster session.
type Store struct {
	// dispatchMu serialises mutate and notify so listeners never observe
	// changes out of order.
	dispatchMu sync.Mutex

	mu          sync.RWMutex
	state       State
	defaultSize int
	newID       func() string

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextToken   uint64

	logger *zap.Logger
}

type StoreOption func(*Store)

// WithPageSize sets the page length restored by ResetFilters.
func WithPageSize(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.defaultSize = size
		}
	}
}

// WithIDGenerator replaces the uuid generator used by Add.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l.Named("employee.store")
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		defaultSize: DefaultPageSize,
		newID:       uuid.NewString,
		listeners:   make(map[uint64]Listener),
		logger:      zap.L().Named("employee.store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = State{
		Employees: []Employee{},
		Filters:   s.defaultFilters(),
	}
	return s
}

func (s *Store) defaultFilters() Filters {
	return Filters{Page: 1, Size: s.defaultSize}
}

// Subscribe registers l and returns a function that removes it again.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	token := s.nextToken
	s.nextToken++
	s.listeners[token] = l
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, token)
			s.listenersMu.Unlock()
		})
	}
}

// Listeners reports how many listeners are registered.
func (s *Store) Listeners() int {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	return len(s.listeners)
}

// dispatch applies mutate atomically and then notifies every listener with a
// snapshot of the resulting state.
func (s *Store) dispatch(action Action, employeeID string, mutate func(st *State) bool) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	applied := mutate(&s.state)
	s.state.Version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("store mutation",
		zap.String("action", string(action)),
		zap.String("employee_id", employeeID),
		zap.Bool("applied", applied),
		zap.Uint64("version", snap.Version),
	)

	s.listenersMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, token := range slices.Sorted(maps.Keys(s.listeners)) {
		ls = append(ls, s.listeners[token])
	}
	s.listenersMu.Unlock()

	change := Change{Action: action, EmployeeID: employeeID, Applied: applied, State: snap}
	for _, l := range ls {
		l(change)
	}
	return snap
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Employees = append([]Employee(nil), s.state.Employees...)
	if s.state.Error != nil {
		msg := *s.state.Error
		snap.Error = &msg
	}
	return snap
}

// SetAll replaces the whole employee list.
func (s *Store) SetAll(records []Employee) {
	s.dispatch(ActionSetAll, "", func(st *State) bool {
		st.Employees = append([]Employee{}, records...)
		return true
	})
}

// Add appends the draft under a freshly generated id and returns the record.
func (s *Store) Add(form Form) Employee {
	created := form.Employee(s.newID())
	s.dispatch(ActionAdd, created.ID, func(st *State) bool {
		st.Employees = append(st.Employees, created)
		return true
	})
	return created
}

// Update merges patch into the record with the given id. Unknown ids are a
// no-op and report false.
func (s *Store) Update(id string, patch Patch) (Employee, bool) {
	var (
		updated Employee
		found   bool
	)
	s.dispatch(ActionUpdate, id, func(st *State) bool {
		for i := range st.Employees {
			if st.Employees[i].ID == id {
				st.Employees[i].Apply(patch)
				updated = st.Employees[i]
				found = true
				return true
			}
		}
		return false
	})
	return updated, found
}

// Remove drops the record with the given id. Unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	var removed bool
	s.dispatch(ActionRemove, id, func(st *State) bool {
		for i, e := range st.Employees {
			if e.ID == id {
				kept := make([]Employee, 0, len(st.Employees)-1)
				kept = append(kept, st.Employees[:i]...)
				st.Employees = append(kept, st.Employees[i+1:]...)
				removed = true
				return true
			}
		}
		return false
	})
	return removed
}

// SetFilters shallow-merges patch into the filters. A search or size change
// without an explicit page sends the list back to page 1.
func (s *Store) SetFilters(patch FilterPatch) {
	s.dispatch(ActionSetFilters, "", func(st *State) bool {
		f := st.Filters
		reset := false
		if patch.SearchText != nil && *patch.SearchText != f.SearchText {
			f.SearchText = *patch.SearchText
			reset = true
		}
		if patch.Size != nil {
			size := s.clampSize(*patch.Size)
			if size != f.Size {
				f.Size = size
				reset = true
			}
		}
		switch {
		case patch.Page != nil:
			f.Page = clampPage(*patch.Page)
		case reset:
			f.Page = 1
		}
		st.Filters = f
		return true
	})
}

// SetPage moves to page n; values below 1 select the first page.
func (s *Store) SetPage(n int) {
	s.dispatch(ActionSetPage, "", func(st *State) bool {
		st.Filters.Page = clampPage(n)
		return true
	})
}

// SetSize changes the page length; a different size returns to page 1.
func (s *Store) SetSize(n int) {
	s.dispatch(ActionSetSize, "", func(st *State) bool {
		size := s.clampSize(n)
		if size != st.Filters.Size {
			st.Filters.Size = size
			st.Filters.Page = 1
		}
		return true
	})
}

// SetSearchText changes the name query; a different query returns to page 1.
func (s *Store) SetSearchText(text string) {
	s.dispatch(ActionSetSearchText, "", func(st *State) bool {
		if text != st.Filters.SearchText {
			st.Filters.SearchText = text
			st.Filters.Page = 1
		}
		return true
	})
}

// ResetFilters restores page 1, the default size and an empty search.
func (s *Store) ResetFilters() {
	s.dispatch(ActionResetFilters, "", func(st *State) bool {
		st.Filters = s.defaultFilters()
		return true
	})
}

// SetLoading sets the flag shown while a save is in flight.
func (s *Store) SetLoading(loading bool) {
	s.dispatch(ActionSetLoading, "", func(st *State) bool {
		st.Loading = loading
		return true
	})
}

// SetError sets or, with nil, clears the error flag.
func (s *Store) SetError(msg *string) {
	var v *string
	if msg != nil {
		m := *msg
		v = &m
	}
	s.dispatch(ActionSetError, "", func(st *State) bool {
		st.Error = v
		return true
	})
}

// SetForm replaces the draft; nil restores the empty template.
func (s *Store) SetForm(form *Form) {
	var f Form
	if form != nil {
		f = *form
	}
	s.dispatch(ActionSetForm, "", func(st *State) bool {
		st.Form = f
		return true
	})
}

// SetFormField applies one field change to the draft. Unknown fields leave
// the draft untouched and report false.
func (s *Store) SetFormField(field, value string) bool {
	var ok bool
	s.dispatch(ActionSetFormField, "", func(st *State) bool {
		ok = st.Form.Set(field, value)
		return ok
	})
	return ok
}

// EditForm loads the record with the given id into the draft.
func (s *Store) EditForm(id string) bool {
	var found bool
	s.dispatch(ActionSetForm, id, func(st *State) bool {
		for _, e := range st.Employees {
			if e.ID == id {
				st.Form = e.Form()
				found = true
				return true
			}
		}
		return false
	})
	return found
}

// ResetForm restores the empty draft.
func (s *Store) ResetForm() {
	s.dispatch(ActionResetForm, "", func(st *State) bool {
		st.Form = Form{}
		return true
	})
}

// State returns a copy of the whole store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Employees returns a copy of every record in insertion order.
func (s *Store) Employees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee{}, s.state.Employees...)
}

// Filters returns the current list query.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Filters
}

// Loading reports whether a save is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// Error returns a copy of the error flag, or nil when it is clear.
func (s *Store) Error() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Error == nil {
		return nil
	}
	msg := *s.state.Error
	return &msg
}

// Form returns the current draft.
func (s *Store) Form() Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Form
}

// FilteredList returns the records whose first or last name contains the
// search text, ignoring case. An empty search returns every record.
func (s *Store) FilteredList() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterEmployees(s.state.Employees, s.state.Filters.SearchText)
}

// PaginatedList returns the current page of FilteredList. A page past the
// end yields an empty slice.
func (s *Store) PaginatedList() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(filterEmployees(s.state.Employees, s.state.Filters.SearchText), s.state.Filters)
}

// Total is the length of FilteredList.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Filters.SearchText == "" {
		return len(s.state.Employees)
	}
	return len(filterEmployees(s.state.Employees, s.state.Filters.SearchText))
}

// ByID returns the first record with the given id.
func (s *Store) ByID(id string) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.state.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

func filterEmployees(all []Employee, search string) []Employee {
	if search == "" {
		return append([]Employee{}, all...)
	}
	lowered := strings.ToLower(search)
	out := make([]Employee, 0, len(all))
	for _, e := range all {
		if e.matches(lowered) {
			out = append(out, e)
		}
	}
	return out
}

// paginate slices out page f.Page. Bounds are checked before multiplying so
// arbitrarily large pages or sizes yield an empty page instead of
// overflowing.
func paginate(list []Employee, f Filters) []Employee {
	if len(list) == 0 || f.Page < 1 || f.Size < 1 {
		return []Employee{}
	}
	skipped := f.Page - 1
	if skipped > (len(list)-1)/f.Size {
		return []Employee{}
	}
	start := skipped * f.Size
	end := len(list)
	if f.Size < end-start {
		end = start + f.Size
	}
	return list[start:end]
}

func clampPage(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (s *Store) clampSize(n int) int {
	if n < 1 {
		return s.defaultSize
	}
	return n
}
