package employee_test

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"go-roster/internal/employee"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(opts ...employee.StoreOption) *employee.Store {
	opts = append([]employee.StoreOption{employee.WithIDGenerator(sequentialIDs())}, opts...)
	return employee.NewStore(opts...)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func named(first, last string) employee.Form {
	f := validForm()
	f.FirstName = first
	f.LastName = last
	return f
}

func TestStore_InitialState(t *testing.T) {
	s := employee.NewStore()

	want := employee.State{
		Employees: []employee.Employee{},
		Filters:   employee.Filters{Page: 1, Size: employee.DefaultPageSize},
	}
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AddUpdateRemove(t *testing.T) {
	s := newTestStore()

	created := s.Add(named("Ada", "Lovelace"))
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "Ada", created.FirstName)

	updated, ok := s.Update(created.ID, employee.Patch{Position: strPtr("Medior")})
	require.True(t, ok)
	assert.Equal(t, "Medior", updated.Position)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, created.ID, updated.ID)

	got, ok := s.ByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)

	assert.True(t, s.Remove(created.ID))
	_, ok = s.ByID(created.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Total())
}

func TestStore_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	s.Add(named("Ada", "Lovelace"))
	before := s.State()

	_, ok := s.Update("missing", employee.Patch{FirstName: strPtr("X")})
	assert.False(t, ok)
	assert.False(t, s.Remove("missing"))
	assert.False(t, s.EditForm("missing"))

	after := s.State()
	if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(employee.State{}, "Version")); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
}

func TestStore_SetAllCopiesInput(t *testing.T) {
	s := newTestStore()
	records := []employee.Employee{{ID: "a", FirstName: "Ada"}, {ID: "b", FirstName: "Bob"}}

	s.SetAll(records)
	records[0].FirstName = "changed"

	got, ok := s.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "Ada", got.FirstName)
}

func TestStore_ReturnedSlicesAreCopies(t *testing.T) {
	s := newTestStore()
	s.Add(named("Ada", "Lovelace"))

	list := s.Employees()
	list[0].FirstName = "changed"
	page := s.PaginatedList()
	page[0].FirstName = "changed"
	st := s.State()
	st.Employees[0].FirstName = "changed"

	got, _ := s.ByID("id-1")
	assert.Equal(t, "Ada", got.FirstName)
}

func TestStore_FilteredList(t *testing.T) {
	s := newTestStore()
	s.Add(named("Ada", "Lovelace"))
	s.Add(named("Grace", "Hopper"))
	s.Add(named("Alan", "Turing"))

	assert.Len(t, s.FilteredList(), 3)

	s.SetSearchText("HOP")
	got := s.FilteredList()
	require.Len(t, got, 1)
	assert.Equal(t, "Grace", got[0].FirstName)

	s.SetSearchText("a")
	assert.Len(t, s.FilteredList(), 3)
	assert.Equal(t, 3, s.Total())

	s.SetSearchText("nobody")
	assert.Empty(t, s.FilteredList())
	assert.Equal(t, 0, s.Total())
}

func TestStore_PaginatedList(t *testing.T) {
	s := newTestStore(employee.WithPageSize(2))
	for i := 0; i < 5; i++ {
		s.Add(named(fmt.Sprintf("N%d", i), "Smith"))
	}

	assert.Len(t, s.PaginatedList(), 2)

	s.SetPage(3)
	last := s.PaginatedList()
	require.Len(t, last, 1)
	assert.Equal(t, "N4", last[0].FirstName)

	s.SetPage(4)
	page := s.PaginatedList()
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestStore_PaginationWindows(t *testing.T) {
	s := newTestStore()
	for i := 1; i <= 15; i++ {
		s.Add(named(fmt.Sprintf("N%d", i), "Smith"))
	}

	firstNames := func(list []employee.Employee) []string {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.FirstName)
		}
		return out
	}

	tests := []struct {
		name string
		page int
		size int
		want []string
	}{
		{"first page", 1, 5, []string{"N1", "N2", "N3", "N4", "N5"}},
		{"second page", 2, 5, []string{"N6", "N7", "N8", "N9", "N10"}},
		{"last page", 3, 5, []string{"N11", "N12", "N13", "N14", "N15"}},
		{"past the end", 4, 5, []string{}},
		{"partial last page", 2, 10, []string{"N11", "N12", "N13", "N14", "N15"}},
		{"huge page", math.MaxInt, 5, []string{}},
		{"huge page and size", math.MaxInt, math.MaxInt, []string{}},
		{"huge size", 1, math.MaxInt, firstNames(s.Employees())},
		{"huge size second page", 2, math.MaxInt, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetFilters(employee.FilterPatch{Page: intPtr(tt.page), Size: intPtr(tt.size)})

			got := s.PaginatedList()
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, firstNames(got))
			assert.Equal(t, 15, s.Total())
		})
	}

	t.Run("huge page via SetPage", func(t *testing.T) {
		s.SetSize(5)
		s.SetPage(math.MaxInt)
		assert.Empty(t, s.PaginatedList())
		assert.Equal(t, math.MaxInt, s.Filters().Page)
	})
}

func TestStore_SearchScenarios(t *testing.T) {
	tests := []struct {
		name     string
		searches []string
		want     []string
	}{
		{"matches first name only", []string{"john"}, []string{"John Doe"}},
		{"matches last name ignoring case", []string{"SMITH"}, []string{"Jane Smith"}},
		{"shared letters", []string{"j"}, []string{"John Doe", "Jane Smith"}},
		{"cleared search restores the list", []string{"john", ""}, []string{"John Doe", "Jane Smith"}},
		{"no match", []string{"xyz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			s.Add(named("John", "Doe"))
			s.Add(named("Jane", "Smith"))

			for _, q := range tt.searches {
				s.SetSearchText(q)
			}

			got := []string{}
			for _, e := range s.FilteredList() {
				got = append(got, e.FirstName+" "+e.LastName)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), s.Total())
		})
	}
}

func TestStore_AddThenRemoveLeavesEmptyList(t *testing.T) {
	s := newTestStore()

	created := s.Add(validForm())
	require.True(t, s.Remove(created.ID))

	assert.Empty(t, s.Employees())
	assert.Equal(t, 0, s.Total())
	_, ok := s.ByID(created.ID)
	assert.False(t, ok)
}

func TestStore_FilterPageClamp(t *testing.T) {
	s := newTestStore()

	s.SetPage(3)
	s.SetSearchText("ada")
	assert.Equal(t, 1, s.Filters().Page)

	s.SetPage(3)
	s.SetSearchText("ada")
	assert.Equal(t, 3, s.Filters().Page, "same search text keeps the page")

	s.SetSize(6)
	assert.Equal(t, employee.Filters{Page: 1, Size: 6, SearchText: "ada"}, s.Filters())

	s.SetPage(2)
	s.SetFilters(employee.FilterPatch{Size: intPtr(6)})
	assert.Equal(t, 2, s.Filters().Page, "same size keeps the page")

	s.SetFilters(employee.FilterPatch{SearchText: strPtr("grace")})
	assert.Equal(t, 1, s.Filters().Page)

	s.SetFilters(employee.FilterPatch{SearchText: strPtr("alan"), Page: intPtr(4)})
	assert.Equal(t, employee.Filters{Page: 4, Size: 6, SearchText: "alan"}, s.Filters())

	s.SetPage(0)
	assert.Equal(t, 1, s.Filters().Page)
	s.SetSize(-1)
	assert.Equal(t, employee.DefaultPageSize, s.Filters().Size)

	s.ResetFilters()
	assert.Equal(t, employee.Filters{Page: 1, Size: employee.DefaultPageSize}, s.Filters())
}

func TestStore_LoadingAndError(t *testing.T) {
	s := newTestStore()

	s.SetLoading(true)
	assert.True(t, s.Loading())

	msg := "Failed to save employee"
	s.SetError(&msg)
	msg = "changed"
	require.NotNil(t, s.Error())
	assert.Equal(t, "Failed to save employee", *s.Error())

	s.SetLoading(false)
	require.NotNil(t, s.Error(), "error is cleared only explicitly")

	s.SetError(nil)
	assert.Nil(t, s.Error())
}

func TestStore_Form(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, employee.Form{}, s.Form())

	assert.True(t, s.SetFormField(employee.FieldFirstName, "Ada"))
	assert.False(t, s.SetFormField("salary", "1"))
	assert.Equal(t, "Ada", s.Form().FirstName)

	created := s.Add(validForm())
	require.True(t, s.EditForm(created.ID))
	assert.Equal(t, validForm(), s.Form())

	f := named("Grace", "Hopper")
	s.SetForm(&f)
	assert.Equal(t, "Grace", s.Form().FirstName)

	s.SetForm(nil)
	assert.Equal(t, employee.Form{}, s.Form())

	s.SetFormField(employee.FieldEmail, "x@y.zz")
	s.ResetForm()
	assert.Equal(t, employee.Form{}, s.Form())
}

func TestStore_ListenersSeeEveryMutationSynchronously(t *testing.T) {
	s := newTestStore()

	var changes []employee.Change
	unsubscribe := s.Subscribe(func(ch employee.Change) {
		changes = append(changes, ch)
	})

	created := s.Add(named("Ada", "Lovelace"))
	require.Len(t, changes, 1)
	assert.Equal(t, employee.ActionAdd, changes[0].Action)
	assert.Equal(t, created.ID, changes[0].EmployeeID)
	assert.True(t, changes[0].Applied)
	assert.Len(t, changes[0].State.Employees, 1)
	assert.Equal(t, uint64(1), changes[0].State.Version)

	s.Remove("missing")
	require.Len(t, changes, 2)
	assert.Equal(t, employee.ActionRemove, changes[1].Action)
	assert.False(t, changes[1].Applied)

	s.SetLoading(true)
	s.SetFilters(employee.FilterPatch{})
	assert.Len(t, changes, 4)

	unsubscribe()
	unsubscribe()
	s.ResetForm()
	assert.Len(t, changes, 4)
	assert.Equal(t, 0, s.Listeners())
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := newTestStore()

	var total int
	s.Subscribe(func(employee.Change) {
		total = s.Total()
	})

	s.Add(named("Ada", "Lovelace"))
	assert.Equal(t, 1, total)
}

func TestStore_ListenersRunInSubscriptionOrder(t *testing.T) {
	s := newTestStore()

	var order []int
	for i := 0; i < 5; i++ {
		s.Subscribe(func(employee.Change) { order = append(order, i) })
	}
	s.SetPage(2)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestStore_UnsubscribeOnlyRemovesOwnListener(t *testing.T) {
	s := newTestStore()

	var a, b int
	unsubA := s.Subscribe(func(employee.Change) { a++ })
	s.Subscribe(func(employee.Change) { b++ })
	assert.Equal(t, 2, s.Listeners())

	s.SetPage(2)
	unsubA()
	s.SetPage(3)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, s.Listeners())
}

func TestStore_ConcurrentListenersSeeIncreasingVersions(t *testing.T) {
	s := employee.NewStore()

	const listeners = 3
	seen := make([][]uint64, listeners)
	for i := range listeners {
		s.Subscribe(func(ch employee.Change) {
			seen[i] = append(seen[i], ch.State.Version)
		})
	}

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			created := s.Add(named(fmt.Sprintf("N%d", i), "Smith"))
			s.SetSearchText(created.FirstName)
			s.Update(created.ID, employee.Patch{Position: strPtr("Senior")})
		}(i)
	}
	wg.Wait()

	for i, versions := range seen {
		require.Len(t, versions, writers*3, "listener %d", i)
		for j := 1; j < len(versions); j++ {
			assert.Equal(t, versions[j-1]+1, versions[j], "listener %d saw versions out of order", i)
		}
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := employee.NewStore()

	var notified atomic.Int64
	s.Subscribe(func(employee.Change) { notified.Add(1) })

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			s.Add(named(fmt.Sprintf("N%d", i), "Smith"))
			_ = s.PaginatedList()
			_ = s.State()
		}(i)
	}
	wg.Wait()

	st := s.State()
	assert.Len(t, st.Employees, writers)
	assert.Equal(t, uint64(writers), st.Version)
	assert.Equal(t, int64(writers), notified.Load())

	ids := make(map[string]bool, writers)
	for _, e := range st.Employees {
		ids[e.ID] = true
	}
	assert.Len(t, ids, writers, "generated ids are unique")
}
