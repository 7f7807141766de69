package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-roster/internal/employee"
	employeeerrors "go-roster/internal/employee/errors"
	"go-roster/internal/shared/contextutil"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeEmployeeService struct {
	ListFn         func(ctx context.Context, q employee.ListQuery) (employee.ListResult, error)
	GetByIDFn      func(ctx context.Context, id string) (employee.Employee, error)
	CreateFn       func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	UpdateFn       func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error)
	DeleteFn       func(ctx context.Context, id string) error
	ValidateFn     func(ctx context.Context, form employee.Form) employee.ValidationErrors
	FiltersFn      func(ctx context.Context) employee.Filters
	SetFiltersFn   func(ctx context.Context, patch employee.FilterPatch) employee.Filters
	ResetFiltersFn func(ctx context.Context) employee.Filters
	FormFn         func(ctx context.Context) employee.Form
	SetFormFn      func(ctx context.Context, form *employee.Form) employee.Form
	SetFormFieldFn func(ctx context.Context, field, value string) (employee.Form, error)
	EditFormFn     func(ctx context.Context, id string) (employee.Form, error)
	ResetFormFn    func(ctx context.Context) employee.Form
	SubmitFormFn   func(ctx context.Context, id string) (employee.SubmitResult, error)
	StateFn        func(ctx context.Context) employee.State
	SubscribeFn    func(l employee.Listener) func()
}

func (f *fakeEmployeeService) List(ctx context.Context, q employee.ListQuery) (employee.ListResult, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) Validate(ctx context.Context, form employee.Form) employee.ValidationErrors {
	return f.ValidateFn(ctx, form)
}
func (f *fakeEmployeeService) Filters(ctx context.Context) employee.Filters {
	return f.FiltersFn(ctx)
}
func (f *fakeEmployeeService) SetFilters(ctx context.Context, patch employee.FilterPatch) employee.Filters {
	return f.SetFiltersFn(ctx, patch)
}
func (f *fakeEmployeeService) ResetFilters(ctx context.Context) employee.Filters {
	return f.ResetFiltersFn(ctx)
}
func (f *fakeEmployeeService) Form(ctx context.Context) employee.Form {
	return f.FormFn(ctx)
}
func (f *fakeEmployeeService) SetForm(ctx context.Context, form *employee.Form) employee.Form {
	return f.SetFormFn(ctx, form)
}
func (f *fakeEmployeeService) SetFormField(ctx context.Context, field, value string) (employee.Form, error) {
	return f.SetFormFieldFn(ctx, field, value)
}
func (f *fakeEmployeeService) EditForm(ctx context.Context, id string) (employee.Form, error) {
	return f.EditFormFn(ctx, id)
}
func (f *fakeEmployeeService) ResetForm(ctx context.Context) employee.Form {
	return f.ResetFormFn(ctx)
}
func (f *fakeEmployeeService) SubmitForm(ctx context.Context, id string) (employee.SubmitResult, error) {
	return f.SubmitFormFn(ctx, id)
}
func (f *fakeEmployeeService) State(ctx context.Context) employee.State {
	return f.StateFn(ctx)
}
func (f *fakeEmployeeService) Subscribe(l employee.Listener) func() {
	return f.SubscribeFn(l)
}

// upperLocalizer marks localized messages so tests can tell them apart.
type upperLocalizer struct {
	lang string
}

func (l *upperLocalizer) LocalizeErrors(lang string, errs employee.ValidationErrors) map[string]string {
	l.lang = lang
	out := make(map[string]string, len(errs))
	for field, fe := range errs {
		out[field] = strings.ToUpper(lang) + ":" + fe.Kind
	}
	return out
}

type envelope struct {
	Ok    bool                     `json:"ok"`
	Data  json.RawMessage          `json:"data"`
	Meta  *response.PaginationMeta `json:"meta"`
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func withLanguage(c *gin.Context, lang string) {
	c.Request = c.Request.WithContext(contextutil.WithLanguage(c.Request.Context(), lang))
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, q employee.ListQuery) (employee.ListResult, error) {
				assert.Equal(t, 2, q.Page)
				assert.Equal(t, employee.ViewCard, q.View)
				require.NotNil(t, q.Search)
				assert.Equal(t, "ada", *q.Search)
				return employee.ListResult{
					Items:   []employee.Employee{validForm().Employee("id-1")},
					Filters: employee.Filters{Page: 2, Size: 6, SearchText: "ada"},
					Total:   40,
				}, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?page=2&view=card&q=ada", "")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(40), env.Meta.Total)
		assert.Equal(t, 7, env.Meta.TotalPages)
		assert.Equal(t, 6, env.Meta.PageSize)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 0, 7}, env.Meta.Pages)
		assert.Contains(t, string(env.Data), `"firstName":"Ada"`)
	})

	t.Run("absent search stays nil", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, q employee.ListQuery) (employee.ListResult, error) {
				assert.Nil(t, q.Search)
				return employee.ListResult{Items: []employee.Employee{}, Filters: employee.Filters{Page: 1, Size: 10}}, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees", "")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid view", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, nil)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees?view=grid", "")

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w).Error.Code)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
				assert.Equal(t, "missing", id)
				return employee.Employee{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees/missing", "")
		c.Params = gin.Params{{Key: "id", Value: "missing"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("unexpected error is not leaked", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
				return employee.Employee{}, errors.New("boom")
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/api/v1/employees/x", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
				assert.Equal(t, "Ada", req.FirstName)
				assert.Equal(t, "1990-05-20", req.DateOfBirth)
				return req.Form().Employee("id-1"), nil
			},
		}
		h := employee.NewHandler(svc, nil)
		body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@company.com","phone":"0532 123 45 67",
			"department":"Tech","position":"Senior","dateOfEmployment":"2020-01-01","dateOfBirth":"1990-05-20"}`
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", body)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"id-1"`)
	})

	t.Run("validation failed is localized", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
				return employee.Employee{}, employeeerrors.ErrValidationFailed.WithDetails(employee.ValidationErrors{
					employee.FieldEmail: {Kind: employee.KindEmail},
				})
			},
		}
		loc := &upperLocalizer{}
		h := employee.NewHandler(svc, loc)
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", `{"email":"x"}`)
		withLanguage(c, "tr")

		h.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.JSONEq(t, `{"email":"TR:validation.email"}`, string(env.Error.Details))
		assert.Equal(t, "tr", loc.lang)
	})

	t.Run("malformed json", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, nil)
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", `{"firstName":`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_UpdateAndDelete(t *testing.T) {
	t.Run("update sends only given fields", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
				assert.Equal(t, "id-1", id)
				require.NotNil(t, req.Position)
				assert.Equal(t, "Medior", *req.Position)
				assert.Nil(t, req.FirstName)
				e := validForm().Employee(id)
				e.Position = *req.Position
				return e, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPut, "/api/v1/employees/id-1", `{"position":"Medior"}`)
		c.Params = gin.Params{{Key: "id", Value: "id-1"}}

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"position":"Medior"`)
	})

	t.Run("delete", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error {
				assert.Equal(t, "id-1", id)
				return nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodDelete, "/api/v1/employees/id-1", "")
		c.Params = gin.Params{{Key: "id", Value: "id-1"}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
	})
}

func TestEmployeeHandler_Validate(t *testing.T) {
	svc := &fakeEmployeeService{
		ValidateFn: func(ctx context.Context, form employee.Form) employee.ValidationErrors {
			return employee.ValidateAt(&form, validationNow)
		},
	}
	h := employee.NewHandler(svc, nil)
	c, w := newTestContext(http.MethodPost, "/api/v1/employees/validate", `{"firstName":"Ada"}`)

	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got employee.ValidationResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.False(t, got.Valid)
	assert.Len(t, got.Errors, len(employee.Fields)-1)
	assert.Equal(t, employee.KindRequired, got.Errors[employee.FieldLastName])
}

func TestEmployeeHandler_FiltersAndForm(t *testing.T) {
	t.Run("set filters", func(t *testing.T) {
		svc := &fakeEmployeeService{
			SetFiltersFn: func(ctx context.Context, patch employee.FilterPatch) employee.Filters {
				require.NotNil(t, patch.SearchText)
				assert.Nil(t, patch.Page)
				return employee.Filters{Page: 1, Size: 10, SearchText: *patch.SearchText}
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPut, "/api/v1/employees/filters", `{"searchText":"ada"}`)

		h.SetFilters(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"searchText":"ada"`)
	})

	t.Run("set filters rejects page zero", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, nil)
		c, w := newTestContext(http.MethodPut, "/api/v1/employees/filters", `{"page":0}`)

		h.SetFilters(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("set form null restores template", func(t *testing.T) {
		svc := &fakeEmployeeService{
			SetFormFn: func(ctx context.Context, form *employee.Form) employee.Form {
				assert.Nil(t, form)
				return employee.Form{}
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPut, "/api/v1/employees/form", `{"form":null}`)

		h.SetForm(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown form field", func(t *testing.T) {
		svc := &fakeEmployeeService{
			SetFormFieldFn: func(ctx context.Context, field, value string) (employee.Form, error) {
				return employee.Form{}, employeeerrors.ErrUnknownFormField.WithDetails(field)
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPatch, "/api/v1/employees/form", `{"field":"salary","value":"1"}`)

		h.SetFormField(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "salary")
	})

	t.Run("submit created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			SubmitFormFn: func(ctx context.Context, id string) (employee.SubmitResult, error) {
				assert.Empty(t, id)
				return employee.SubmitResult{Employee: validForm().Employee("id-9"), Created: true}, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/api/v1/employees/form/submit", "")

		h.SubmitForm(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("submit update", func(t *testing.T) {
		svc := &fakeEmployeeService{
			SubmitFormFn: func(ctx context.Context, id string) (employee.SubmitResult, error) {
				assert.Equal(t, "id-9", id)
				return employee.SubmitResult{Employee: validForm().Employee(id)}, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/api/v1/employees/form/submit?id=id-9", "")

		h.SubmitForm(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// closeNotifyRecorder adds the CloseNotify support gin's Stream needs.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestEmployeeHandler_Events(t *testing.T) {
	defer goleak.VerifyNone(t)

	subscribed := make(chan employee.Listener, 1)
	unsubscribed := make(chan struct{})
	svc := &fakeEmployeeService{
		StateFn: func(ctx context.Context) employee.State {
			return employee.State{Employees: []employee.Employee{}, Filters: employee.Filters{Page: 1, Size: 10}}
		},
		SubscribeFn: func(l employee.Listener) func() {
			subscribed <- l
			return func() { close(unsubscribed) }
		},
	}
	h := employee.NewHandler(svc, nil, zap.NewNop())

	gin.SetMode(gin.TestMode)
	rec := &closeNotifyRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	c, _ := gin.CreateTestContext(rec)
	ctx, cancel := context.WithCancel(context.Background())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Events(c)
	}()

	listener := <-subscribed
	listener(employee.Change{
		Action:     employee.ActionAdd,
		EmployeeID: "id-1",
		Applied:    true,
		State: employee.State{
			Employees: []employee.Employee{validForm().Employee("id-1")},
			Filters:   employee.Filters{Page: 1, Size: 10},
			Version:   7,
		},
	})

	// Give the stream a moment to write the change before disconnecting.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event stream did not stop after the client went away")
	}
	<-unsubscribed

	body := rec.Body.String()
	assert.Contains(t, body, "event:snapshot")
	assert.Contains(t, body, "event:employees/add")
	assert.Contains(t, body, `"version":7`)
	assert.Contains(t, body, `"total":1`)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}
