package employee

import (
	"context"
	"time"

	employeeerrors "go-roster/internal/employee/errors"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, form Form) ValidationErrors

	Filters(ctx context.Context) Filters
	SetFilters(ctx context.Context, patch FilterPatch) Filters
	ResetFilters(ctx context.Context) Filters

	Form(ctx context.Context) Form
	SetForm(ctx context.Context, form *Form) Form
	SetFormField(ctx context.Context, field, value string) (Form, error)
	EditForm(ctx context.Context, id string) (Form, error)
	ResetForm(ctx context.Context) Form
	SubmitForm(ctx context.Context, id string) (SubmitResult, error)

	State(ctx context.Context) State
	Subscribe(l Listener) (unsubscribe func())
}

// ServiceConfig tunes the save flow. SaveDelay simulates the latency of a
// remote save; Now is the validation clock.
type ServiceConfig struct {
	SaveDelay time.Duration
	Now       func() time.Time
}

type service struct {
	repo      Repository
	saveDelay time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, cfg ServiceConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      repo,
		saveDelay: cfg.SaveDelay,
		now:       now,
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	s.logger.Debug("list employees requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("page", q.Page),
		zap.Int("size", q.Size),
		zap.String("view", q.View),
	)

	var patch FilterPatch
	if size, ok := ViewSizes[q.View]; ok {
		patch.Size = &size
	}
	if q.Size > 0 {
		size := q.Size
		patch.Size = &size
	}
	if q.Search != nil {
		search := *q.Search
		patch.SearchText = &search
	}
	if q.Page > 0 {
		page := q.Page
		patch.Page = &page
	}
	if patch != (FilterPatch{}) {
		s.repo.SetFilters(patch)
	}

	// Derive everything from one snapshot so page, items and total agree.
	st := s.repo.State()
	filtered := filterEmployees(st.Employees, st.Filters.SearchText)
	return ListResult{
		Items:   paginate(filtered, st.Filters),
		Filters: st.Filters,
		Total:   len(filtered),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Employee, error) {
	if id == "" {
		return Employee{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, ok := s.repo.ByID(id)
	if !ok {
		s.logger.Debug("employee not found",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", id),
		)
		return Employee{}, employeeerrors.ErrEmployeeNotFound
	}
	return empl, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error) {
	return s.create(ctx, req.Form())
}

func (s *service) create(ctx context.Context, form Form) (Employee, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", form.Email),
	)

	if errs := ValidateAt(&form, s.now()); !errs.Valid() {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Int("invalid_fields", len(errs)),
		)
		return Employee{}, employeeerrors.ErrValidationFailed.WithDetails(errs)
	}

	var created Employee
	if err := s.commit(ctx, "create", func() {
		created = s.repo.Add(form)
	}); err != nil {
		return Employee{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", created.ID),
	)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error) {
	return s.update(ctx, id, req.Patch())
}

func (s *service) update(ctx context.Context, id string, patch Patch) (Employee, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	merged := current
	merged.Apply(patch)
	form := merged.Form()
	if errs := ValidateAt(&form, s.now()); !errs.Valid() {
		s.logger.Warn("update employee validation failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Int("invalid_fields", len(errs)),
		)
		return Employee{}, employeeerrors.ErrValidationFailed.WithDetails(errs)
	}

	// Commit the record that passed validation, not patch re-applied to
	// whatever the store holds once the save delay is over.
	validated := form.Patch()
	var (
		updated Employee
		found   bool
	)
	if err := s.commit(ctx, "update", func() {
		updated, found = s.repo.Update(id, validated)
	}); err != nil {
		return Employee{}, err
	}
	// Removed by someone else while the save was in flight.
	if !found {
		return Employee{}, employeeerrors.ErrEmployeeNotFound
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	var removed bool
	if err := s.commit(ctx, "delete", func() {
		removed = s.repo.Remove(id)
	}); err != nil {
		return err
	}
	if !removed {
		return employeeerrors.ErrEmployeeNotFound
	}

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) Validate(ctx context.Context, form Form) ValidationErrors {
	return ValidateAt(&form, s.now())
}

// commit runs mutate inside the loading window. The simulated save delay
// honours ctx: a cancelled save leaves the store untouched and sets the
// error flag.
func (s *service) commit(ctx context.Context, op string, mutate func()) error {
	s.repo.SetLoading(true)
	defer s.repo.SetLoading(false)

	if err := s.wait(ctx); err != nil {
		msg := "Failed to " + op + " employee"
		s.repo.SetError(&msg)
		s.logger.Warn("employee save cancelled",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("op", op),
			zap.Error(err),
		)
		return apperror.Wrap(err,
			employeeerrors.ErrSaveCancelled.Code,
			employeeerrors.ErrSaveCancelled.Message,
			employeeerrors.ErrSaveCancelled.HTTPStatus,
		)
	}

	mutate()
	s.repo.SetError(nil)
	return nil
}

func (s *service) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.saveDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *service) Filters(ctx context.Context) Filters {
	return s.repo.Filters()
}

func (s *service) SetFilters(ctx context.Context, patch FilterPatch) Filters {
	s.repo.SetFilters(patch)
	return s.repo.Filters()
}

func (s *service) ResetFilters(ctx context.Context) Filters {
	s.repo.ResetFilters()
	return s.repo.Filters()
}

func (s *service) Form(ctx context.Context) Form {
	return s.repo.Form()
}

func (s *service) SetForm(ctx context.Context, form *Form) Form {
	s.repo.SetForm(form)
	return s.repo.Form()
}

func (s *service) SetFormField(ctx context.Context, field, value string) (Form, error) {
	if !s.repo.SetFormField(field, value) {
		s.logger.Debug("unknown form field",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("field", field),
		)
		return Form{}, employeeerrors.ErrUnknownFormField.WithDetails(field)
	}
	return s.repo.Form(), nil
}

func (s *service) EditForm(ctx context.Context, id string) (Form, error) {
	if !s.repo.EditForm(id) {
		return Form{}, employeeerrors.ErrEmployeeNotFound
	}
	return s.repo.Form(), nil
}

func (s *service) ResetForm(ctx context.Context) Form {
	s.repo.ResetForm()
	return s.repo.Form()
}

// SubmitForm commits the draft: as a new employee when id is empty, as an
// update of id otherwise. The draft is cleared only after a successful save.
func (s *service) SubmitForm(ctx context.Context, id string) (SubmitResult, error) {
	form := s.repo.Form()

	var (
		empl Employee
		err  error
	)
	if id == "" {
		empl, err = s.create(ctx, form)
	} else {
		empl, err = s.update(ctx, id, form.Patch())
	}
	if err != nil {
		return SubmitResult{}, err
	}

	s.repo.ResetForm()
	return SubmitResult{Employee: empl, Created: id == ""}, nil
}

func (s *service) State(ctx context.Context) State {
	return s.repo.State()
}

func (s *service) Subscribe(l Listener) func() {
	return s.repo.Subscribe(l)
}
