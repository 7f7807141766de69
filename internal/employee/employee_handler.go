package employee

import (
	"io"
	"net/http"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/contextutil"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Localizer renders validation errors in the request language.
type Localizer interface {
	LocalizeErrors(lang string, errs ValidationErrors) map[string]string
}

// streamBuffer bounds the changes queued for one event stream client. A
// client that falls further behind misses intermediate changes.
const streamBuffer = 32

type Handler struct {
	service   Service
	localizer Localizer
	logger    *zap.Logger
}

func NewHandler(service Service, localizer Localizer, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, localizer: localizer, logger: l}
}

func (h *Handler) lang(c *gin.Context) string {
	return contextutil.GetLanguage(c.Request.Context())
}

func (h *Handler) localize(c *gin.Context, errs ValidationErrors) map[string]string {
	if h.localizer == nil {
		out := make(map[string]string, len(errs))
		for field, fe := range errs {
			out[field] = fe.Kind
		}
		return out
	}
	return h.localizer.LocalizeErrors(h.lang(c), errs)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if errs, ok := httpErr.Details.(ValidationErrors); ok {
		httpErr.Details = h.localize(c, errs)
	}
	h.logger.Warn("employee request failed",
		zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http employee request binding failed", zap.Error(err))
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(result.Total), result.Filters.Page, result.Filters.Size)
	response.Success(c, http.StatusOK, result.Items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	empl, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, empl, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	empl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, empl, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	empl, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, empl, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "id": id}, nil)
}

// Validate checks a draft without committing it. An invalid draft is a
// normal answer here, not an error.
func (h *Handler) Validate(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	errs := h.service.Validate(c.Request.Context(), req.Form())
	response.Success(c, http.StatusOK, ValidationResponse{
		Valid:  errs.Valid(),
		Errors: h.localize(c, errs),
	}, nil)
}

func (h *Handler) GetFilters(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Filters(c.Request.Context()), nil)
}

func (h *Handler) SetFilters(c *gin.Context) {
	var req SetFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.SetFilters(c.Request.Context(), req.Patch()), nil)
}

func (h *Handler) ResetFilters(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ResetFilters(c.Request.Context()), nil)
}

func (h *Handler) GetForm(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Form(c.Request.Context()), nil)
}

// SetForm replaces the whole draft. A missing or null form restores the
// empty template.
func (h *Handler) SetForm(c *gin.Context) {
	var req SetFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.SetForm(c.Request.Context(), req.Form), nil)
}

func (h *Handler) SetFormField(c *gin.Context) {
	var req FormFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	form, err := h.service.SetFormField(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form, nil)
}

func (h *Handler) ResetForm(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ResetForm(c.Request.Context()), nil)
}

func (h *Handler) EditForm(c *gin.Context) {
	form, err := h.service.EditForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form, nil)
}

// SubmitForm commits the draft. With ?id= it updates that employee,
// otherwise it creates a new one.
func (h *Handler) SubmitForm(c *gin.Context) {
	result, err := h.service.SubmitForm(c.Request.Context(), c.Query("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, result, nil)
}

func (h *Handler) State(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.State(c.Request.Context()), nil)
}

// StreamEvent is the payload of one server-sent event.
type StreamEvent struct {
	Action     Action  `json:"action"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Applied    bool    `json:"applied"`
	Version    uint64  `json:"version"`
	Filters    Filters `json:"filters"`
	Total      int     `json:"total"`
	Loading    bool    `json:"loading"`
	Error      *string `json:"error"`
}

func newStreamEvent(ch Change) StreamEvent {
	return StreamEvent{
		Action:     ch.Action,
		EmployeeID: ch.EmployeeID,
		Applied:    ch.Applied,
		Version:    ch.State.Version,
		Filters:    ch.State.Filters,
		Total:      len(filterEmployees(ch.State.Employees, ch.State.Filters.SearchText)),
		Loading:    ch.State.Loading,
		Error:      ch.State.Error,
	}
}

// Events streams store changes as server-sent events until the client
// disconnects. The first event is a snapshot of the current state.
func (h *Handler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	changes := make(chan Change, streamBuffer)
	unsubscribe := h.service.Subscribe(func(ch Change) {
		select {
		case changes <- ch:
		default:
			h.logger.Debug("event stream client lagging, change dropped",
				zap.String("action", string(ch.Action)),
				zap.Uint64("version", ch.State.Version),
			)
		}
	})
	defer unsubscribe()

	rid := contextutil.GetRequestID(ctx)
	h.logger.Debug("event stream opened", zap.String("request_id", rid))
	defer h.logger.Debug("event stream closed", zap.String("request_id", rid))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	snapshot := true
	c.Stream(func(w io.Writer) bool {
		if snapshot {
			snapshot = false
			c.SSEvent("snapshot", h.service.State(ctx))
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case ch := <-changes:
			c.SSEvent(string(ch.Action), newStreamEvent(ch))
			return true
		}
	})
}
