package locale

import (
	"net/http"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChangeLanguageRequest struct {
	Lang string `json:"lang" binding:"required"`
}

type LanguageResponse struct {
	Current   string              `json:"current"`
	Session   string              `json:"session"`
	Supported []SupportedLanguage `json:"supported"`
}

type Handler struct {
	translator *Translator
	switcher   *Switcher
	cookieAge  int
	logger     *zap.Logger
}

func NewHandler(t *Translator, sw *Switcher, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("locale.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("locale.handler")
	}
	return &Handler{
		translator: t,
		switcher:   sw,
		cookieAge:  365 * 24 * 60 * 60,
		logger:     l,
	}
}

func (h *Handler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.view(FromContext(c, h.switcher.Current())), nil)
}

// Change switches the session language and remembers it in a cookie.
func (h *Handler) Change(c *gin.Context) {
	var req ChangeLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	if !h.switcher.Change(req.Lang) {
		h.logger.Warn("unsupported language requested", zap.String("lang", req.Lang))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Unsupported language", req.Lang)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, req.Lang, h.cookieAge, "/", "", false, true)
	c.Header("Content-Language", req.Lang)
	response.Success(c, http.StatusOK, h.view(req.Lang), nil)
}

func (h *Handler) view(current string) LanguageResponse {
	return LanguageResponse{
		Current:   current,
		Session:   h.switcher.Current(),
		Supported: h.translator.Supported(),
	}
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	locale := r.Group("/locale")
	{
		locale.GET("", handler.Get)
		locale.PUT("", handler.Change)
	}
}
