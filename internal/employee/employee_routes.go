package employee

import (
	"go-roster/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouteConfig limits how fast a single client may mutate the roster.
type RouteConfig struct {
	WriteRPS   float64
	WriteBurst int
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	cfg RouteConfig,
	logger *zap.Logger,
) {
	writeLimit := middleware.RateLimitByIP(rate.Limit(cfg.WriteRPS), cfg.WriteBurst)

	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", handler.List)
		employees.POST("", writeLimit, handler.Create)
		employees.POST("/validate", handler.Validate)
		employees.GET("/state", handler.State)
		employees.GET("/events", handler.Events)

		employees.GET("/filters", handler.GetFilters)
		employees.PUT("/filters", handler.SetFilters)
		employees.DELETE("/filters", handler.ResetFilters)

		employees.GET("/form", handler.GetForm)
		employees.PUT("/form", handler.SetForm)
		employees.PATCH("/form", handler.SetFormField)
		employees.DELETE("/form", handler.ResetForm)
		employees.POST("/form/edit/:id", handler.EditForm)
		employees.POST("/form/submit", writeLimit, handler.SubmitForm)

		employees.GET("/:id", handler.GetByID)
		employees.PUT("/:id", writeLimit, handler.Update)
		employees.DELETE("/:id", writeLimit, handler.Delete)
	}
}
