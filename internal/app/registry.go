package app

import (
	"net/http"

	"go-roster/internal/config"
	"go-roster/internal/employee"
	"go-roster/internal/locale"
	"go-roster/internal/metrics"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type modules struct {
	config     config.Config
	store      *employee.Store
	translator *locale.Translator
	switcher   *locale.Switcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func registerModules(router *gin.Engine, m modules) {
	// --- Services ---
	employeeService := employee.NewService(m.store, employee.ServiceConfig{
		SaveDelay: m.config.SaveDelay,
	}, m.logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, m.translator, m.logger)
	localeHandler := locale.NewHandler(m.translator, m.switcher, m.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, employee.RouteConfig{
			WriteRPS:   m.config.RateLimitRPS,
			WriteBurst: m.config.RateLimitBurst,
		}, m.logger)
		locale.RegisterRoutes(api, localeHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "employees": m.store.Total()}, nil)
	})
	router.GET("/metrics", gin.WrapH(m.metrics.Handler()))
}
