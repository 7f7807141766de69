// Package metrics exposes roster and HTTP metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"go-roster/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roster"

// Metrics owns its registry so tests and multiple instances never collide on
// the global one.
type Metrics struct {
	registry *prometheus.Registry

	employees     prometheus.Gauge
	storeVersion  prometheus.Gauge
	loading       prometheus.Gauge
	mutationTotal *prometheus.CounterVec

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		employees: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "employees",
			Help:      "Number of employees currently in the roster.",
		}),
		storeVersion: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_version",
			Help:      "Version of the roster store after the last mutation.",
		}),
		loading: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "save_in_progress",
			Help:      "Whether a save is in flight (1/0).",
		}),
		mutationTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Total number of store mutations by action.",
		}, []string{"action", "applied"}),
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status class.",
		}, []string{"method", "route", "result"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "route"}),
	}
}

// Observe is a store listener.
func (m *Metrics) Observe(ch employee.Change) {
	m.employees.Set(float64(len(ch.State.Employees)))
	m.storeVersion.Set(float64(ch.State.Version))
	if ch.State.Loading {
		m.loading.Set(1)
	} else {
		m.loading.Set(0)
	}
	m.mutationTotal.WithLabelValues(string(ch.Action), strconv.FormatBool(ch.Applied)).Inc()
}

// Middleware records one sample per request. Unmatched routes share a single
// label so arbitrary paths cannot blow up the series count.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestTotal.WithLabelValues(c.Request.Method, route, resultClass(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func resultClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
