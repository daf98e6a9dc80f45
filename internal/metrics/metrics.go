package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all API metrics.
type Registry struct {
	// HTTP metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec

	// Auth metrics
	LoginAttempts *prometheus.CounterVec

	// Content metrics
	MessagesReceived prometheus.Counter
	CacheLookups     *prometheus.CounterVec
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	r.APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_api_requests_total",
		Help: "Total API requests by route, method and status",
	}, []string{"route", "method", "status"})

	r.APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_api_request_duration_seconds",
		Help:    "API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	r.LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_login_attempts_total",
		Help: "Admin login attempts by result",
	}, []string{"result"})

	r.MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_messages_received_total",
		Help: "Contact messages accepted",
	})

	r.CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_lookups_total",
		Help: "Read model cache lookups by key and result",
	}, []string{"key", "result"})

	return r
}

// RecordLogin counts a login attempt. result is "success" or "failure".
func (r *Registry) RecordLogin(result string) {
	r.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordCacheLookup counts a cache hit or miss for key.
func (r *Registry) RecordCacheLookup(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(key, result).Inc()
}

// Middleware records request count and latency per matched route.
func Middleware() echo.MiddlewareFunc {
	m := Get()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.APIRequests.WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).Inc()
			m.APILatency.WithLabelValues(route, c.Request().Method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
