// Package metrics exposes Prometheus instruments for the account lifecycle.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "user_service"

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeUnchanged  = "unchanged"
	OutcomeBadRequest = "bad_request"
	OutcomeConflict   = "conflict"
	OutcomeForbidden  = "forbidden"
	OutcomeError      = "error"
	OutcomeExisting   = "existing"
	OutcomeCreated    = "created"
)

type Metrics struct {
	registrations   *prometheus.CounterVec
	settingsUpdates *prometheus.CounterVec
	bootstrap       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Account registrations by outcome.",
		}, []string{"outcome"}),
		settingsUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_updates_total",
			Help:      "Account settings updates by outcome.",
		}, []string{"outcome"}),
		bootstrap: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_bootstrap_total",
			Help:      "Administrative account bootstrap runs by outcome.",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.registrations, m.settingsUpdates, m.bootstrap, m.requestDuration)
	return m
}

func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SettingsUpdate(outcome string) {
	if m == nil {
		return
	}
	m.settingsUpdates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Bootstrap(outcome string) {
	if m == nil {
		return
	}
	m.bootstrap.WithLabelValues(outcome).Inc()
}

// GinMiddleware records request latency labelled by the matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
