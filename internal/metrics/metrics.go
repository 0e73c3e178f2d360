// Package metrics exposes Prometheus counters for dashboard activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dashboard backend.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry owns these metrics; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	viewTransitions *prometheus.CounterVec
	activeViews     prometheus.Gauge
	rateRefreshes   prometheus.Counter
	exchangeRate    prometheus.Gauge
	authPushes      *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
}

// NewMetrics creates a private registry so repeated construction in tests
// never hits duplicate collector registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		viewTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_dashboard_view_transitions_total",
				Help: "Dashboard view state transitions.",
			},
			[]string{"transition"},
		),
		activeViews: factory.NewGauge(prometheus.GaugeOpts{
			Name: "caja_dashboard_active_views",
			Help: "Dashboard views currently active.",
		}),
		rateRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Name: "caja_exchange_rate_refreshes_total",
			Help: "Manual exchange rate refreshes.",
		}),
		exchangeRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "caja_exchange_rate",
			Help: "Most recently refreshed exchange rate.",
		}),
		authPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_auth_state_pushes_total",
				Help: "Values pushed on authentication-state streams.",
			},
			[]string{"kind"},
		),
		sourceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caja_snapshot_source_errors_total",
				Help: "Errors loading dashboard data.",
			},
			[]string{"source"},
		),
	}
}

// Handler returns the HTTP handler serving this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ViewActivated records an Inactive→Active transition
func (m *Metrics) ViewActivated() {
	if m == nil {
		return
	}
	m.viewTransitions.WithLabelValues("activate").Inc()
	m.activeViews.Inc()
}

// ViewDeactivated records an Active→Inactive transition
func (m *Metrics) ViewDeactivated() {
	if m == nil {
		return
	}
	m.viewTransitions.WithLabelValues("deactivate").Inc()
	m.activeViews.Dec()
}

// ExchangeRateRefreshed records a refresh and the resulting rate
func (m *Metrics) ExchangeRateRefreshed(rate float64) {
	if m == nil {
		return
	}
	m.rateRefreshes.Inc()
	m.exchangeRate.Set(rate)
}

// AuthStatePushed records a value pushed on an authentication-state stream
func (m *Metrics) AuthStatePushed(loggedIn bool) {
	if m == nil {
		return
	}
	kind := "logout"
	if loggedIn {
		kind = "login"
	}
	m.authPushes.WithLabelValues(kind).Inc()
}

// SourceError records a failure loading dashboard data
func (m *Metrics) SourceError(source string) {
	if m == nil {
		return
	}
	m.sourceErrors.WithLabelValues(source).Inc()
}
