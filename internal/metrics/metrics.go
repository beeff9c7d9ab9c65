// Package metrics exposes Prometheus collectors for the API and the scheduler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segyhp/budget-planner/pkg/response"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	simulations     *prometheus.CounterVec
	planCache       *prometheus.CounterVec
	alerts          *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget_planner",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "budget_planner",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget_planner",
			Name:      "payoff_simulations_total",
			Help:      "Payoff simulations by strategy and convergence.",
		}, []string{"strategy", "converged"}),
		planCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget_planner",
			Name:      "plan_cache_lookups_total",
			Help:      "Plan cache lookups by result.",
		}, []string{"result"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "budget_planner",
			Name:      "task_alerts_total",
			Help:      "Task alerts by channel and delivery outcome.",
		}, []string{"channel", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.simulations,
		m.planCache,
		m.alerts,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := response.NewRecorder(w)

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(recorder.StatusCode)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Observe methods are no-ops on a nil *Metrics.

func (m *Metrics) ObserveSimulation(strategy string, converged bool) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(strategy, strconv.FormatBool(converged)).Inc()
}

// ObservePlanCache counts a lookup as hit, miss or error.
func (m *Metrics) ObservePlanCache(result string) {
	if m == nil {
		return
	}
	m.planCache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAlert(channel string, delivered bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if delivered {
		outcome = "delivered"
	}
	m.alerts.WithLabelValues(channel, outcome).Inc()
}
