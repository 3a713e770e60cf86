package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kisansaathi"

// Metrics holds the Prometheus collectors for the API. All methods are safe
// on a nil receiver so callers can run with metrics disabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	searches       *prometheus.CounterVec
	candidates     *prometheus.HistogramVec
	rankerLatency  *prometheus.HistogramVec
	rankerFailures *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	dataQuality    *prometheus.CounterVec
}

// NewMetrics registers every collector on a private registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "api", Name: "request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "api", Name: "inflight_requests",
			Help: "In-flight API requests.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "scheme_search", Name: "total",
			Help: "Scheme searches by outcome (ranked, ranked_cached, fallback).",
		}, []string{"outcome"}),
		candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "scheme_search", Name: "prefilter_matches",
			Help:    "Records kept by the keyword pre-filter before the ranker cap.",
			Buckets: []float64{0, 1, 2, 3, 5, 7, 10, 15, 25, 50},
		}, []string{"defaulted"}),
		rankerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "ranker", Name: "duration_seconds",
			Help:    "Ranker provider call latency by result.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"result"}),
		rankerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ranker", Name: "failures_total",
			Help: "Ranker failures that triggered the keyword fallback, by reason.",
		}, []string{"reason"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ranking_cache", Name: "lookups_total",
			Help: "Ranking cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		dataQuality: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "data_quality_issues_total",
			Help: "Data quality issues by stage and issue.",
		}, []string{"stage", "issue"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.searches, m.candidates, m.rankerLatency, m.rankerFailures,
		m.cacheLookups, m.dataQuality,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) IncSearch(outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePrefilter(matched int, defaulted bool) {
	if m == nil {
		return
	}
	label := "false"
	if defaulted {
		label = "true"
	}
	m.candidates.WithLabelValues(label).Observe(float64(matched))
}

func (m *Metrics) ObserveRanker(dur time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.rankerLatency.WithLabelValues(result).Observe(dur.Seconds())
}

func (m *Metrics) IncRankerFailure(reason string) {
	if m == nil {
		return
	}
	m.rankerFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) AddDataQuality(stage, issue string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dataQuality.WithLabelValues(stage, issue).Add(float64(n))
}
