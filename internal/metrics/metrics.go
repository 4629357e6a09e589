package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Metrics bundles the instrumentation the HTTP layer reports into.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	LoginAttempts    *prometheus.CounterVec
	SessionsActive   prometheus.Gauge
	QuotationsTotal  prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	UploadsTotal     *prometheus.CounterVec
	CleanupRowsTotal *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cms_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_login_attempts_total",
			Help: "Login attempts by outcome (success, failure, blocked).",
		}, []string{"outcome"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cms_sessions_active",
			Help: "Admin sessions currently tracked.",
		}),
		QuotationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cms_quotation_requests_total",
			Help: "Quotation requests submitted through the public form.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cms_cache_hits_total",
			Help: "Public responses served from cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cms_cache_misses_total",
			Help: "Public responses rendered on a cache miss.",
		}),
		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_media_uploads_total",
			Help: "Media uploads by outcome.",
		}, []string{"outcome"}),
		CleanupRowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_cleanup_rows_total",
			Help: "Rows removed by the maintenance cleanup, by table.",
		}, []string{"table"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.LoginAttempts,
		m.SessionsActive,
		m.QuotationsTotal,
		m.CacheHits,
		m.CacheMisses,
		m.UploadsTotal,
		m.CleanupRowsTotal,
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
