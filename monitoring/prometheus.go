package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SourceDuration *prometheus.HistogramVec
	SourceErrors   *prometheus.CounterVec
	SourceRequests *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Duration of source fetches",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"source", "operation"}),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "source_errors_total",
			Help: "Number of source fetches that exhausted every mirror",
		}, []string{"source"}),
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "source_requests_total",
			Help: "Number of source fetches",
		}, []string{"source"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of response cache hits",
		}, []string{"source"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of response cache misses",
		}, []string{"source"}),
	}
}

func (m *Metrics) Register() {
	prometheus.MustRegister(m.SourceDuration)
	prometheus.MustRegister(m.SourceErrors)
	prometheus.MustRegister(m.SourceRequests)
	prometheus.MustRegister(m.CacheHits)
	prometheus.MustRegister(m.CacheMisses)
}
