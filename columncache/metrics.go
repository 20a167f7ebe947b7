package columncache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts column cache traffic per table.
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewMetrics registers the column cache counters with reg. A nil reg
// creates unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "column_cache_hits_total",
			Help: "Number of column listings served from the cache, per table.",
		}, []string{"table"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "column_cache_misses_total",
			Help: "Number of column listings that required schema introspection, per table.",
		}, []string{"table"}),
		invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "column_cache_invalidations_total",
			Help: "Number of invalidated column listings, per table.",
		}, []string{"table"}),
	}
}

func (m *Metrics) hit(table string) {
	if m != nil {
		m.hits.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) miss(table string) {
	if m != nil {
		m.misses.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) invalidated(table string) {
	if m != nil {
		m.invalidations.WithLabelValues(table).Inc()
	}
}
