package collect

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "followgraph"

// Metrics holds the Prometheus counters for the fetch loop. A nil *Metrics is a no-op.
type Metrics struct {
	Attempts    *prometheus.CounterVec
	Exhausted   prometheus.Counter
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	Collected   prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_attempts_total",
				Help:      "Total number of API requests attempted, by outcome",
			},
			[]string{"outcome"},
		),
		Exhausted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_exhausted_total",
				Help:      "Total number of requests that failed on every attempt",
			},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of friend lists served from cache",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of friend lists not found in cache",
			},
		),
		Collected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_collected_total",
				Help:      "Total number of entities whose friend list was collected",
			},
		),
	}

	reg.MustRegister(m.Attempts, m.Exhausted, m.CacheHits, m.CacheMisses, m.Collected)
	return m
}

func (m *Metrics) attempt(outcome string) {
	if m != nil {
		m.Attempts.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) exhausted() {
	if m != nil {
		m.Exhausted.Inc()
	}
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) collected() {
	if m != nil {
		m.Collected.Inc()
	}
}
