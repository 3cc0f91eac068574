// Package metrics holds the Prometheus counters exposed on /-/metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Meme render outcomes.
const (
	ResultRendered = "rendered"
	ResultEmpty    = "empty"
	ResultFailed   = "failed"
)

// Manager groups the domain counters. All fields are safe for concurrent use.
// The recording methods are no-ops on a nil Manager.
type Manager struct {
	CounterQuotesFetched    prometheus.Counter
	CounterMemesRendered    *prometheus.CounterVec
	CounterUpstreamFailures *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewTestManagerAndRegistry returns a Manager bound to a fresh registry.
func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("quotewall", "test", reg, reg), reg
}

// NewManager registers the counters on reg. gatherer is what /-/metrics serves.
func NewManager(namespace, subsystem string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterQuotesFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "quotes_fetched_total",
			Help:      "The total number of quotes fetched from the quote endpoint",
		}),
		CounterMemesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "memes_total",
			Help:      "Meme requests by outcome",
		}, []string{"result"}),
		CounterUpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_failures_total",
			Help:      "Failed calls to an upstream API",
		}, []string{"service"}),
		gatherer: gatherer,
	}
}

// NewDefaultManager registers the counters plus Go and process collectors on
// a private registry.
func NewDefaultManager(namespace string) *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewManager(namespace, "server", reg, reg)
}

// Gatherer returns the registry backing this manager.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// QuoteFetched counts n successfully fetched quotes.
func (m *Manager) QuoteFetched(n int) {
	if m == nil {
		return
	}
	m.CounterQuotesFetched.Add(float64(n))
}

// MemeResult counts one meme request outcome.
func (m *Manager) MemeResult(result string) {
	if m == nil {
		return
	}
	m.CounterMemesRendered.WithLabelValues(result).Inc()
}

// UpstreamFailure counts one failed call to service.
func (m *Manager) UpstreamFailure(service string) {
	if m == nil {
		return
	}
	m.CounterUpstreamFailures.WithLabelValues(service).Inc()
}
