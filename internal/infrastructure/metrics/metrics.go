package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProviderMetrics tracks outbound Striga traffic. A nil receiver is
// valid and records nothing, so tests can pass nil.
type ProviderMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewProviderMetrics registers the provider collectors on the given
// registerer.
func NewProviderMetrics(reg prometheus.Registerer) *ProviderMetrics {
	factory := promauto.With(reg)
	return &ProviderMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loop",
			Subsystem: "striga",
			Name:      "requests_total",
			Help:      "Outbound Striga API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "loop",
			Subsystem: "striga",
			Name:      "request_duration_seconds",
			Help:      "Outbound Striga API request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveRequest records one completed provider call.
func (m *ProviderMetrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
