package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	ChecksTotal     prometheus.Counter
	VerdictOutcomes *prometheus.CounterVec // labels: outcome={allowed,denied}

	RecognizerRequests prometheus.Counter
	RecognizerErrors   prometheus.Counter
	RecognizerDuration prometheus.Histogram

	CityDataRequests *prometheus.CounterVec // labels: dataset, outcome={success,error}
	CityDataCache    *prometheus.CounterVec // labels: dataset, result={hit,miss}

	ChecksPurged prometheus.Counter
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting creates unregistered collectors so tests can run in
// parallel without duplicate-registration panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics(nil)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChecksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "parking_checks_total",
			Help:      "Total parking sign checks processed.",
		}),
		VerdictOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "verdict_outcomes_total",
			Help:      "Verdicts produced, by outcome.",
		}, []string{"outcome"}),
		RecognizerRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "recognizer_requests_total",
			Help:      "Requests sent to the sign recognition endpoint.",
		}),
		RecognizerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "recognizer_errors_total",
			Help:      "Failed sign recognition calls.",
		}),
		RecognizerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "restconnect",
			Name:      "recognizer_request_duration_seconds",
			Help:      "Duration of sign recognition calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CityDataRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "citydata_requests_total",
			Help:      "Upstream city data fetches, by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		CityDataCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "citydata_cache_total",
			Help:      "City data cache lookups, by dataset and result.",
		}, []string{"dataset", "result"}),
		ChecksPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restconnect",
			Name:      "checks_purged_total",
			Help:      "Parking checks removed by the retention worker.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ChecksTotal,
			m.VerdictOutcomes,
			m.RecognizerRequests,
			m.RecognizerErrors,
			m.RecognizerDuration,
			m.CityDataRequests,
			m.CityDataCache,
			m.ChecksPurged,
		)
	}

	return m
}
