package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for form submissions. A nil *Metrics is
// valid and records nothing, which keeps handler and service tests terse.
type Metrics struct {
	Accepted            prometheus.Counter
	Rejected            prometheus.Counter
	PersistenceFailures *prometheus.CounterVec
	StoreDuration       *prometheus.HistogramVec
}

// New creates and registers the submission metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Accepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_submissions_accepted_total",
			Help: "Total number of form submissions validated and persisted",
		}),
		Rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_submissions_rejected_total",
			Help: "Total number of form submissions rejected by validation",
		}),
		PersistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_store_failures_total",
			Help: "Total number of store operations that failed",
		}, []string{"operation"}),
		StoreDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_store_operation_duration_seconds",
			Help:    "Duration of submission store operations",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}
}

// IncrementAccepted counts a persisted submission.
func (m *Metrics) IncrementAccepted() {
	if m == nil {
		return
	}
	m.Accepted.Inc()
}

// IncrementRejected counts a submission that failed validation.
func (m *Metrics) IncrementRejected() {
	if m == nil {
		return
	}
	m.Rejected.Inc()
}

// ObserveStore records the duration of a store operation and, when err is
// non-nil, a failure for it.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.PersistenceFailures.WithLabelValues(operation).Inc()
	}
}
