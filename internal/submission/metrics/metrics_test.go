package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementAccepted()
	m.IncrementAccepted()
	m.IncrementRejected()
	m.ObserveStore("append", time.Now(), nil)
	m.ObserveStore("append", time.Now(), errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Accepted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceFailures.WithLabelValues("append")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PersistenceFailures.WithLabelValues("read_all")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementAccepted()
		m.IncrementRejected()
		m.ObserveStore("append", time.Now(), errors.New("boom"))
	})
}
