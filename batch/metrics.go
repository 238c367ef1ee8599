package batch

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the sequences processed by a Runner and records how long
// each one took.  A nil *Metrics records nothing.
type Metrics struct {
	sequences *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the batch metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {

	m := &Metrics{
		sequences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dhmm",
				Subsystem: "batch",
				Name:      "sequences_total",
				Help:      "Sequences processed, by operation and result.",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dhmm",
				Subsystem: "batch",
				Name:      "sequence_seconds",
				Help:      "Time spent on one sequence, by operation.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"op"},
		),
	}

	for _, c := range []prometheus.Collector{m.sequences, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register batch metrics")
		}
	}

	return m, nil
}

func (m *Metrics) observe(op string, d time.Duration, err error) {

	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sequences.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}
