package injector

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "injector"

type metrics struct {
	injections *prometheus.CounterVec // outcome: committed | skipped
	signals    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, errors.New("metrics registerer is nil")
	}

	injections, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "injections_total",
			Help:      "Total number of anomalies drawn, by whether they were committed to the signal or skipped.",
		},
		[]string{"outcome"},
	))
	if err != nil {
		return nil, err
	}

	signals, err := register(reg, prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_modified_total",
			Help:      "Total number of signals passed through the injector.",
		},
	))
	if err != nil {
		return nil, err
	}

	return &metrics{injections: injections, signals: signals}, nil
}

// Registers c with reg, returning the collector already registered under the
// same description if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Records the outcome of one scan. Safe to call on a nil *metrics.
func (m *metrics) observe(s *scan) {
	if m == nil {
		return
	}
	m.signals.Inc()
	m.injections.WithLabelValues("committed").Add(float64(len(s.log)))
	m.injections.WithLabelValues("skipped").Add(float64(s.skipped))
}
