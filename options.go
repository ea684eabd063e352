package injector

import (
	"errors"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/synaptecltd/injector/anomaly"
	"go.uber.org/zap"
)

// Option configures an Injector at construction.
type Option func(*Injector) error

// WithSeed makes the Injector draw from a PCG source seeded with seed, so that
// repeated runs place identical anomalies.
func WithSeed(seed uint64) Option {
	return func(inj *Injector) error {
		inj.r = rand.New(rand.NewPCG(seed, seed))
		return nil
	}
}

// WithRand makes the Injector draw from r. r must not be shared with other goroutines.
func WithRand(r *rand.Rand) Option {
	return func(inj *Injector) error {
		if r == nil {
			return errors.New("random source is nil")
		}
		inj.r = r
		return nil
	}
}

// WithShape overrides the shape named in the config.
func WithShape(shape anomaly.Shape) Option {
	return func(inj *Injector) error {
		inj.SetShape(shape)
		return nil
	}
}

// WithAmplitude overrides the amplitude strategy named in the config.
func WithAmplitude(amplitude anomaly.Amplitude) Option {
	return func(inj *Injector) error {
		inj.SetAmplitude(amplitude)
		return nil
	}
}

// WithLogger sets the logger used for debug events; the default discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(inj *Injector) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		inj.logger = logger
		return nil
	}
}

// WithMetrics registers injection counters with reg. Injectors sharing a registry
// share the counters.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(inj *Injector) error {
		m, err := newMetrics(reg)
		if err != nil {
			return err
		}
		inj.metrics = m
		return nil
	}
}
