package injector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/synaptecltd/injector/anomaly"
	"go.uber.org/zap"
)

// ErrInvalidSampleRate is returned when a signal is modified with a sample rate <= 0.
var ErrInvalidSampleRate = errors.New("sample rate must be greater than 0")

// Number is the set of sample types a signal can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Injector superimposes randomly placed, non-overlapping anomalies onto signals and
// records where they were placed. The injection log of the most recent call is kept
// for labelling; calls on one Injector are serialised.
type Injector struct {
	config *anomaly.Config

	mu        sync.Mutex
	shape     anomaly.Shape
	amplitude anomaly.Amplitude
	r         *rand.Rand
	log       InjectionLog
	runID     uuid.UUID

	logger  *zap.Logger
	metrics *metrics
}

// Returns an Injector drawing anomalies from config. The shape and amplitude
// strategies default to those named in config.
func New(config *anomaly.Config, opts ...Option) (*Injector, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", anomaly.ErrInvalidConfig)
	}

	// a Config that did not come from anomaly.NewConfig names no strategies
	shape, err := anomaly.GetShapeFromName(config.GetShapeName())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", anomaly.ErrInvalidConfig, err)
	}
	amplitude, err := anomaly.GetAmplitudeFromName(config.GetAmplitudeName())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", anomaly.ErrInvalidConfig, err)
	}

	inj := &Injector{
		config:    config,
		shape:     shape,
		amplitude: amplitude,
		r:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		if err := opt(inj); err != nil {
			return nil, err
		}
	}

	return inj, nil
}

// SetShape replaces the shape strategy. A nil shape restores the one named in the config.
func (inj *Injector) SetShape(shape anomaly.Shape) {
	if shape == nil {
		// checked by New
		shape, _ = anomaly.GetShapeFromName(inj.config.GetShapeName())
	}
	inj.mu.Lock()
	inj.shape = shape
	inj.mu.Unlock()
}

// SetAmplitude replaces the amplitude strategy. A nil amplitude restores the one named in the config.
func (inj *Injector) SetAmplitude(amplitude anomaly.Amplitude) {
	if amplitude == nil {
		amplitude, _ = anomaly.GetAmplitudeFromName(inj.config.GetAmplitudeName())
	}
	inj.mu.Lock()
	inj.amplitude = amplitude
	inj.mu.Unlock()
}

// Returns the configuration anomalies are drawn from.
func (inj *Injector) GetConfig() *anomaly.Config {
	return inj.config
}

// InjectionLog returns a copy of the records of the most recent call to ModifySignal.
func (inj *Injector) InjectionLog() InjectionLog {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return slices.Clone(inj.log)
}

// LastRunID returns the identifier of the most recent call to ModifySignal, or
// uuid.Nil if the Injector has not been used yet.
func (inj *Injector) LastRunID() uuid.UUID {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	return inj.runID
}

// ModifySignal returns a copy of y with anomalies superimposed, followed by uniform
// noise if the last drawn Params carry a noise scale. y is left untouched.
// sampleRate is the sample rate of y in Hz.
//
// Anomalies are cast to the sample type of y before they are added, so integer
// signals receive truncated anomalies.
func ModifySignal[T Number](inj *Injector, y []T, sampleRate int) ([]T, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}

	out := slices.Clone(y)
	if out == nil {
		out = []T{}
	}

	inj.mu.Lock()
	defer inj.mu.Unlock()

	s := &scan{
		config:     inj.config,
		shape:      inj.shape,
		amplitude:  inj.amplitude,
		r:          inj.r,
		sampleRate: sampleRate,
		logger:     inj.logger,
	}
	inject(s, out)

	if s.sampled {
		out = addNoise(inj.r, out, s.params.NoiseScale)
	}

	inj.runID = uuid.New()
	inj.log = s.log
	inj.metrics.observe(s)
	inj.logger.Debug("modified signal",
		zap.Stringer("run_id", inj.runID),
		zap.Int("samples", len(out)),
		zap.Int("committed", len(s.log)),
		zap.Int("skipped", s.skipped),
		zap.Int("noise_scale", s.params.NoiseScale),
	)

	return out, nil
}

// scan holds the state of a single call to ModifySignal.
type scan struct {
	config     *anomaly.Config
	shape      anomaly.Shape
	amplitude  anomaly.Amplitude
	r          *rand.Rand
	sampleRate int
	logger     *zap.Logger

	params  anomaly.Params // most recently drawn parameters
	sampled bool           // whether params has been drawn during this call
	log     InjectionLog
	skipped int // anomalies drawn but dropped because they overran the signal
}

// Walks y once, front to back, rolling for an anomaly at each eligible index.
// A committed anomaly moves the cursor past its end so anomalies never overlap;
// one that would run past the end of y, or that is empty, is dropped and the next
// index is tried.
func inject[T Number](s *scan, y []T) {
	rate := s.config.GetAnomalyRate()

	i := 0
	for i < len(y) {
		if !s.config.IsEligible(i) || s.r.Float64() >= rate {
			i++
			continue
		}

		s.params = anomaly.Sample(s.r, s.config)
		s.sampled = true

		segment := castSegment[T](s.amplitude.Scale(s.shape.Shape(s.params, s.sampleRate), s.params.Amplitude))
		if len(segment) == 0 || i+len(segment) > len(y) {
			s.skipped++
			s.logger.Debug("anomaly does not fit signal",
				zap.Int("index", i),
				zap.Int("duration", len(segment)),
				zap.Int("remaining", len(y)-i),
			)
			i++
			continue
		}

		record := InjectionRecord{
			ID:        uuid.New(),
			Index:     i,
			Duration:  len(segment),
			Amplitude: s.params.Amplitude,
			Frequency: s.params.Frequency,
			NumCycles: s.params.NumCycles,
		}
		s.log = append(s.log, record)
		for k, v := range segment {
			y[i+k] += v
		}
		s.logger.Debug("injected anomaly",
			zap.Stringer("id", record.ID),
			zap.Int("index", record.Index),
			zap.Int("duration", record.Duration),
			zap.Float64("amplitude", record.Amplitude),
			zap.Float64("frequency", record.Frequency),
			zap.Float64("num_cycles", record.NumCycles),
		)

		i += len(segment)
	}
}

// Converts an anomaly to the sample type of the signal using Go's conversion
// rules, which truncate towards zero for integer types.
func castSegment[T Number](segment []float64) []T {
	out := make([]T, len(segment))
	for k, v := range segment {
		out[k] = T(v)
	}
	return out
}
