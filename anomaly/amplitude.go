package anomaly

import (
	"fmt"
	"sort"

	"github.com/synaptecltd/injector/mathfuncs"
)

// Amplitude scales a raw shape into its final magnitude. The returned slice has
// the same length as shape, and shape itself is left untouched.
type Amplitude interface {
	Scale(shape []float64, amplitude float64) []float64
}

// AmplitudeFunc adapts a plain function to the Amplitude interface.
type AmplitudeFunc func(shape []float64, amplitude float64) []float64

func (f AmplitudeFunc) Scale(shape []float64, amplitude float64) []float64 {
	return f(shape, amplitude)
}

// Constant multiplies every sample by the amplitude.
type Constant struct{}

func (Constant) Scale(shape []float64, amplitude float64) []float64 {
	y := make([]float64, len(shape))
	for i, v := range shape {
		y[i] = v * amplitude
	}
	return y
}

// LinearSpike grows the anomaly linearly from 0 to the amplitude over its duration.
type LinearSpike struct{}

func (LinearSpike) Scale(shape []float64, amplitude float64) []float64 {
	return multiply(shape, mathfuncs.RampEnvelope(len(shape), amplitude))
}

// Pyramid ramps the anomaly up to the amplitude at its midpoint and back down to 0.
type Pyramid struct{}

func (Pyramid) Scale(shape []float64, amplitude float64) []float64 {
	return multiply(shape, mathfuncs.PyramidEnvelope(len(shape), amplitude))
}

// Element-wise product of two slices of equal length.
func multiply(shape, envelope []float64) []float64 {
	y := make([]float64, len(shape))
	for i := range shape {
		y[i] = shape[i] * envelope[i]
	}
	return y
}

// A map between string name and Amplitude pairs
var amplitudes = map[string]Amplitude{
	"constant":     Constant{},
	"linear_spike": LinearSpike{},
	"pyramid":      Pyramid{},
}

// Returns the named amplitude strategy.
func GetAmplitudeFromName(name string) (Amplitude, error) {
	amplitude, ok := amplitudes[name]
	if !ok {
		return nil, fmt.Errorf("amplitude strategy not found: %q", name)
	}
	return amplitude, nil
}

// Returns the names of all registered amplitude strategies in alphabetical order.
func GetAmplitudeNames() []string {
	names := make([]string, 0, len(amplitudes))
	for name := range amplitudes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
