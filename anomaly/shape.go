package anomaly

import (
	"fmt"
	"math"
	"sort"

	"github.com/synaptecltd/injector/mathfuncs"
)

// Shape produces the dimensionless waveform of an anomaly. Implementations read
// the parameters they are given and must not draw new ones.
type Shape interface {
	// Shape returns round(sampleRate * NumCycles / Frequency) samples of the waveform.
	Shape(p Params, sampleRate int) []float64
}

// ShapeFunc adapts a plain function to the Shape interface.
type ShapeFunc func(p Params, sampleRate int) []float64

func (f ShapeFunc) Shape(p Params, sampleRate int) []float64 {
	return f(p, sampleRate)
}

// Sinusoidal is sin(2*pi*f*t + phase).
type Sinusoidal struct{}

func (Sinusoidal) Shape(p Params, sampleRate int) []float64 {
	return waveform(mathfuncs.Sine, p, sampleRate)
}

// Peak is |sin(2*pi*f*t + phase)|, a one-sided train of spikes.
type Peak struct{}

func (Peak) Shape(p Params, sampleRate int) []float64 {
	return waveform(mathfuncs.Peak, p, sampleRate)
}

// Square is a +/-1 square wave at the anomaly frequency.
type Square struct{}

func (Square) Shape(p Params, sampleRate int) []float64 {
	return waveform(mathfuncs.Square, p, sampleRate)
}

// Samples a unit amplitude periodic function over the duration of the anomaly.
// The phase is applied as a time offset of phase/(2*pi*f).
func waveform(f mathfuncs.MathsFunction, p Params, sampleRate int) []float64 {
	n := mathfuncs.SampleCount(sampleRate, p.Duration())
	offset := p.Phase / (2 * math.Pi * p.Frequency)
	return mathfuncs.Sample(f, 1, 1/p.Frequency, sampleRate, n, offset)
}

// Waveform samples one of the periodic functions registered in mathfuncs at unit
// amplitude. Shapes without a dedicated type, such as cosine and sawtooth, are
// Waveforms.
type Waveform struct {
	name string
	f    mathfuncs.MathsFunction
}

// Returns the Waveform of the named mathfuncs function.
func NewWaveform(name string) (Waveform, error) {
	f, err := mathfuncs.GetMathsFunctionFromName(name)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: %q, have %v", err, name, mathfuncs.GetMathsFunctionNames())
	}
	return Waveform{name: name, f: f}, nil
}

// Returns the name of the underlying mathfuncs function.
func (w Waveform) GetFunctionName() string {
	return w.name
}

func (w Waveform) Shape(p Params, sampleRate int) []float64 {
	if w.f == nil {
		return []float64{}
	}
	return waveform(w.f, p, sampleRate)
}

// A map between string name and Shape pairs
var shapes = map[string]Shape{
	"sinusoidal": Sinusoidal{},
	"peak":       Peak{},
	"square":     Square{},
	"cosine":     mustWaveform("cosine"),
	"sawtooth":   mustWaveform("sawtooth"),
	"flat":       mustWaveform("flat"),
}

func mustWaveform(name string) Waveform {
	w, err := NewWaveform(name)
	if err != nil {
		panic(err)
	}
	return w
}

// Returns the named shape.
func GetShapeFromName(name string) (Shape, error) {
	shape, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("shape not found: %q", name)
	}
	return shape, nil
}

// Returns the names of all registered shapes in alphabetical order.
func GetShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
