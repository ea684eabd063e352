package mathfuncs

import (
	"errors"
	"math"
	"sort"

	"github.com/teknico/sigourney/fast"
)

// A periodic function y=f(t,A,T). Takes amplitude, A, and period, T,
// as inputs and returns the value of the function at time, t.
type MathsFunction func(t, A, T float64) float64

// A map between string name and MathsFunction pairs
var mathsFunctions = map[string]MathsFunction{
	"sine":     Sine,
	"cosine":   cosineWave,
	"peak":     Peak,
	"square":   Square,
	"sawtooth": sawtoothWave,
	"flat":     flat,
}

// Returns the names of all registered functions in alphabetical order.
func GetMathsFunctionNames() []string {
	names := make([]string, 0, len(mathsFunctions))
	for name := range mathsFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Returns the named function.
func GetMathsFunctionFromName(name string) (MathsFunction, error) {
	mathsFunc, ok := mathsFunctions[name]
	if !ok {
		return nil, errors.New("maths function not found")
	}

	return mathsFunc, nil
}

// Returns a sine wave y=A*sin(2*pi*t/T) where A is the amplitude,
// T is the period, and t is elapsed time.
func Sine(t, A, T float64) float64 {
	return A * math.Sin(2*math.Pi*t/T)
}

// Returns a rectified sine wave y=A*|sin(2*pi*t/T)|. Never negative for A >= 0,
// used for one-sided spikes.
func Peak(t, A, T float64) float64 {
	return A * math.Abs(math.Sin(2*math.Pi*t/T))
}

// Returns a cosine wave y=A*cos(2*pi*t/T) where A is the amplitude,
// T is the period, and t is elapsed time.
func cosineWave(t, A, T float64) float64 {
	return A * fast.Sin(wrapPhase(2*math.Pi*t/T+math.Pi/2))
}

// Returns a square wave that is A over the first half of each period and -A over
// the second, where A is the amplitude, T is the period, and t is elapsed time.
// Samples on a half-period boundary take the value of the half they start.
func Square(t, A, T float64) float64 {
	h := 2 * t / T // half periods elapsed
	if r := math.Round(h); math.Abs(h-r) < 1e-9 {
		h = r
	}
	if int64(math.Floor(h))%2 == 0 {
		return A
	}
	return -A
}

// Returns a sawtooth wave y=(2*A/pi)*atan(tan(pi*t/T)),
// where A is the amplitude, T is the period, and t is elapsed time.
func sawtoothWave(t, A, T float64) float64 {
	return (2 * A / math.Pi) * math.Atan(math.Tan(math.Pi*t/T))
}

// flat returns a constant value equal to A (amplitude),
// independent of time t or period T.
func flat(_, A, _ float64) float64 {
	return A
}

// Returns the angle a reduced to [0, 2*pi), the domain of the fast lookup tables.
func wrapPhase(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		return 0
	}
	return a
}
