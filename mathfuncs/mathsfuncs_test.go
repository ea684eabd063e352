package mathfuncs_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synaptecltd/injector/mathfuncs"
)

// Tests for the named periodic functions
func TestDeterministicMathsFunctions(t *testing.T) {
	M := 1.0 + rand.Float64()*99.0 // ampltiude (between 1 and 100)
	x := 1.0 + rand.Float64()*99.0 // time (between 1 and 100)

	testCases := []struct {
		name     string  // name of the function, defined in the mathsFunctions map
		t        float64 // time in seconds
		A        float64 // amplitude
		T        float64 // period of the function in seconds
		expected float64 // expected value of the function at time t
		isError  bool    // true if an error is expected
	}{
		{
			name:    "not_a_function",
			isError: true,
		},
		{
			name:     "sine",
			t:        x,
			A:        M,
			T:        4 * x,
			expected: M, // M*sin(2*pi*(x/4x)) = M*sin(pi/2) = M
		},
		{
			name:     "sine",
			t:        3 * x,
			A:        M,
			T:        4 * x,
			expected: -M, // M*sin(3*pi/2) = -M
		},
		{
			name:     "peak",
			t:        3 * x,
			A:        M,
			T:        4 * x,
			expected: M, // |M*sin(3*pi/2)| = M
		},
		{
			name:     "cosine",
			t:        x,
			A:        M,
			T:        4 * x,
			expected: 0.0, // M*cos(pi/2) = 0
		},
		{
			name:     "square",
			t:        x,
			A:        M,
			T:        4 * x,
			expected: M, // positive in the first half period
		},
		{
			name:     "square",
			t:        1.5 * x,
			A:        M,
			T:        2.0 * x,
			expected: -M, // negative value for t > T/2
		},
		{
			name:     "sawtooth",
			t:        x,
			A:        M,
			T:        4 * x,
			expected: M / 2, // quarter of time period = half way up the sawtooth wave
		},
		{
			name:     "flat",
			t:        x,
			A:        M,
			T:        x,
			expected: M,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testFunction, err := mathfuncs.GetMathsFunctionFromName(tc.name)

			if tc.isError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			result := testFunction(tc.t, tc.A, tc.T)
			assert.InDelta(t, tc.expected, result, 1e-3)
		})
	}
}

func TestGetMathsFunctionNames(t *testing.T) {
	names := mathfuncs.GetMathsFunctionNames()
	assert.IsIncreasing(t, names)
	for _, name := range names {
		_, err := mathfuncs.GetMathsFunctionFromName(name)
		assert.NoError(t, err, name)
	}
}

func TestPeakIsNeverNegative(t *testing.T) {
	A := 1.0 + rand.Float64()*9.0
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, mathfuncs.Peak(float64(i)*0.013, A, 0.37), 0.0)
	}
}

func TestSquareOnlyTakesAmplitudeValues(t *testing.T) {
	A := 1.0 + rand.Float64()*9.0
	y := mathfuncs.Sample(mathfuncs.Square, A, 0.2, 1000, 1000, 0)
	positives := 0
	for _, v := range y {
		assert.Equal(t, A, math.Abs(v))
		if v > 0 {
			positives++
		}
	}
	// exactly half of each period is positive
	assert.Equal(t, 500, positives)
}

func TestSquareHalfPeriodBoundaries(t *testing.T) {
	T := 0.2
	testCases := []struct {
		t        float64
		expected float64
	}{
		{t: 0, expected: 1},
		{t: T / 4, expected: 1},
		{t: T / 2, expected: -1},
		{t: 3 * T / 4, expected: -1},
		{t: T, expected: 1},
		{t: 3 * T / 2, expected: -1},
		{t: 10 * 0.01, expected: -1}, // half period reached by sample stepping
		{t: -T / 4, expected: -1},
		{t: -3 * T / 4, expected: 1},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, mathfuncs.Square(tc.t, 1, T), "t=%v", tc.t)
	}
}

func TestSampleCount(t *testing.T) {
	testCases := []struct {
		name       string
		sampleRate int
		duration   float64
		expected   int
	}{
		{name: "exact", sampleRate: 100, duration: 0.4, expected: 40},
		{name: "rounds down", sampleRate: 100, duration: 0.123, expected: 12},
		{name: "rounds up", sampleRate: 100, duration: 0.127, expected: 13},
		{name: "clamped to one", sampleRate: 10, duration: 0.01, expected: 1},
		{name: "zero duration", sampleRate: 10, duration: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mathfuncs.SampleCount(tc.sampleRate, tc.duration))
		})
	}
}

func TestSampleSine(t *testing.T) {
	// 2 cycles at 5 Hz sampled at 100 Hz
	y := mathfuncs.Sample(mathfuncs.Sine, 1, 0.2, 100, 40, 0)
	assert.Len(t, y, 40)
	assert.InDelta(t, 0.0, y[0], 1e-9)
	assert.InDelta(t, 1.0, y[5], 1e-9)
	assert.InDelta(t, -1.0, y[15], 1e-9)
	assert.InDelta(t, 1.0, y[25], 1e-9)
}
