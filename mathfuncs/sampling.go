package mathfuncs

import "math"

// SampleCount returns the number of samples needed to cover duration seconds at
// sampleRate samples per second, rounded to the nearest sample. At least one
// sample is always returned for a positive duration so that callers stepping
// through a signal always make progress.
func SampleCount(sampleRate int, duration float64) int {
	n := int(math.Round(float64(sampleRate) * duration))
	if n < 1 && duration > 0 {
		return 1
	}
	if n < 0 {
		return 0
	}
	return n
}

// Sample evaluates f with amplitude A and period T at n points spaced 1/sampleRate
// seconds apart, starting at time offset.
func Sample(f MathsFunction, A, T float64, sampleRate, n int, offset float64) []float64 {
	Ts := 1 / float64(sampleRate)
	y := make([]float64, n)
	for k := range y {
		y[k] = f(offset+float64(k)*Ts, A, T)
	}
	return y
}

// Linspace returns num evenly spaced values over the closed interval [start, stop].
// A single value is start; zero or negative num returns an empty slice.
func Linspace(start, stop float64, num int) []float64 {
	if num <= 0 {
		return []float64{}
	}
	y := make([]float64, num)
	if num == 1 {
		y[0] = start
		return y
	}
	step := (stop - start) / float64(num-1)
	for i := range y {
		y[i] = start + float64(i)*step
	}
	y[num-1] = stop // avoid accumulated rounding at the end point
	return y
}

// RampEnvelope returns a linear ramp of length n rising from 0 to A.
func RampEnvelope(n int, A float64) []float64 {
	return Linspace(0, A, n)
}

// PyramidEnvelope returns an envelope of length n that rises linearly from 0 to A
// and falls symmetrically back towards 0. The rising half has (n+1)/2 samples and
// is mirrored; for odd n the mirrored sequence is one sample too long and is
// truncated, so the last sample is the first non-zero step of the ramp.
func PyramidEnvelope(n int, A float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	up := Linspace(0, A, (n+1)/2)
	envelope := make([]float64, 0, 2*len(up))
	envelope = append(envelope, up...)
	for i := len(up) - 1; i >= 0; i-- {
		envelope = append(envelope, up[i])
	}
	return envelope[:n]
}
