package anomaly

import "math/rand/v2"

// Params are the properties of a single anomaly. A fresh set is drawn from the
// Config before every injection so that anomalies are independent of each other.
type Params struct {
	Amplitude  float64 // peak amplitude
	Frequency  float64 // anomaly frequency in Hz
	NumCycles  float64 // number of cycles of the shape
	NoiseScale int     // bound of the uniform noise, 0 when no noise range is configured
	Phase      float64 // phase offset in radians, copied from the Config
}

// Returns the duration of the anomaly in seconds.
func (p Params) Duration() float64 {
	return p.NumCycles / p.Frequency
}

// Sample draws every field of Params uniformly and independently from the
// candidate values held by c.
func Sample(r *rand.Rand, c *Config) Params {
	p := Params{
		Amplitude: choose(r, c.amplitudeRange),
		Frequency: choose(r, c.frequencyRange),
		NumCycles: choose(r, c.cycleRange),
		Phase:     c.phase,
	}
	if len(c.noiseRange) > 0 {
		p.NoiseScale = choose(r, c.noiseRange)
	}
	return p
}

// Returns a uniformly chosen element of values, which must not be empty.
func choose[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}
