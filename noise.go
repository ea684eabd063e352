package injector

import (
	"math/rand/v2"
	"slices"
)

// AddNoise returns a copy of y with an integer offset drawn uniformly from
// [-noiseScale, noiseScale) added to every sample. A noiseScale <= 0 returns y unchanged.
func AddNoise[T Number](r *rand.Rand, y []T, noiseScale int) []T {
	if noiseScale <= 0 {
		return y
	}
	return addNoise(r, slices.Clone(y), noiseScale)
}

// In-place form of AddNoise.
func addNoise[T Number](r *rand.Rand, y []T, noiseScale int) []T {
	if noiseScale <= 0 {
		return y
	}
	for i := range y {
		y[i] += T(r.IntN(2*noiseScale) - noiseScale)
	}
	return y
}
