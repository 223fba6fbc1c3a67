package synth

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NewSource returns the seeded generator every synthesis run draws from.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// Noise draws n independent N(0, sigma^2) perturbations from src.
func Noise(src rand.Source, n int, sigma float64) []float64 {
	out := make([]float64, n)
	if sigma == 0 {
		return out
	}
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
