package sampler

import (
	"math"

	"github.com/bobonovski/hdplda/internal/crf"
	"github.com/bobonovski/hdplda/internal/rng"
)

// SampleGamma resamples the top-level concentration parameter gamma via
// the Escobar-West auxiliary variable scheme: draw an auxiliary
// eta ~ Beta(gamma+1, m), mix between two Gamma shapes weighted by the
// auxiliary's induced mixture probability, then draw the new gamma.
func SampleGamma(f *crf.Franchise, r rng.Randomizer) float64 {
	k := float64(f.NumTopics())
	m := float64(f.M)

	eta := r.Beta(f.Gamma+1, m)

	pi := (f.GammaA + k - 1) / (f.GammaA + k - 1 + m*(f.GammaB-math.Log(eta)))

	shape := f.GammaA + k - 1
	if r.Bernoulli(pi) {
		shape = f.GammaA + k
	}
	scale := 1.0 / (f.GammaB - math.Log(eta))

	f.Gamma = r.Gamma(shape, scale)
	return f.Gamma
}

// SampleAlpha0 resamples the per-restaurant concentration parameter
// alpha0 via the same auxiliary variable scheme applied jointly across
// every restaurant, iterated iters times so the chain of auxiliary
// draws mixes before the final value is kept.
func SampleAlpha0(f *crf.Franchise, r rng.Randomizer, iters int) float64 {
	for iter := 0; iter < iters; iter++ {
		sumLogW := 0.0
		sumS := 0.0

		for _, restaurant := range f.Restaurants {
			n := float64(restaurant.N)
			if n == 0 {
				continue
			}
			w := r.Beta(f.Alpha0+1, n)
			s := r.Bernoulli(n / (f.Alpha0 + n))

			sumLogW += math.Log(w)
			if s {
				sumS++
			}
		}

		shape := f.Alpha0A + float64(f.M) - sumS
		scale := 1.0 / (f.Alpha0B - sumLogW)

		f.Alpha0 = r.Gamma(shape, scale)
	}
	return f.Alpha0
}
