// Package rng wraps the sampler's single logical random stream.
//
// The entire core draws from one *rand.Rand; parallel regions (the
// Topic Sampler's per-topic log-weight fan-out) never touch it, so
// results are reproducible for a fixed seed independent of GOMAXPROCS.
package rng

import (
	xrand "golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Randomizer is the random-draw surface the samplers depend on. It
// exists so tests can substitute a scripted fake for the handful of
// discrete-choice draws that decide which table or topic gets picked,
// without needing to reverse-engineer a real seed's output stream.
// *Source satisfies it.
type Randomizer interface {
	Uniform01() float64
	DiscreteFromCDF(cdf []float64) int
	Gamma(shape, scale float64) float64
	Beta(alpha, beta float64) float64
	Bernoulli(p float64) bool
}

// Source is the sampler's random stream. It uses golang.org/x/exp/rand
// rather than math/rand because gonum's distuv distributions (Gamma,
// Bernoulli) require an x/exp/rand.Source for their Src field, and
// *math/rand.Rand does not satisfy that interface (its Seed takes an
// int64, not a uint64).
type Source struct {
	r *xrand.Rand
}

// New creates a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{r: xrand.New(xrand.NewSource(seed))}
}

// Uniform01 draws a single uniform variate on [0, 1).
func (s *Source) Uniform01() float64 {
	return s.r.Float64()
}

// DiscreteFromCDF samples an index from an unnormalized cumulative
// distribution: it draws u on [0, total) where total is the last
// cumulant, then returns the first index whose cumulant is strictly
// greater than u. Ties at zero-weight outcomes are never selectable
// because the comparison is strict.
func (s *Source) DiscreteFromCDF(cdf []float64) int {
	total := cdf[len(cdf)-1]
	u := s.r.Float64() * total
	for i, c := range cdf {
		if c > u {
			return i
		}
	}
	return len(cdf) - 1
}

// Gamma draws a Gamma(shape, scale) variate using the rate
// parameterization gonum's distuv.Gamma expects (rate = 1/scale).
// shape and scale must both be > 0.
func (s *Source) Gamma(shape, scale float64) float64 {
	g := distuv.Gamma{Alpha: shape, Beta: 1.0 / scale, Src: s.r}
	return g.Rand()
}

// Beta draws a Beta(alpha, beta) variate realized as x/(x+y) with
// x ~ Gamma(alpha, 1), y ~ Gamma(beta, 1).
func (s *Source) Beta(alpha, beta float64) float64 {
	x := s.Gamma(alpha, 1.0)
	y := s.Gamma(beta, 1.0)
	return x / (x + y)
}

// Bernoulli draws a {0,1} outcome with success probability p.
func (s *Source) Bernoulli(p float64) bool {
	b := distuv.Bernoulli{P: p, Src: s.r}
	return b.Rand() == 1
}
