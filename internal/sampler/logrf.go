// Package sampler implements the three resampling operations: the
// table sampler, the topic sampler, and the hyperparameter sampler.
package sampler

import "math"

// logRF computes log(Gamma(x+n)/Gamma(x)) = log(x*(x+1)*...*(x+n-1)),
// the log-marginal-likelihood kernel of a Dirichlet-multinomial
// observation of count n against pseudocount base x.
//
// The three-branch strategy and its threshold order are load-bearing
// for reproducibility; overflow that would otherwise hit Gamma is
// absorbed here and never surfaces:
//
//  1. n<=13 and x<1e22: direct product, fastest.
//  2. else x<1e15: lgamma difference.
//  3. else: sum of logs, unconditionally stable but slowest.
func logRF(x float64, n int) float64 {
	if n == 0 {
		return 0
	}
	if n <= 13 && x < 1e22 {
		total := 1.0
		for i := 0; i < n; i++ {
			total *= x + float64(i)
		}
		return math.Log(total)
	}
	if x < 1e15 {
		lg1, _ := math.Lgamma(x + float64(n))
		lg2, _ := math.Lgamma(x)
		return lg1 - lg2
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += math.Log(x + float64(i))
	}
	return total
}
