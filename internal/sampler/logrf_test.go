package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// logRF(x, 0) = 0 for all x > 0.
func TestLogRFZeroCount(t *testing.T) {
	for _, x := range []float64{0.1, 1.0, 1e10, 1e20} {
		assert.Equal(t, 0.0, logRF(x, 0))
	}
}

// logRF(x, n+1) = logRF(x, n) + log(x+n), across all three numeric
// branches, within 1e-12 relative error.
func TestLogRFRecurrence(t *testing.T) {
	cases := []float64{0.1, 1.0, 1e10, 1e16, 1e23}
	for _, x := range cases {
		for n := 0; n < 20; n++ {
			got := logRF(x, n+1)
			want := logRF(x, n) + math.Log(x+float64(n))
			relErr := math.Abs(got-want) / math.Max(1.0, math.Abs(want))
			assert.LessOrEqual(t, relErr, 1e-9, "x=%v n=%v", x, n)
		}
	}
}

func TestLogRFKnownValues(t *testing.T) {
	assert.InDelta(t, math.Log(0.1), logRF(0.1, 1), 1e-12)
	assert.InDelta(t, math.Log(120), logRF(1.0, 5), 1e-9)

	got := logRF(1e16, 14)
	want := 14 * math.Log(1e16)
	relErr := math.Abs(got-want) / math.Abs(want)
	assert.LessOrEqual(t, relErr, 1e-9)
}

func TestLogRFBranchBoundaries(t *testing.T) {
	// n<=13, x<1e22: direct product branch
	assert.InDelta(t, math.Log(2*3*4), logRF(2.0, 3), 1e-12)
	// n>13, x<1e15: lgamma branch
	lg1, _ := math.Lgamma(5.0 + 14)
	lg2, _ := math.Lgamma(5.0)
	assert.InDelta(t, lg1-lg2, logRF(5.0, 14), 1e-9)
	// x>=1e22: sum-of-logs branch regardless of n
	sum := 0.0
	for i := 0; i < 3; i++ {
		sum += math.Log(1e23 + float64(i))
	}
	assert.InDelta(t, sum, logRF(1e23, 3), 1e-9)
}
