package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/hdplda/corpus"
	"github.com/bobonovski/hdplda/internal/crf"
	"github.com/bobonovski/hdplda/internal/rng"
)

func mustFranchise(t *testing.T, v int, docs [][]int, beta, gamma, alpha0 float64) *crf.Franchise {
	t.Helper()
	c, err := corpus.New(v, docs)
	require.NoError(t, err)
	f, err := crf.Init(c, beta, gamma, alpha0, 1, 1, 1, 1)
	require.NoError(t, err)
	return f
}

// A single-token document has exactly one table before the sweep,
// and its removal during decrement leaves zero surviving tables in
// that restaurant, which forces the "new table" branch with
// certainty regardless of the random draw. Only restaurant 0 is swept,
// so the check covers exactly that one customer's step: restaurant 1's
// customers could open further tables and change m.
func TestTableSweepForcesNewTableWhenRestaurantEmptied(t *testing.T) {
	f := mustFranchise(t, 3, [][]int{{0}, {1, 1, 2}}, 0.1, 1.0, 1.0)
	mBefore := f.M

	r := rng.New(1)
	sweepRestaurantTables(f, r, 0)

	assert.Equal(t, 1, f.Restaurants[0].NumTables())
	assert.Equal(t, mBefore, f.M)
	require.NoError(t, f.CheckInvariants())
}

// Document length is conserved across many sweeps.
func TestTableSweepConservesDocumentLength(t *testing.T) {
	docs := [][]int{{0, 1, 2}, {1, 1, 0, 2}, {2, 2, 2}, {0}, {1, 2, 0, 1, 0}}
	f := mustFranchise(t, 3, docs, 0.1, 1.0, 1.0)
	r := rng.New(7)

	total := f.Restaurants[0].N + f.Restaurants[1].N + f.Restaurants[2].N +
		f.Restaurants[3].N + f.Restaurants[4].N

	for sweep := 0; sweep < 50; sweep++ {
		TableSweep(f, r)
		got := 0
		for j, restaurant := range f.Restaurants {
			sum := 0
			for _, table := range restaurant.Tables() {
				sum += table.N
			}
			require.Equal(t, restaurant.N, sum, "restaurant %d at sweep %d", j, sweep)
			got += sum
		}
		require.Equal(t, total, got, "sweep %d", sweep)
		require.NoError(t, f.CheckInvariants(), "sweep %d", sweep)
	}
}

func TestTableSweepIsDeterministicForFixedSeed(t *testing.T) {
	docs := [][]int{{0, 1, 2}, {1, 1, 0, 2}, {2, 2, 2}}

	f1 := mustFranchise(t, 3, docs, 0.1, 1.0, 1.0)
	f2 := mustFranchise(t, 3, docs, 0.1, 1.0, 1.0)

	TableSweep(f1, rng.New(99))
	TableSweep(f2, rng.New(99))

	assert.Equal(t, f1.NumTopics(), f2.NumTopics())
	assert.Equal(t, f1.M, f2.M)
	for j := range f1.Restaurants {
		assert.Equal(t, f1.Restaurants[j].NumTables(), f2.Restaurants[j].NumTables())
	}
}
