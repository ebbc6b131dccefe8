package hdp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/hdplda/config"
	"github.com/bobonovski/hdplda/corpus"
)

func mustModel(t *testing.T, docs [][]int, vocabSize int) *Model {
	t.Helper()
	c, err := corpus.New(vocabSize, docs)
	require.NoError(t, err)
	cfg := config.Config{
		Seed: 1, Beta: 0.1, Gamma: 1.0, Alpha0: 1.0,
		GammaA: 1, GammaB: 1, Alpha0A: 1, Alpha0B: 1,
		Alpha0Iters: 3,
	}
	m, err := New(c, cfg)
	require.NoError(t, err)
	return m
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	c, err := corpus.New(2, [][]int{{0, 1}})
	require.NoError(t, err)
	_, err = New(c, config.Config{})
	assert.Error(t, err)
}

func TestSnapshotMatchesInitialState(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	numTables, numTopics, gamma, alpha0, beta := m.Snapshot()
	assert.Equal(t, 2, numTables)
	assert.Equal(t, 1, numTopics)
	assert.Equal(t, 1.0, gamma)
	assert.Equal(t, 1.0, alpha0)
	assert.Equal(t, 0.1, beta)
}

func TestPhiRowsSumToOne(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	phi := m.Phi()
	require.Len(t, phi, 1)
	sum := 0.0
	for _, p := range phi[0] {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestThetaRowsSumToOne(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	theta := m.Theta()
	require.Len(t, theta, 2)
	for j, row := range theta {
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "restaurant %d", j)
	}
}

func TestPerplexityIsPositiveAndFinite(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	phi := m.Phi()
	theta := m.Theta()
	p := m.Perplexity(phi, theta)
	assert.Greater(t, p, 0.0)
	assert.False(t, p != p, "perplexity must not be NaN")
	assert.False(t, math.IsInf(p, 0), "perplexity must not be infinite")
}

func TestSticksSumToOne(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	sticks := m.Sticks()
	require.Len(t, sticks, 2) // one topic + tail
	sum := 0.0
	for _, s := range sticks {
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEntropyIsNonNegative(t *testing.T) {
	m := mustModel(t, [][]int{{0, 1}, {2, 2, 0}}, 3)
	entropy := m.Entropy(m.Phi())
	require.Len(t, entropy, 1)
	assert.GreaterOrEqual(t, entropy[0], 0.0)
}

func TestSweepPreservesInvariantsAndCorpusSize(t *testing.T) {
	docs := [][]int{{0, 1, 2}, {1, 1, 0, 2}, {2, 2, 2}}
	m := mustModel(t, docs, 3)

	for i := 0; i < 15; i++ {
		m.Sweep(i)
		require.NoError(t, m.Franchise().CheckInvariants(), "sweep %d", i)
		for j, restaurant := range m.Franchise().Restaurants {
			assert.Equal(t, len(docs[j]), restaurant.N, "restaurant %d sweep %d", j, i)
		}
	}
}

func TestSweepIsDeterministicForFixedSeed(t *testing.T) {
	docs := [][]int{{0, 1, 2}, {1, 1, 0, 2}, {2, 2, 2}}
	m1 := mustModel(t, docs, 3)
	m2 := mustModel(t, docs, 3)

	for i := 0; i < 10; i++ {
		m1.Sweep(i)
		m2.Sweep(i)
	}

	n1, k1, g1, a1, _ := m1.Snapshot()
	n2, k2, g2, a2, _ := m2.Snapshot()
	assert.Equal(t, n1, n2)
	assert.Equal(t, k1, k2)
	assert.Equal(t, g1, g2)
	assert.Equal(t, a1, a2)
}
