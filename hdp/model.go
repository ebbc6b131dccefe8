// Package hdp wires the Count Store, Table Sampler, Topic Sampler and
// Hyperparameter Sampler together into a single driver: construct, then
// repeatedly table-sample / topic-sample / optionally gamma-sample /
// optionally alpha0-sample, then read out phi/theta/perplexity.
package hdp

import (
	"math"
	"time"

	log "github.com/golang/glog"

	"github.com/bobonovski/hdplda/config"
	"github.com/bobonovski/hdplda/corpus"
	"github.com/bobonovski/hdplda/internal/crf"
	"github.com/bobonovski/hdplda/internal/metrics"
	"github.com/bobonovski/hdplda/internal/rng"
	"github.com/bobonovski/hdplda/internal/sampler"
	"github.com/bobonovski/hdplda/util"
)

// Model owns one franchise and the single logical random stream every
// sampler in a sweep draws from.
type Model struct {
	f   *crf.Franchise
	r   rng.Randomizer
	cfg config.Config
}

// New builds a Model from a corpus and a validated config, seeding the
// CRF state via crf.Init and the random stream from cfg.Seed.
func New(c *corpus.Corpus, cfg config.Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := crf.Init(c, cfg.Beta, cfg.Gamma, cfg.Alpha0, cfg.GammaA, cfg.GammaB, cfg.Alpha0A, cfg.Alpha0B)
	if err != nil {
		return nil, err
	}
	return &Model{f: f, r: rng.New(cfg.Seed), cfg: cfg}, nil
}

// TableSample resamples every customer's table assignment.
func (m *Model) TableSample() {
	start := time.Now()
	sampler.TableSweep(m.f, m.r)
	metrics.SweepDuration.WithLabelValues("table").Observe(time.Since(start).Seconds())
	metrics.SweepsTotal.WithLabelValues("table").Inc()
	m.publishGauges()
}

// TopicSample resamples every table's topic assignment.
func (m *Model) TopicSample() {
	start := time.Now()
	sampler.TopicSweep(m.f, m.r, m.cfg.FanoutWorkers)
	metrics.SweepDuration.WithLabelValues("topic").Observe(time.Since(start).Seconds())
	metrics.SweepsTotal.WithLabelValues("topic").Inc()
	m.publishGauges()
}

// SampleGamma resamples the top-level concentration parameter.
func (m *Model) SampleGamma() float64 {
	g := sampler.SampleGamma(m.f, m.r)
	metrics.GammaValue.Set(g)
	return g
}

// SampleAlpha0 resamples the per-restaurant concentration parameter
// over iters auxiliary-variable iterations.
func (m *Model) SampleAlpha0(iters int) float64 {
	a := sampler.SampleAlpha0(m.f, m.r, iters)
	metrics.Alpha0Value.Set(a)
	return a
}

// Sweep runs one full sweep: a table sample, a topic sample, and both
// hyperparameter resamples, logging progress the way a long-running
// training loop does.
func (m *Model) Sweep(iteration int) {
	if iteration%10 == 0 {
		log.Infof("sweep %5d, K=%d, m=%d, gamma=%.4f, alpha0=%.4f",
			iteration, m.f.NumTopics(), m.f.M, m.f.Gamma, m.f.Alpha0)
	}
	m.TableSample()
	m.TopicSample()
	m.SampleGamma()
	m.SampleAlpha0(m.cfg.Alpha0Iters)
}

func (m *Model) publishGauges() {
	metrics.TopicCount.Set(float64(m.f.NumTopics()))
	metrics.TableCount.Set(float64(m.f.M))
}

// Snapshot reports the CRF's current structural summary.
func (m *Model) Snapshot() (numTables, numTopics int, gamma, alpha0, beta float64) {
	return m.f.M, m.f.NumTopics(), m.f.Gamma, m.f.Alpha0, m.f.Beta
}

// Franchise exposes the underlying CRF state for callers (such as
// tests) that need direct access to invariant checking.
func (m *Model) Franchise() *crf.Franchise { return m.f }

// Phi returns the K x V predictive word distribution matrix, row k
// being topic k's smoothed multinomial over the vocabulary.
func (m *Model) Phi() [][]float64 {
	topics := m.f.Topics()
	phi := make([][]float64, len(topics))
	for k, topic := range topics {
		row := make([]float64, m.f.V)
		for v := 0; v < m.f.V; v++ {
			row[v] = m.f.Mass(topic, v)
		}
		phi[k] = row
	}
	return phi
}

// Theta returns the D x K document-topic mixture matrix: entry (j,k)
// = (sum of table sizes in restaurant j serving topic k,
// plus alpha0 * (m_k + gamma/K) / (m+gamma)) / (n_j + alpha0).
func (m *Model) Theta() [][]float64 {
	topics := m.f.Topics()
	K := len(topics)
	indexOf := make(map[int]int, K)
	for k, topic := range topics {
		indexOf[topic.ID] = k
	}

	theta := make([][]float64, len(m.f.Restaurants))
	for j, restaurant := range m.f.Restaurants {
		row := make([]float64, K)
		for _, table := range restaurant.Tables() {
			row[indexOf[table.Topic]] += float64(table.N)
		}
		for k, topic := range topics {
			row[k] += m.f.Alpha0 * (float64(topic.M) + m.f.Gamma/float64(K)) / (float64(m.f.M) + m.f.Gamma)
			row[k] /= float64(restaurant.N) + m.f.Alpha0
		}
		theta[j] = row
	}
	return theta
}

// Perplexity computes exp(-(1/N) sum_j,i log sum_k theta[j][k]*phi[k][v_ji])
// over every token in the corpus, where phi and theta are point
// estimates such as those returned by Phi()/Theta() for this same corpus.
func (m *Model) Perplexity(phi, theta [][]float64) float64 {
	logLik := 0.0
	n := 0
	for j, restaurant := range m.f.Restaurants {
		for _, cust := range restaurant.Customers {
			pv := 0.0
			for k := range phi {
				pv += theta[j][k] * phi[k][cust.Word]
			}
			logLik -= math.Log(pv)
			n++
		}
	}
	return math.Exp(logLik / float64(n))
}

// Sticks returns the stick lengths of G0's top-level mixing
// proportions: component k proportional to topic k's total customer
// count n_k, plus a K+1'th tail component proportional to gamma,
// normalized to sum to 1.
func (m *Model) Sticks() []float64 {
	topics := m.f.Topics()
	lengths := make([]float64, len(topics)+1)
	for k, topic := range topics {
		lengths[k] = float64(topic.N)
	}
	lengths[len(topics)] = m.f.Gamma
	total := util.VectorSum(lengths)
	for k := range lengths {
		lengths[k] /= total
	}
	return lengths
}

// Entropy returns the per-topic entropy of phi in nats.
func (m *Model) Entropy(phi [][]float64) []float64 {
	entropy := make([]float64, len(phi))
	for k, row := range phi {
		sum := 0.0
		for _, p := range row {
			if p > 0 {
				sum -= p * math.Log(p)
			}
		}
		entropy[k] = sum
	}
	return entropy
}
