package sampler

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/bobonovski/hdplda/internal/crf"
	"github.com/bobonovski/hdplda/internal/rng"
)

// wordCount pairs an occupied word with its count on a table, the
// block of nonzero entries a table's topic reassignment iterates over.
type wordCount struct {
	word  int
	count int
}

// TopicSweep resamples every table's topic across every restaurant,
// jointly over all of its customers.
//
// fanoutWorkers bounds the concurrency of the per-topic log-weight
// computation: that computation is read-only fan-out over topics, so
// it may run in parallel provided the serial decrement/increment
// phases never overlap with it. A value <= 1 runs the fan-out inline.
func TopicSweep(f *crf.Franchise, r rng.Randomizer, fanoutWorkers int) {
	for j := range f.Restaurants {
		sweepRestaurantTopics(f, r, j, fanoutWorkers)
	}
}

func sweepRestaurantTopics(f *crf.Franchise, r rng.Randomizer, j int, fanoutWorkers int) {
	restaurant := f.Restaurants[j]

	for _, table := range restaurant.Tables() {
		// 1. Decrement at block level.
		oldTopic := f.TopicByID(table.Topic)
		occupied := make([]wordCount, 0, len(table.Nv))
		for v, cnt := range table.Nv {
			occupied = append(occupied, wordCount{word: v, count: cnt})
		}

		for _, wc := range occupied {
			f.AddTopicCount(oldTopic, wc.word, -wc.count)
		}
		oldTopic.M--
		f.M--
		if oldTopic.M == 0 {
			f.RemoveEmptyTopic(oldTopic.ID)
		}

		// 2 & 3. Log-weights for every surviving topic, plus new topic.
		topics := f.Topics()
		logP := computeLogWeights(f, topics, table.N, occupied, fanoutWorkers)

		// 4. Normalize in log-space by subtracting the max, then
		// build cumulative sums and sample.
		maxLogP := logP[len(logP)-1]
		for _, lp := range logP {
			if lp > maxLogP {
				maxLogP = lp
			}
		}
		cdf := make([]float64, len(logP))
		sum := 0.0
		for k, lp := range logP {
			sum += math.Exp(lp - maxLogP)
			cdf[k] = sum
		}

		choice := r.DiscreteFromCDF(cdf)

		// 5. If new topic, allocate it; increment the chosen topic's
		// aggregate counts by the whole table's block.
		var newTopic *crf.Topic
		if choice < len(topics) {
			newTopic = topics[choice]
		} else {
			newTopic = f.AddTopic()
		}
		newTopic.M++
		f.M++
		for _, wc := range occupied {
			f.AddTopicCount(newTopic, wc.word, wc.count)
		}
		table.Topic = newTopic.ID
	}
}

// computeLogWeights computes log P_k for every surviving topic and
// the new-topic log-weight log P_K. When
// fanoutWorkers > 1, the per-topic computation runs concurrently
// across an errgroup-managed worker pool; each goroutine only reads
// its own topic's counts and writes only its own slot, so no
// synchronization beyond the final Wait is required, and the shared
// random stream is never touched inside the fan-out.
func computeLogWeights(f *crf.Franchise, topics []*crf.Topic, n int, occupied []wordCount, fanoutWorkers int) []float64 {
	logP := make([]float64, len(topics)+1)

	compute := func(k int) {
		topic := topics[k]
		lp := math.Log(float64(topic.M))
		lp -= logRF(float64(topic.N)+float64(f.V)*f.Beta, n)
		for _, wc := range occupied {
			lp += logRF(float64(topic.Nv[wc.word])+f.Beta, wc.count)
		}
		logP[k] = lp
	}

	if fanoutWorkers > 1 && len(topics) > 0 {
		g, _ := errgroup.WithContext(context.Background())
		g.SetLimit(fanoutWorkers)
		for k := range topics {
			k := k
			g.Go(func() error {
				compute(k)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for k := range topics {
			compute(k)
		}
	}

	newLP := math.Log(f.Gamma)
	newLP -= logRF(float64(f.V)*f.Beta, n)
	for _, wc := range occupied {
		newLP += logRF(f.Beta, wc.count)
	}
	logP[len(topics)] = newLP

	return logP
}

