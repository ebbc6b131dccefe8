package sampler

import (
	"github.com/bobonovski/hdplda/internal/crf"
	"github.com/bobonovski/hdplda/internal/rng"
)

// TableSweep resamples every customer's table across every
// restaurant: decrement, compute phi_k(v) for every surviving topic,
// compute G0(v), build the T+1-outcome discrete distribution, sample,
// and (on a new table) sample a dish for it from the K+1-outcome
// distribution over existing topics plus a brand new one.
func TableSweep(f *crf.Franchise, r rng.Randomizer) {
	for j := range f.Restaurants {
		sweepRestaurantTables(f, r, j)
	}
}

func sweepRestaurantTables(f *crf.Franchise, r rng.Randomizer, j int) {
	restaurant := f.Restaurants[j]

	for i := range restaurant.Customers {
		cust := &restaurant.Customers[i]
		v := cust.Word

		// 1. Decrement.
		table := restaurant.TableByID(cust.Table)
		topic := f.TopicByID(table.Topic)
		f.AddTableCount(table, v, -1)
		f.AddTopicCount(topic, v, -1)
		if table.N == 0 {
			f.RemoveEmptyTable(j, table.ID)
		}

		// 2 & 3. phi_k(v) for every surviving topic, and G0(v).
		topics := f.Topics()
		phi := make([]float64, len(topics))
		g0v := 0.0
		for k, topic := range topics {
			phi[k] = f.Mass(topic, v)
			g0v += float64(topic.M) * phi[k]
		}
		g0v += f.Gamma * (1.0 / float64(f.V))
		g0Numerator := g0v
		g0v /= float64(f.M) + f.Gamma

		// 4. Build the unnormalized T+1-outcome distribution.
		tables := restaurant.Tables()
		cdf := make([]float64, len(tables)+1)
		sum := 0.0
		phiOfTopic := make(map[int]float64, len(topics))
		for k, topic := range topics {
			phiOfTopic[topic.ID] = phi[k]
		}
		for t, tbl := range tables {
			sum += float64(tbl.N) * phiOfTopic[tbl.Topic]
			cdf[t] = sum
		}
		sum += f.Alpha0 * g0v
		cdf[len(tables)] = sum

		// 5. Sample a table.
		choice := r.DiscreteFromCDF(cdf)

		var chosenTable *crf.Table
		if choice < len(tables) {
			chosenTable = tables[choice]
		} else {
			// 6. New table: sample a dish for it from K+1 outcomes.
			dishCDF := make([]float64, len(topics)+1)
			dishSum := 0.0
			for k, topic := range topics {
				dishSum += float64(topic.M) * phi[k]
				dishCDF[k] = dishSum
			}
			dishCDF[len(topics)] = g0Numerator

			dishChoice := r.DiscreteFromCDF(dishCDF)
			var topicID int
			if dishChoice < len(topics) {
				topicID = topics[dishChoice].ID
			} else {
				topicID = f.AddTopic().ID
			}
			chosenTable = f.AddTable(j, topicID)
		}

		// 7. Increment.
		f.AddTableCount(chosenTable, v, 1)
		f.AddTopicCount(f.TopicByID(chosenTable.Topic), v, 1)
		cust.Table = chosenTable.ID
	}
}
