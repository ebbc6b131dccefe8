package crf

import (
	"github.com/bobonovski/hdplda/corpus"
	"github.com/bobonovski/hdplda/hdperrors"
)

// Franchise is the process-lifetime CRF state: every restaurant
// (document), every currently-live topic (dish), the franchise-wide
// table count m, and the hyperparameters and their Gamma priors.
type Franchise struct {
	V int

	Beta   float64
	Gamma  float64
	Alpha0 float64

	GammaA   float64
	GammaB   float64
	Alpha0A  float64
	Alpha0B  float64

	Restaurants []*Restaurant

	M int

	topics     map[int]*Topic
	topicOrder []int

	nextTableID int
	nextTopicID int
}

// Init builds the initial CRF state from a corpus: one topic seeded
// with every token in the corpus, and one table per document seating
// all of that document's tokens. It validates hyperparameters and
// fails construction cleanly on any violated precondition rather than
// returning a partially initialized value.
func Init(c *corpus.Corpus, beta, gamma, alpha0, gammaA, gammaB, alpha0A, alpha0B float64) (*Franchise, error) {
	for _, hp := range []struct {
		name string
		val  float64
	}{
		{"beta", beta}, {"gamma", gamma}, {"alpha0", alpha0},
		{"gammaA", gammaA}, {"gammaB", gammaB},
		{"alpha0A", alpha0A}, {"alpha0B", alpha0B},
	} {
		if hp.val <= 0 {
			return nil, hdperrors.NewInvalidConfig(hp.name, "must be > 0")
		}
	}

	f := &Franchise{
		V:           c.VocabSize(),
		Beta:        beta,
		Gamma:       gamma,
		Alpha0:      alpha0,
		GammaA:      gammaA,
		GammaB:      gammaB,
		Alpha0A:     alpha0A,
		Alpha0B:     alpha0B,
		Restaurants: make([]*Restaurant, c.NumDocs()),
		topics:      make(map[int]*Topic),
	}

	topic := f.AddTopic()

	for j := 0; j < c.NumDocs(); j++ {
		doc := c.Doc(j)
		r := &Restaurant{
			N:         len(doc),
			Customers: make([]Customer, len(doc)),
			tables:    make(map[int]*Table),
		}
		f.Restaurants[j] = r

		table := f.AddTable(j, topic.ID)
		for i, v := range doc {
			f.AddTableCount(table, v, 1)
			f.AddTopicCount(topic, v, 1)
			r.Customers[i] = Customer{Word: v, Table: table.ID}
		}
	}

	return f, nil
}

// AddTopic creates a new, empty topic and registers it with the
// franchise. Its counts are zero; the caller must restore the count
// invariants (via AddTopicCount) before yielding control.
func (f *Franchise) AddTopic() *Topic {
	id := f.nextTopicID
	f.nextTopicID++
	topic := &Topic{ID: id, Nv: make([]int, f.V)}
	f.topics[id] = topic
	f.topicOrder = append(f.topicOrder, id)
	return topic
}

// AddTable creates a new, empty table serving topic topicID in
// restaurant j and registers it. This bumps the structural counts
// (topic.M, franchise.M) immediately, because a table always serves
// some topic from the moment it exists; it does not touch n/n_v,
// which is the Count Store's responsibility and which the caller must
// restore via AddTableCount/AddTopicCount before yielding control.
func (f *Franchise) AddTable(j int, topicID int) *Table {
	id := f.nextTableID
	f.nextTableID++
	table := &Table{ID: id, Nv: make(map[int]int), Topic: topicID}

	r := f.Restaurants[j]
	r.tables[id] = table
	r.tableOrder = append(r.tableOrder, id)

	topic := f.topics[topicID]
	topic.M++
	f.M++

	return table
}

// RemoveEmptyTable removes table tableID from restaurant j.
// Precondition: the table's n has already reached 0. It decrements
// the owning topic's m and the franchise's m, and removes the topic
// too if that was its last table.
func (f *Franchise) RemoveEmptyTable(j int, tableID int) {
	r := f.Restaurants[j]
	table, ok := r.tables[tableID]
	if !ok {
		panic(hdperrors.NewInvariantViolation("RemoveEmptyTable", "table not found"))
	}
	if table.N != 0 {
		panic(hdperrors.NewInvariantViolation("RemoveEmptyTable", "table is not empty"))
	}

	delete(r.tables, tableID)
	r.tableOrder = removeID(r.tableOrder, tableID)

	topic := f.topics[table.Topic]
	topic.M--
	f.M--
	if topic.M < 0 {
		panic(hdperrors.NewInvariantViolation("RemoveEmptyTable", "topic.M went negative"))
	}
	if topic.M == 0 {
		f.removeTopic(table.Topic)
	}
}

func (f *Franchise) removeTopic(topicID int) {
	delete(f.topics, topicID)
	f.topicOrder = removeID(f.topicOrder, topicID)
}

// RemoveEmptyTopic removes topicID from the franchise directly.
// Precondition: the topic's m has already reached 0 (used by the
// Topic Sampler when a table's departure was that topic's last
// table). RemoveEmptyTable uses the same underlying removal when a
// table's removal orphans its topic.
func (f *Franchise) RemoveEmptyTopic(topicID int) {
	topic, ok := f.topics[topicID]
	if !ok {
		panic(hdperrors.NewInvariantViolation("RemoveEmptyTopic", "topic not found"))
	}
	if topic.M != 0 {
		panic(hdperrors.NewInvariantViolation("RemoveEmptyTopic", "topic still has tables"))
	}
	f.removeTopic(topicID)
}

// Topics returns the currently live topics in a stable, deterministic
// order (insertion order).
func (f *Franchise) Topics() []*Topic {
	out := make([]*Topic, len(f.topicOrder))
	for i, id := range f.topicOrder {
		out[i] = f.topics[id]
	}
	return out
}

// TopicByID looks up a topic by id, or nil if it has been removed.
func (f *Franchise) TopicByID(id int) *Topic { return f.topics[id] }

// NumTopics returns the current live topic count K.
func (f *Franchise) NumTopics() int { return len(f.topicOrder) }

func removeID(ids []int, target int) []int {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
