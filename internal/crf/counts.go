package crf

import "github.com/bobonovski/hdplda/hdperrors"

// AddTopicCount increments (or, for negative delta, decrements) a
// topic's per-word count and total. A resulting negative count is a
// fatal invariant violation under correct use.
func (f *Franchise) AddTopicCount(topic *Topic, v int, delta int) {
	topic.N += delta
	topic.Nv[v] += delta
	if topic.N < 0 || topic.Nv[v] < 0 {
		panic(hdperrors.NewInvariantViolation("AddTopicCount", "count went negative"))
	}
}

// AddTableCount increments (or decrements) a table's per-word count
// and total. The sparse cache entry for v is dropped once its count
// returns to zero, keeping Nv's key set exactly the occupied words.
func (f *Franchise) AddTableCount(table *Table, v int, delta int) {
	table.N += delta
	if table.N < 0 {
		panic(hdperrors.NewInvariantViolation("AddTableCount", "table.N went negative"))
	}
	newCount := table.Nv[v] + delta
	if newCount < 0 {
		panic(hdperrors.NewInvariantViolation("AddTableCount", "table.Nv went negative"))
	}
	if newCount == 0 {
		delete(table.Nv, v)
	} else {
		table.Nv[v] = newCount
	}
}

// Mass computes the predictive word probability phi_k(v) of topic
// under the current counts and beta smoothing.
func (f *Franchise) Mass(topic *Topic, v int) float64 {
	return (float64(topic.Nv[v]) + f.Beta) / (float64(topic.N) + float64(f.V)*f.Beta)
}
