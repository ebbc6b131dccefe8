// Package crf implements the Chinese Restaurant Franchise bookkeeping:
// the per-word/per-topic count store and the restaurant/table/topic
// registry. Restaurants are created once per document and never destroyed;
// tables and topics are created and destroyed by the samplers in
// internal/sampler, which are the only callers expected to mutate a
// Franchise's structure.
package crf

// Customer is one token: its word id and a (non-owning) reference to
// the table it currently sits at, by id within its own restaurant.
type Customer struct {
	Word  int
	Table int
}

// Table is a per-document cluster of customers sharing one topic. Nv
// is a sparse cache of nonzero per-word counts, maintained eagerly:
// entries are deleted the moment their count returns to zero, so
// ranging over Nv always yields exactly the occupied words.
type Table struct {
	ID    int
	N     int
	Nv    map[int]int
	Topic int
}

// Topic (dish) is a Dirichlet-multinomial distribution over the
// vocabulary, shared by every table that serves it. Nv is dense
// because topics accumulate counts across many tables and typically
// touch most of the vocabulary over the life of a run.
type Topic struct {
	ID int
	N  int
	Nv []int
	M  int
}

// Restaurant is one document: a fixed-length ordered sequence of
// customers and a mutable, unordered collection of tables.
type Restaurant struct {
	Customers  []Customer
	N          int
	tables     map[int]*Table
	tableOrder []int
}

// Tables returns the restaurant's tables in a stable, deterministic
// order (insertion order). Tests that fix a seed depend on this order
// for reproducibility; correctness never does.
func (r *Restaurant) Tables() []*Table {
	out := make([]*Table, len(r.tableOrder))
	for i, id := range r.tableOrder {
		out[i] = r.tables[id]
	}
	return out
}

// TableByID looks up a table by id, or returns nil if it has been
// removed. Code must never dereference a stale id after removal;
// looking it up here instead of caching the pointer makes that
// mistake visible immediately (a nil pointer) rather than silently
// wrong.
func (r *Restaurant) TableByID(id int) *Table { return r.tables[id] }

// NumTables returns the number of tables currently in the restaurant.
func (r *Restaurant) NumTables() int { return len(r.tableOrder) }
