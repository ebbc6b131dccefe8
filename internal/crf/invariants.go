package crf

import "fmt"

// CheckInvariants verifies the count-bookkeeping invariants: every
// live topic has m>=1, every table has n>=1 and sum(n_v)==n, every
// restaurant's tables sum to its document length, the franchise-wide
// table count agrees with both sum(topic.m) and the total table
// count, and every topic's aggregate n/n_v agrees with the sum over
// the tables serving it. It never mutates state and returns the first
// violation found, or nil. The samplers do not call it themselves; the
// invariant tests call it after sweeps.
func (f *Franchise) CheckInvariants() error {
	sumMk := 0
	sumTables := 0

	for _, topic := range f.Topics() {
		if topic.M < 1 {
			return fmt.Errorf("topic %d has m=%d, want >= 1", topic.ID, topic.M)
		}
		sumMk += topic.M
	}

	for j, r := range f.Restaurants {
		total := 0
		for _, t := range r.Tables() {
			if t.N < 1 {
				return fmt.Errorf("restaurant %d table %d has n=%d, want >= 1", j, t.ID, t.N)
			}
			sumV := 0
			for _, cnt := range t.Nv {
				sumV += cnt
			}
			if sumV != t.N {
				return fmt.Errorf("restaurant %d table %d: sum(n_v)=%d != n=%d", j, t.ID, sumV, t.N)
			}
			sumTables++
			total += t.N
		}
		if total != r.N {
			return fmt.Errorf("restaurant %d: sum(table.n)=%d != document length %d", j, total, r.N)
		}
	}

	if sumMk != f.M {
		return fmt.Errorf("sum(topic.m)=%d != franchise.m=%d", sumMk, f.M)
	}
	if sumTables != f.M {
		return fmt.Errorf("total table count=%d != franchise.m=%d", sumTables, f.M)
	}

	for _, topic := range f.Topics() {
		wantN := 0
		wantNv := make([]int, f.V)
		for _, r := range f.Restaurants {
			for _, t := range r.Tables() {
				if t.Topic != topic.ID {
					continue
				}
				wantN += t.N
				for v, cnt := range t.Nv {
					wantNv[v] += cnt
				}
			}
		}
		if wantN != topic.N {
			return fmt.Errorf("topic %d: sum(serving tables.n)=%d != topic.n=%d", topic.ID, wantN, topic.N)
		}
		for v := 0; v < f.V; v++ {
			if wantNv[v] != topic.Nv[v] {
				return fmt.Errorf("topic %d word %d: sum(serving tables.n_v)=%d != topic.n_v=%d",
					topic.ID, v, wantNv[v], topic.Nv[v])
			}
		}
	}

	if f.NumTopics() < 1 {
		return fmt.Errorf("no topics remain")
	}

	return nil
}
