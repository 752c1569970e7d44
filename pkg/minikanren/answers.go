package minikanren

import (
	"github.com/cespare/xxhash/v2"
)

// AnswerSet collects reified answers without duplicates, keeping the order
// in which they were first added. The same ground answer is often derived
// along several branches of a search; it is stored once.
//
// Answers are bucketed by an xxhash fingerprint of their printed form and
// compared structurally within a bucket, so distinct terms that happen to
// print alike are still kept apart.
type AnswerSet struct {
	buckets map[uint64][]int
	items   []Term
}

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{buckets: make(map[uint64][]int)}
}

// Add inserts term and reports whether it was not already present.
func (a *AnswerSet) Add(term Term) bool {
	key := xxhash.Sum64String(term.String())
	for _, i := range a.buckets[key] {
		if Equal(a.items[i], term) {
			return false
		}
	}
	a.buckets[key] = append(a.buckets[key], len(a.items))
	a.items = append(a.items, term)
	return true
}

// Contains reports whether an equal term has been added.
func (a *AnswerSet) Contains(term Term) bool {
	for _, i := range a.buckets[xxhash.Sum64String(term.String())] {
		if Equal(a.items[i], term) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct answers.
func (a *AnswerSet) Len() int {
	return len(a.items)
}

// Items returns the distinct answers in first-seen order.
func (a *AnswerSet) Items() []Term {
	out := make([]Term, len(a.items))
	copy(out, a.items)
	return out
}
