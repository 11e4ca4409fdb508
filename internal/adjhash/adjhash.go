// Package adjhash implements the group-adjacency hash: a multi-map from
// local group id to a sorted list of (neighbor global group id, weight)
// pairs. A flat ordered vector per key with binary-search insertion gives
// deterministic adjncy emission without a chained hash table: one sorted
// []Entry slice per key, insertion by binary search.
package adjhash

import "sort"

// Entry is one (neighbor group id, accumulated weight) adjacency record.
type Entry struct {
	Adj    int32
	Weight int32
}

// Hash is the group-adjacency multi-map.
type Hash struct {
	buckets map[int32][]Entry
}

// New returns an empty Hash.
func New() *Hash {
	return &Hash{buckets: make(map[int32][]Entry)}
}

// Insert accumulates weight onto the (key, adj) pair, inserting a new sorted
// entry if adj is not yet present under key: if adj is already present,
// weight is accumulated ("duplicate"); otherwise a new entry is spliced in
// ascending-adj order ("inserted").
func (h *Hash) Insert(key, adj, weight int32) (inserted bool) {
	b := h.buckets[key]
	i := sort.Search(len(b), func(i int) bool { return b[i].Adj >= adj })

	if i < len(b) && b[i].Adj == adj {
		b[i].Weight += weight
		return false
	}

	b = append(b, Entry{})
	copy(b[i+1:], b[i:])
	b[i] = Entry{Adj: adj, Weight: weight}
	h.buckets[key] = b
	return true
}

// Entries returns the sorted adjacency list for key, or nil if key has none
// (a group seen only from outside produces a valid, empty entry here).
func (h *Hash) Entries(key int32) []Entry {
	return h.buckets[key]
}

// Degree returns the number of distinct neighbors recorded for key.
func (h *Hash) Degree(key int32) int {
	return len(h.buckets[key])
}
