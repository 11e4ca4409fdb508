package adjhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertSortedAndDeterministic(t *testing.T) {
	h := New()
	assert.True(t, h.Insert(0, 5, 1))
	assert.True(t, h.Insert(0, 2, 1))
	assert.True(t, h.Insert(0, 8, 1))

	entries := h.Entries(0)
	adjs := make([]int32, len(entries))
	for i, e := range entries {
		adjs[i] = e.Adj
	}
	assert.Equal(t, []int32{2, 5, 8}, adjs)
}

func TestInsertDuplicateAccumulatesWeight(t *testing.T) {
	h := New()
	h.Insert(1, 3, 2)
	inserted := h.Insert(1, 3, 5)
	assert.False(t, inserted)

	entries := h.Entries(1)
	assert.Len(t, entries, 1)
	assert.Equal(t, int32(7), entries[0].Weight)
}

func TestEmptyKeyYieldsEmptyEntries(t *testing.T) {
	h := New()
	assert.Empty(t, h.Entries(42))
	assert.Equal(t, 0, h.Degree(42))
}
