package pmpi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOnAll(comms []*Comm, fn func(c *Comm)) {
	var wg sync.WaitGroup
	wg.Add(len(comms))
	for _, c := range comms {
		c := c
		go func() {
			defer wg.Done()
			fn(c)
		}()
	}
	wg.Wait()
}

func TestAllgather(t *testing.T) {
	comms := NewWorld(4)
	results := make([][]int32, 4)
	var mu sync.Mutex

	runOnAll(comms, func(c *Comm) {
		v := int32(c.Rank() * 10)
		out := c.Allgather(v)
		mu.Lock()
		results[c.Rank()] = out
		mu.Unlock()
	})

	want := []int32{0, 10, 20, 30}
	for r := 0; r < 4; r++ {
		assert.Equal(t, want, results[r], "rank %d", r)
	}
}

func TestAllgatherv(t *testing.T) {
	comms := NewWorld(3)
	results := make([][][]int32, 3)
	var mu sync.Mutex

	runOnAll(comms, func(c *Comm) {
		local := make([]int32, c.Rank()+1)
		for i := range local {
			local[i] = int32(c.Rank())
		}
		out := c.Allgatherv(local)
		mu.Lock()
		results[c.Rank()] = out
		mu.Unlock()
	})

	for r := 0; r < 3; r++ {
		require.Len(t, results[r], 3)
		assert.Equal(t, []int32{0}, results[r][0])
		assert.Equal(t, []int32{1, 1}, results[r][1])
		assert.Equal(t, []int32{2, 2, 2}, results[r][2])
	}
}

func TestAllreduceMin(t *testing.T) {
	comms := NewWorld(5)
	results := make([]int32, 5)
	var mu sync.Mutex

	runOnAll(comms, func(c *Comm) {
		v := int32(5 - c.Rank())
		out := c.Allreduce(v, MinOp)
		mu.Lock()
		results[c.Rank()] = out
		mu.Unlock()
	})

	for r := 0; r < 5; r++ {
		assert.Equal(t, int32(1), results[r])
	}
}

func TestScatterv(t *testing.T) {
	comms := NewWorld(3)
	results := make([][]int32, 3)
	var mu sync.Mutex

	send := [][]int32{{1}, {2, 2}, {3, 3, 3}}

	runOnAll(comms, func(c *Comm) {
		var mySend [][]int32
		if c.Rank() == 0 {
			mySend = send
		}
		out := c.Scatterv(mySend, 0)
		mu.Lock()
		results[c.Rank()] = out
		mu.Unlock()
	})

	assert.Equal(t, []int32{1}, results[0])
	assert.Equal(t, []int32{2, 2}, results[1])
	assert.Equal(t, []int32{3, 3, 3}, results[2])
}

func TestSendrecv(t *testing.T) {
	comms := NewWorld(2)
	var got0, got1 []int32
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		r, err := comms[0].Sendrecv(1, []int32{1, 2, 3})
		require.NoError(t, err)
		got0 = r
	}()
	go func() {
		defer wg.Done()
		r, err := comms[1].Sendrecv(0, []int32{4, 5})
		require.NoError(t, err)
		got1 = r
	}()
	wg.Wait()

	assert.Equal(t, []int32{4, 5}, got0)
	assert.Equal(t, []int32{1, 2, 3}, got1)
}

func TestSendrecvInvalidPeer(t *testing.T) {
	comms := NewWorld(2)
	_, err := comms[0].Sendrecv(5, nil)
	assert.Error(t, err)
	_, err = comms[0].Sendrecv(0, nil)
	assert.Error(t, err)
}
