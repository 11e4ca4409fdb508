package pmpi

import (
	"fmt"
	"sync"
)

// ReduceOp names a reduction applied by Allreduce.
type ReduceOp int

const (
	// MinOp takes the minimum across ranks.
	MinOp ReduceOp = iota
	// MaxOp takes the maximum across ranks.
	MaxOp
	// SumOp sums across ranks.
	SumOp
)

// world is the shared state of one simulated SPMD process group. All Comms
// returned by NewWorld point at the same world and rendezvous through it.
type world struct {
	n int

	mu   sync.Mutex
	cond *sync.Cond

	gen     int
	arrived int
	in      []any
	result  any
}

// Comm is one rank's handle onto a simulated process group.
type Comm struct {
	rank    int
	w       *world
	mailbox mailboxes
}

// NewWorld creates n Comms, one per simulated rank, sharing one barrier-based
// collective substrate and a set of point-to-point mailboxes.
func NewWorld(n int) []*Comm {
	if n <= 0 {
		panic("pmpi: world size must be positive")
	}
	w := &world{
		n:  n,
		in: make([]any, n),
	}
	w.cond = sync.NewCond(&w.mu)

	mailboxes := newMailboxes(n)
	comms := make([]*Comm, n)
	for r := 0; r < n; r++ {
		comms[r] = &Comm{rank: r, w: w}
		comms[r].mailbox = mailboxes
	}
	return comms
}

// Rank returns this Comm's rank in [0, Size()).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the process group.
func (c *Comm) Size() int { return c.w.n }

// collective blocks the calling goroutine until every rank has contributed a
// value for the current generation, then returns the shared result computed
// by compute from all n contributions (indexed by rank). Exactly one caller
// (the rank that observes the last arrival) runs compute; every rank,
// including that one, receives the same result value.
func (c *Comm) collective(contribution any, compute func(in []any) any) any {
	w := c.w
	w.mu.Lock()
	defer w.mu.Unlock()

	w.in[c.rank] = contribution
	w.arrived++
	myGen := w.gen

	if w.arrived == w.n {
		w.result = compute(w.in)
		w.arrived = 0
		w.gen++
		w.cond.Broadcast()
		return w.result
	}

	for w.gen == myGen {
		w.cond.Wait()
	}
	return w.result
}

// Allgather gathers one int32 from every rank, returning a slice of length
// Size() ordered by rank.
func (c *Comm) Allgather(v int32) []int32 {
	res := c.collective(v, func(in []any) any {
		out := make([]int32, len(in))
		for i, x := range in {
			out[i] = x.(int32)
		}
		return out
	})
	return res.([]int32)
}

// Allgatherv gathers a variable-length []int32 from every rank, returning the
// per-rank slices ordered by rank (index i is what rank i contributed).
func (c *Comm) Allgatherv(local []int32) [][]int32 {
	res := c.collective(append([]int32(nil), local...), func(in []any) any {
		out := make([][]int32, len(in))
		for i, x := range in {
			out[i] = x.([]int32)
		}
		return out
	})
	return res.([][]int32)
}

// Allreduce reduces one int32 per rank with op, returning the reduced value
// to every rank.
func (c *Comm) Allreduce(v int32, op ReduceOp) int32 {
	res := c.collective(v, func(in []any) any {
		acc := in[0].(int32)
		for _, x := range in[1:] {
			v := x.(int32)
			switch op {
			case MinOp:
				if v < acc {
					acc = v
				}
			case MaxOp:
				if v > acc {
					acc = v
				}
			case SumOp:
				acc += v
			}
		}
		return acc
	})
	return res.(int32)
}

// Scatterv distributes send, a table of per-rank chunks indexed by
// destination rank, from root to every rank. Non-root callers pass send=nil.
// Every caller (including root) gets back its own chunk.
func (c *Comm) Scatterv(send [][]int32, root int) []int32 {
	res := c.collective(scatterContribution{rank: c.rank, root: root, send: send}, func(in []any) any {
		for _, x := range in {
			sc := x.(scatterContribution)
			if sc.rank == sc.root {
				return sc.send
			}
		}
		return nil
	})
	table := res.([][]int32)
	if table == nil {
		return nil
	}
	return table[c.rank]
}

type scatterContribution struct {
	rank, root int
	send       [][]int32
}

// Barrier blocks the caller until every rank has called Barrier.
func (c *Comm) Barrier() {
	c.collective(struct{}{}, func(in []any) any { return struct{}{} })
}

// Error reports a communication failure, the only error pmpi.Comm produces;
// collectives above never fail once the world is wired correctly, so the
// type exists for Sendrecv's peer-validity check.
type Error struct {
	Op  string
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("pmpi: %s: %s", e.Op, e.Msg) }
