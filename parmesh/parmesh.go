// Package parmesh implements ParMesh: the process-level container of local
// groups and the internal/external communicators that glue per-process
// groups into one globally consistent mesh. The driver-level operations
// built on top of it live in package driver.
package parmesh

import (
	"github.com/yourusername/go-parmmg/group"
	"github.com/yourusername/go-parmmg/pmpi"
)

// IntComm is the process-local pool of communicator slots: int_node_comm or
// int_face_comm. Groups reference its positions; IntValues is a scratch
// column used during distributed graph building. Any algorithm using it
// must restore it or not assume it persists across calls.
type IntComm struct {
	NItem     int32
	IntValues []int32
}

// Grow extends NItem by n and returns the first newly allocated slot index.
func (c *IntComm) Grow(n int32) int32 {
	first := c.NItem
	c.NItem += n
	return first
}

// ExtComm describes, for one neighbor rank, which int_comm slots are shared
// with that rank.
type ExtComm struct {
	ColorOut     int32
	IntCommIndex []int32
	ItoSend      []int32
	ItoRecv      []int32
}

// NItem is the number of shared slots with this neighbor.
func (e *ExtComm) NItem() int32 { return int32(len(e.IntCommIndex)) }

// ParMesh is the process-level container of groups and communicators.
type ParMesh struct {
	ListGrp    []*group.Group
	OldListGrp []*group.Group

	IntNodeComm IntComm
	IntFaceComm IntComm

	ExtNodeComm []ExtComm
	ExtFaceComm []ExtComm

	Comm   *pmpi.Comm
	Opts   Options
	Logger Logger

	// ContiguousMode is a write-once-then-monotone-downgrade latch: it
	// starts at Opts.Contiguous and can only ever be turned off (never back
	// on) for the lifetime of one ParMesh, via CheckAndResetContiguity's
	// Allreduce(MIN).
	ContiguousMode bool
}

// New constructs an empty ParMesh bound to comm, the process's handle into
// the simulated SPMD process group.
func New(comm *pmpi.Comm, opts ...Option) *ParMesh {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ParMesh{
		Comm:           comm,
		Opts:           o,
		Logger:         NewStderrLogger(),
		ContiguousMode: o.Contiguous,
	}
}

// Rank returns this process's rank.
func (pm *ParMesh) Rank() int { return pm.Comm.Rank() }

// NProcs returns the number of processes in the group.
func (pm *ParMesh) NProcs() int { return pm.Comm.Size() }

// Ngrp returns the number of local groups.
func (pm *ParMesh) Ngrp() int32 { return int32(len(pm.ListGrp)) }
