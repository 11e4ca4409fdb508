package metis

import (
	"errors"

	"github.com/yourusername/go-parmmg/pmpi"
)

// KwayDist is the distributed k-way partitioner this module exposes to its
// distributed callers. No Go binding to ParMETIS exists among the retrieved
// examples, only a sequential METIS cgo binding, so this wrapper centralizes
// the graph instead of truly partitioning in parallel: every rank exchanges
// its local CSR fragment via Allgatherv, rank 0 runs the sequential
// multilevel k-way partitioner once on the assembled global graph, and the
// result is handed back to each rank's own vertex range via Scatterv. This
// keeps the KWAY_DIST call signature and blocking points (Allgatherv then
// Scatterv) that a true distributed partitioner would have, while only
// depending on a partitioner this module actually has cgo access to.
//
// vtxdist, xadj, adjncy, vwgt and adjwgt follow the usual distributed CSR
// convention: vtxdist[r]..vtxdist[r+1] is rank r's vertex range, xadj/adjncy
// describe only the calling rank's local vertices, and adjncy entries are
// global vertex ids. vwgt/adjwgt may be nil.
func KwayDist(comm *pmpi.Comm, vtxdist, xadj, adjncy, vwgt, adjwgt []int32, nparts int32, tpwgts, ubvec []float32, options []int32) ([]int32, error) {
	rank := int32(comm.Rank())

	localDeg := make([]int32, len(xadj)-1)
	for i := range localDeg {
		localDeg[i] = xadj[i+1] - xadj[i]
	}

	allDeg := comm.Allgatherv(localDeg)
	allAdj := comm.Allgatherv(adjncy)

	var allVwgt, allAdjwgt [][]int32
	if vwgt != nil {
		allVwgt = comm.Allgatherv(vwgt)
	}
	if adjwgt != nil {
		allAdjwgt = comm.Allgatherv(adjwgt)
	}

	n := int(vtxdist[len(vtxdist)-1])
	gXadj := make([]int32, n+1)
	gAdjncy := make([]int32, 0, sumLens(allAdj))
	var gVwgt []int32
	if vwgt != nil {
		gVwgt = make([]int32, 0, n)
	}
	var gAdjwgt []int32
	if adjwgt != nil {
		gAdjwgt = make([]int32, 0, sumLens(allAdj))
	}

	gi := 0
	for r := 0; r < len(allDeg); r++ {
		for _, d := range allDeg[r] {
			gXadj[gi+1] = gXadj[gi] + d
			gi++
		}
		gAdjncy = append(gAdjncy, allAdj[r]...)
		if vwgt != nil {
			gVwgt = append(gVwgt, allVwgt[r]...)
		}
		if adjwgt != nil {
			gAdjwgt = append(gAdjwgt, allAdjwgt[r]...)
		}
	}

	var globalPart []int32
	var partErr error
	if rank == 0 {
		globalPart, _, partErr = PartGraphKwayWeighted(gXadj, gAdjncy, gVwgt, gAdjwgt, nparts, tpwgts, ubvec, options)
	}

	send := make([][]int32, comm.Size())
	if rank == 0 && partErr == nil {
		for r := 0; r < comm.Size(); r++ {
			send[r] = globalPart[vtxdist[r]:vtxdist[r+1]]
		}
	}

	local := comm.Scatterv(send, 0)

	status := comm.Allreduce(errFlag(partErr), pmpi.MaxOp)
	if status != 0 {
		return nil, errDistPartition
	}
	return local, nil
}

// errDistPartition is returned to every rank when rank 0's sequential METIS
// call failed; the specific METIS error from rank 0 is not passed on.
var errDistPartition = errors.New("metis: distributed partition failed on root rank")

func sumLens(chunks [][]int32) int {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	return total
}

func errFlag(err error) int32 {
	if err != nil {
		return 1
	}
	return 0
}
