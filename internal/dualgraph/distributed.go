package dualgraph

import (
	"github.com/yourusername/go-parmmg/group"
	"github.com/yourusername/go-parmmg/internal/adjhash"
	"github.com/yourusername/go-parmmg/mesh"
	"github.com/yourusername/go-parmmg/parmesh"
	"github.com/yourusername/go-parmmg/pmerr"
)

// WgtFlag selects which weight arrays a DistGraph keeps, mirroring
// ParMETIS's wgtflag convention: both arrays are computed, and unselected
// ones are left nil in the returned graph.
type WgtFlag int

const (
	WgtFlagNone WgtFlag = iota
	WgtFlagAdj
	WgtFlagVtx
	WgtFlagBoth
)

// shift is |Unset|+1: it keeps an encoded "group 0, not old-parbdy" value
// from colliding with Unset, and keeps group 0's encoding nonzero so its
// sign still carries the old-parbdy flag.
const shift = int32(-mesh.Unset) + 1

// DistGraph is the distributed CSR dual graph over all groups on all
// processes, plus the balance-constraint arrays a k-way partitioner needs.
type DistGraph struct {
	Vtxdist []int32
	Xadj    []int32
	Adjncy  []int32
	Adjwgt  []int32 // nil unless WgtFlag selects it
	Vwgt    []int32 // nil unless WgtFlag selects it
	Tpwgts  []float32
	Ubvec   []float32
	WgtFlag WgtFlag
	Numflag int32
	Ncon    int32
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// BuildDistGraph computes the distributed group dual graph end to end:
// vtxdist via Allgather, per-group vertex weights from tet.Mark, local face
// tagging with the SET-IF-UNSET rule (processed in reverse group order, so
// the *higher* group id wins when two local groups share a face; see
// DESIGN.md), external exchange via
// Sendrecv, then cross-rank and intra-rank edge insertion into a
// group-adjacency hash, finally emitted as CSR.
func BuildDistGraph(pm *parmesh.ParMesh, wgtflag WgtFlag) (*DistGraph, error) {
	comm := pm.Comm
	nprocs := int32(comm.Size())
	myRank := int32(comm.Rank())
	ngrp := pm.Ngrp()

	// Step 1: vtxdist via Allgather + prefix sum.
	counts := comm.Allgather(ngrp)
	vtxdist := make([]int32, nprocs+1)
	for i := int32(0); i < nprocs; i++ {
		vtxdist[i+1] = vtxdist[i] + counts[i]
	}

	// Step 2: vwgt[i] = sum of tet.Mark over group i's live tetrahedra.
	vwgt := make([]int32, ngrp)
	for i, g := range pm.ListGrp {
		var sum int32
		for k := int32(1); k <= g.Mesh.Ne(); k++ {
			if !g.Mesh.Tetra[k].Dead() {
				sum += g.Mesh.Tetra[k].Mark
			}
		}
		vwgt[i] = sum
	}

	// Step 3: uniform tpwgts, fixed ubvec.
	ncon := int32(1)
	tpwgts := make([]float32, ncon*nprocs)
	for i := range tpwgts {
		tpwgts[i] = 1.0 / float32(nprocs)
	}
	ubvec := []float32{1.05}

	// Step 4: local face tagging, SET-IF-UNSET, groups visited high-id first.
	pm.IntFaceComm.IntValues = make([]int32, pm.IntFaceComm.NItem)
	for i := range pm.IntFaceComm.IntValues {
		pm.IntFaceComm.IntValues[i] = int32(mesh.Unset)
	}

	for gi := len(pm.ListGrp) - 1; gi >= 0; gi-- {
		g := pm.ListGrp[gi]
		for i := 0; i < g.Face2Int.Len(); i++ {
			pos := g.Face2Int.Index2[i]
			if pm.IntFaceComm.IntValues[pos] != int32(mesh.Unset) {
				continue
			}
			iel, ifac, _ := group.DecodeFace(g.Face2Int.Index1[i])

			old := false
			if xt := g.Mesh.Tetra[iel].Xt; xt != 0 {
				old = g.Mesh.XTetra[xt].FaceTag[ifac].Has(mesh.TagOldParBdy)
			}

			val := int32(gi) + shift
			if old {
				val = -val
			}
			pm.IntFaceComm.IntValues[pos] = val
		}
	}

	hash := adjhash.New()
	xadjCount := make([]int32, ngrp)

	// Step 5+6: external exchange and cross-rank edges.
	for _, ext := range pm.ExtFaceComm {
		itosend := make([]int32, ext.NItem())
		for i, idx := range ext.IntCommIndex {
			itosend[i] = pm.IntFaceComm.IntValues[idx]
		}

		itorecv, err := comm.Sendrecv(int(ext.ColorOut), itosend)
		if err != nil {
			return nil, pmerr.Wrap("dualgraph", err)
		}

		for i, idx := range ext.IntCommIndex {
			sendVal := itosend[i]
			recvVal := itorecv[i]
			// Mark this face as "cross-rank adjacency already accounted".
			pm.IntFaceComm.IntValues[idx] = int32(mesh.Unset)

			if sendVal == int32(mesh.Unset) {
				continue
			}

			localGrp := abs32(sendVal) - shift
			peerGrp := abs32(recvVal) - shift
			w := int32(1)
			if sendVal < 0 || recvVal < 0 {
				w = HugeWeight
			}

			if hash.Insert(localGrp, peerGrp+vtxdist[ext.ColorOut], w) {
				xadjCount[localGrp]++
			}
		}
	}

	// Step 7: intra-rank edges: any face whose slot still holds a valid
	// ±(other_grp+SHIFT) for a *different*, higher-id group becomes a
	// symmetric local-to-local edge.
	for gi, g := range pm.ListGrp {
		for i := 0; i < g.Face2Int.Len(); i++ {
			pos := g.Face2Int.Index2[i]
			val := pm.IntFaceComm.IntValues[pos]
			if val == int32(mesh.Unset) {
				continue
			}
			otherGrp := abs32(val) - shift
			if otherGrp == int32(gi) || otherGrp < int32(gi) {
				continue
			}
			w := int32(1)
			if val < 0 {
				w = HugeWeight
			}

			if hash.Insert(int32(gi), otherGrp+vtxdist[myRank], w) {
				xadjCount[gi]++
			}
			if hash.Insert(otherGrp, int32(gi)+vtxdist[myRank], w) {
				xadjCount[otherGrp]++
			}
		}
	}

	// Step 8: emit CSR.
	xadj := make([]int32, ngrp+1)
	for i := int32(0); i < ngrp; i++ {
		xadj[i+1] = xadj[i] + xadjCount[i]
	}

	adjncy := make([]int32, xadj[ngrp])
	adjwgt := make([]int32, xadj[ngrp])
	c := int32(0)
	for i := int32(0); i < ngrp; i++ {
		for _, e := range hash.Entries(i) {
			adjncy[c] = e.Adj
			adjwgt[c] = e.Weight
			c++
		}
	}

	dg := &DistGraph{
		Vtxdist: vtxdist,
		Xadj:    xadj,
		Adjncy:  adjncy,
		Tpwgts:  tpwgts,
		Ubvec:   ubvec,
		WgtFlag: wgtflag,
		Numflag: 0,
		Ncon:    ncon,
	}

	// Step 9: wgtflag clean-up — only selected arrays survive.
	switch wgtflag {
	case WgtFlagAdj:
		dg.Adjwgt = adjwgt
	case WgtFlagVtx:
		dg.Vwgt = vwgt
	case WgtFlagBoth:
		dg.Vwgt = vwgt
		dg.Adjwgt = adjwgt
	case WgtFlagNone:
	}

	return dg, nil
}
