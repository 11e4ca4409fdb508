// Package split implements the group splitter: given one group's mesh and a
// partition vector over its tetrahedra, it produces N new groups that tile
// the source mesh exactly, propagating boundary tags and wiring the new
// internal interfaces into the parmesh's face/node communicators.
package split

import (
	"github.com/yourusername/go-parmmg/group"
	"github.com/yourusername/go-parmmg/mesh"
	"github.com/yourusername/go-parmmg/parmesh"
	"github.com/yourusername/go-parmmg/pmerr"
)

// GroupCount estimates how many subgroups a group of ne tetrahedra should
// split into so that each resulting group has roughly targetSize elements:
// at least 1, otherwise ceil(ne/targetSize).
func GroupCount(ne, targetSize int32) int32 {
	if targetSize <= 0 || ne <= targetSize {
		return 1
	}
	n := ne / targetSize
	if ne%targetSize != 0 {
		n++
	}
	return n
}

const unset = int32(mesh.Unset)

func adjaIdx(k int32, f int32) int32 { return 4*(k-1) + 1 + f }

// edgeVerts lists, for each of a tetra's 6 local edges, the two local vertex
// slots (0..3) it connects. Used only to propagate the parallel-boundary
// tag across the boundary edge shell after a split.
var edgeVerts = [6][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}

// builder holds per-split scratch state, kept off the Mesh/Group types
// themselves so running a split never disturbs their own scratch fields
// (Flag, Tmp) outside of what the algorithm explicitly intends to set.
type builder struct {
	pm   *parmesh.ParMesh
	m0   *mesh.Mesh
	src  *group.Group
	part []int32

	tetLocal []int32 // per source tet: local id in its destination subgroup

	posInIntFaceComm   []int32 // keyed by adjaIdx(k,f); Unset until assigned
	iplocInIntFaceComm []int32
}

// Split replaces pm.ListGrp[srcIdx] with nparts new groups, one per distinct
// value of part (which must range over [0, nparts) and have one entry per
// tetra slot 1..Ne() of the source group's mesh, part[k-1] for tetra k;
// entries of dead tetrahedra are ignored). It returns
// the new groups (already spliced into pm.ListGrp in place of the source).
func Split(pm *parmesh.ParMesh, srcIdx int, part []int32, nparts int32) ([]*group.Group, error) {
	src := pm.ListGrp[srcIdx]
	m0 := src.Mesh
	ne := m0.Ne()

	if int32(len(part)) != ne {
		return nil, pmerr.Wrap("split", pmerr.ErrInputData)
	}

	countPerGrp := make([]int32, nparts)
	for k := int32(0); k < ne; k++ {
		if m0.Tetra[k+1].Dead() {
			continue
		}
		countPerGrp[part[k]]++
	}

	b := &builder{
		pm:                 pm,
		m0:                 m0,
		src:                src,
		part:               part,
		tetLocal:           make([]int32, ne+1),
		posInIntFaceComm:   make([]int32, 4*ne+5),
		iplocInIntFaceComm: make([]int32, 4*ne+5),
	}
	for i := range b.posInIntFaceComm {
		b.posInIntFaceComm[i] = unset
		b.iplocInIntFaceComm[i] = unset
	}

	// Point.Tmp holds a source point's node communicator position, or
	// Unset: reset it, then restore the positions the source group's own
	// node2int map records.
	for p := range m0.Points {
		m0.Points[p].Tmp = unset
	}
	for i := 0; i < src.Node2Int.Len(); i++ {
		m0.Points[src.Node2Int.Index1[i]].Tmp = src.Node2Int.Index2[i]
	}

	// Seed the twin-slot tables from the source group's own interfaces
	// before the sweep, so a tet adjacent to an already-existing parallel
	// boundary (adja code 0) carries that boundary's communicator position
	// into whichever subgroup inherits the tet, instead of losing it.
	for i := 0; i < src.Face2Int.Len(); i++ {
		iel, ifac, iploc := group.DecodeFace(src.Face2Int.Index1[i])
		idx := adjaIdx(iel, ifac)
		b.posInIntFaceComm[idx] = src.Face2Int.Index2[i]
		b.iplocInIntFaceComm[idx] = iploc
	}

	groups := make([]*group.Group, nparts)
	for g := int32(0); g < nparts; g++ {
		ng, err := b.buildSubgroup(g, countPerGrp[g])
		if err != nil {
			return nil, err
		}
		groups[g] = ng
	}

	for _, ng := range groups {
		propagateEdgeTags(ng.Mesh)
		ng.Mesh.Clean()
	}

	newList := make([]*group.Group, 0, len(pm.ListGrp)-1+int(nparts))
	newList = append(newList, pm.ListGrp[:srcIdx]...)
	newList = append(newList, groups...)
	newList = append(newList, pm.ListGrp[srcIdx+1:]...)
	pm.ListGrp = newList

	return groups, nil
}

func (b *builder) buildSubgroup(g, count int32) (*group.Group, error) {
	m0 := b.m0
	ne := m0.Ne()

	newMesh := mesh.NewMesh()
	npEstimate := count/6 + 1
	newMesh.GrowPoints(npEstimate)
	newMesh.GrowTetra(count)
	newMesh.Adja = make([]int32, 4*count+5)

	newGroup := group.New(newMesh, b.src.Met.Size)

	pointLocal := make([]int32, len(m0.Points))

	for k := int32(1); k <= ne; k++ {
		if m0.Tetra[k].Dead() || b.part[k-1] != g {
			continue
		}

		localK := newMesh.AppendTetra(mesh.Tetra{
			Ref:  m0.Tetra[k].Ref,
			Mark: m0.Tetra[k].Mark,
		})
		b.tetLocal[k] = localK

		var newXt int32
		if m0.Tetra[k].Xt != 0 {
			newXt = newMesh.AppendXTetra(m0.XTetra[m0.Tetra[k].Xt])
			newMesh.Tetra[localK].Xt = newXt
		}

		var newV [4]int32
		for poi := 0; poi < 4; poi++ {
			v := m0.Tetra[k].V[poi]
			local := pointLocal[v]
			if local == 0 {
				local = newMesh.AppendPoint(m0.Points[v])
				pointLocal[v] = local
				growAndCopy(&newGroup.Met, b.src.Met, v)
				growAndCopy(&newGroup.Disp, b.src.Disp, v)
				growAndCopy(&newGroup.Ls, b.src.Ls, v)

				if m0.Points[v].Xp != 0 {
					newMesh.Points[local].Xp = newMesh.AppendXPoint(m0.XPoints[m0.Points[v].Xp])
				}
				if m0.Points[v].Tmp != unset {
					newGroup.Node2Int.Append(local, m0.Points[v].Tmp)
				}
			}
			newV[poi] = local
		}
		newMesh.Tetra[localK].V = newV

		if err := b.wireAdjacency(newMesh, newGroup, g, k, localK); err != nil {
			return nil, err
		}
	}

	return newGroup, nil
}

func (b *builder) wireAdjacency(newMesh *mesh.Mesh, newGroup *group.Group, g, k, localK int32) error {
	m0 := b.m0

	for f := int32(0); f < 4; f++ {
		code := m0.Adj(k, int(f))

		if code == 0 {
			idx := adjaIdx(k, f)
			if pos := b.posInIntFaceComm[idx]; pos != unset {
				iploc := b.iplocInIntFaceComm[idx]
				newGroup.Face2Int.Append(group.EncodeFace(localK, f, iploc), pos)
			}
			newMesh.SetAdj(localK, int(f), 0)
			continue
		}

		j, vidx := mesh.DecodeAdja(code)

		if b.part[j-1] != g {
			newMesh.SetAdj(localK, int(f), 0)
			if newMesh.Tetra[localK].Xt == 0 {
				newMesh.Tetra[localK].Xt = newMesh.AppendXTetra(mesh.XTetra{})
			}
			xt := newMesh.Tetra[localK].Xt
			newMesh.XTetra[xt].FaceRef[f] = 0
			newMesh.XTetra[xt].FaceTag[f] = newMesh.XTetra[xt].FaceTag[f].Set(
				mesh.TagParBdy | mesh.TagBdy | mesh.TagRequired | mesh.TagNoSurf)

			thisIdx := adjaIdx(k, f)
			twinIdx := adjaIdx(j, vidx)

			var pos, iploc int32
			if b.posInIntFaceComm[twinIdx] == unset {
				pos = b.pm.IntFaceComm.Grow(1)
				b.posInIntFaceComm[thisIdx] = pos
				b.posInIntFaceComm[twinIdx] = pos
				iploc = 0
				b.iplocInIntFaceComm[twinIdx] = findIploc(m0, j, vidx, k, f)
			} else {
				pos = b.posInIntFaceComm[twinIdx]
				iploc = b.iplocInIntFaceComm[thisIdx]
			}
			newGroup.Face2Int.Append(group.EncodeFace(localK, f, iploc), pos)

			fv := mesh.FaceVerts(int(f))
			for _, lv := range fv {
				pv := newMesh.Tetra[localK].V[lv]
				newMesh.Points[pv].Tag = newMesh.Points[pv].Tag.Set(mesh.TagParBdy | mesh.TagBdy | mesh.TagRequired)
				if newMesh.Points[pv].Xp == 0 {
					newMesh.Points[pv].Xp = newMesh.AppendXPoint(mesh.XPoint{})
				}

				gv := m0.Tetra[k].V[lv]
				if m0.Points[gv].Tmp == unset {
					newPos := b.pm.IntNodeComm.Grow(1)
					m0.Points[gv].Tmp = newPos
					newMesh.Points[pv].Tmp = newPos
					newGroup.Node2Int.Append(pv, newPos)
				} else {
					newMesh.Points[pv].Tmp = m0.Points[gv].Tmp
				}
			}
			continue
		}

		if j < k {
			localJ := b.tetLocal[j]
			newMesh.SetAdj(localK, int(f), mesh.EncodeAdja(localJ, vidx))
			newMesh.SetAdj(localJ, int(vidx), mesh.EncodeAdja(localK, f))
		}
	}

	return nil
}

func findIploc(m0 *mesh.Mesh, j, neighborFace, k, ourFace int32) int32 {
	target := m0.Tetra[k].V[mesh.FaceVerts(int(ourFace))[0]]
	nfv := mesh.FaceVerts(int(neighborFace))
	for idx, lv := range nfv {
		if m0.Tetra[j].V[lv] == target {
			return int32(idx)
		}
	}
	return 0
}

func growAndCopy(dst *group.Solution, src group.Solution, srcIdx int32) {
	if src.Size == 0 {
		return
	}
	if dst.Size == 0 {
		*dst = group.NewSolution(src.Size, 0)
	}
	dst.Grow(1)
	n := int32(len(dst.Values))/dst.Size - 1
	copy(dst.At(n), src.At(srcIdx))
}

// propagateEdgeTags sets TagParBdy on every edge of a tetra with an xtetra
// whose two endpoints both carry TagParBdy. It does not walk the edge
// shell: tetrahedra without an xtetra are skipped, and an edge joining two
// parallel-boundary points is tagged even when none of its faces is a
// parallel boundary.
func propagateEdgeTags(m *mesh.Mesh) {
	for k := int32(1); k <= m.Ne(); k++ {
		xt := m.Tetra[k].Xt
		if xt == 0 {
			continue
		}
		for e := 0; e < 6; e++ {
			if m.XTetra[xt].EdgeTag[e].Has(mesh.TagParBdy) {
				continue
			}
			v0 := m.Tetra[k].V[edgeVerts[e][0]]
			v1 := m.Tetra[k].V[edgeVerts[e][1]]
			if m.Points[v0].Tag.Has(mesh.TagParBdy) && m.Points[v1].Tag.Has(mesh.TagParBdy) {
				m.XTetra[xt].EdgeTag[e] = m.XTetra[xt].EdgeTag[e].Set(mesh.TagParBdy)
			}
		}
	}
}
