package mesh

import "sort"

// EncodeAdja packs a (tetra, local face) pair the way Adja stores neighbors:
// 4*tetra + face, face in 0..3, matching a 0 entry meaning "boundary".
func EncodeAdja(tet, face int32) int32 { return 4*tet + face }

// DecodeAdja unpacks a nonzero Adja entry into (tetra, local face).
func DecodeAdja(code int32) (tet, face int32) { return code / 4, code % 4 }

// adjaIndex returns the slot in Adja holding the neighbor across face f
// (0..3) of tetra k (1-based).
func adjaIndex(k int32, f int) int32 { return 4*(k-1) + 1 + int32(f) }

// Adj returns the neighbor code stored for face f of tetra k, or 0 if that
// face is a boundary.
func (m *Mesh) Adj(k int32, f int) int32 { return m.Adja[adjaIndex(k, f)] }

// SetAdj stores code as the neighbor of face f of tetra k.
func (m *Mesh) SetAdj(k int32, f int, code int32) { m.Adja[adjaIndex(k, f)] = code }

// BuildAdja computes the dual adjacency array from scratch by hashing each
// tetra's four face-vertex triplets and matching pairs that share a sorted
// triplet. Faces matched by exactly one other tetra become internal (both
// Adja entries set); faces matched by none stay boundary (0).
func (m *Mesh) BuildAdja() {
	ne := m.Ne()
	m.Adja = make([]int32, 4*ne+5)

	type faceKey [3]int32
	open := make(map[faceKey]int32, ne*2)

	for k := int32(1); k <= ne; k++ {
		if m.Tetra[k].Dead() {
			continue
		}
		for f := 0; f < 4; f++ {
			fv := FaceVerts(f)
			verts := [3]int32{
				m.Tetra[k].V[fv[0]],
				m.Tetra[k].V[fv[1]],
				m.Tetra[k].V[fv[2]],
			}
			sort.Slice(verts[:], func(i, j int) bool { return verts[i] < verts[j] })
			key := faceKey(verts)

			if other, ok := open[key]; ok {
				otherTet, otherFace := DecodeAdja(other)
				m.SetAdj(k, f, other)
				m.SetAdj(otherTet, int(otherFace), EncodeAdja(k, int32(f)))
				delete(open, key)
			} else {
				open[key] = EncodeAdja(k, int32(f))
			}
		}
	}
}
