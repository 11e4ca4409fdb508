// Package dualgraph builds weighted dual graphs suitable for a k-way graph
// partitioner, in two flavors: an element-level graph of one local mesh, and
// a group-level distributed graph across all processes built from
// face-adjacency exchanged through the parmesh's external communicators.
package dualgraph

import "github.com/yourusername/go-parmmg/mesh"

// HugeWeight discourages the partitioner from re-cutting along a face that
// used to be a process boundary, since doing so would invalidate cached
// neighbor pairings built against the old cut. METIS's idx_t is a signed
// 32/64-bit integer; this value is comfortably below int32 overflow while
// still dominating any realistic unit-edge-weight sum.
const HugeWeight int32 = 1 << 20

// Graph is a CSR dual graph: xadj/adjncy/adjwgt, 0-based vertex ids.
type Graph struct {
	Xadj   []int32
	Adjncy []int32
	Adjwgt []int32
}

// NumVertices returns the number of vertices (tetrahedra) in the graph.
func (g *Graph) NumVertices() int { return len(g.Xadj) - 1 }

// BuildElementGraph converts a packed mesh into a CSR dual graph: one vertex
// per live tetrahedron, one edge per shared face, weight HugeWeight if the
// face carries TagOldParBdy, else 1.
func BuildElementGraph(m *mesh.Mesh) *Graph {
	if m.Adja == nil {
		m.BuildAdja()
	}

	ne := m.Ne()
	xadj := make([]int32, ne+1)
	for k := int32(1); k <= ne; k++ {
		count := int32(0)
		for f := 0; f < 4; f++ {
			if m.Adj(k, f) != 0 {
				count++
			}
		}
		xadj[k] = xadj[k-1] + count
	}

	adjncy := make([]int32, xadj[ne])
	adjwgt := make([]int32, xadj[ne])
	c := int32(0)
	for k := int32(1); k <= ne; k++ {
		for f := 0; f < 4; f++ {
			code := m.Adj(k, f)
			if code == 0 {
				continue
			}
			j, _ := mesh.DecodeAdja(code)
			adjncy[c] = j - 1

			w := int32(1)
			if xt := m.Tetra[k].Xt; xt != 0 && m.XTetra[xt].FaceTag[f].Has(mesh.TagOldParBdy) {
				w = HugeWeight
			}
			adjwgt[c] = w
			c++
		}
	}

	return &Graph{Xadj: xadj, Adjncy: adjncy, Adjwgt: adjwgt}
}
