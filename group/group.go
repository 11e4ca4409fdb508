// Package group implements Group: one local submesh plus its
// metric/displacement/level-set solutions and the two communicator maps
// (node2int, face2int) that tie its boundary into the parmesh-wide
// communicators.
package group

import "github.com/yourusername/go-parmmg/mesh"

// Solution is a dense per-point field: Size 1 for a scalar metric, 6 for a
// symmetric tensor metric, stored flattened with stride Size.
type Solution struct {
	Size   int32
	Values []float64
}

// NewSolution allocates a zeroed solution of the given size for np points
// (1-based, so np+1 slots to match mesh.Point indexing).
func NewSolution(size int32, np int32) Solution {
	return Solution{Size: size, Values: make([]float64, size*(np+1))}
}

// At returns the stride-Size window for point p.
func (s Solution) At(p int32) []float64 {
	return s.Values[int64(p)*int64(s.Size) : int64(p+1)*int64(s.Size)]
}

// Grow appends n points' worth of zeroed values, keeping stride Size.
func (s *Solution) Grow(n int32) {
	s.Values = append(s.Values, make([]float64, int64(n)*int64(s.Size))...)
}

// IntComm holds a group's (index1, index2) map into one of the parmesh's
// internal communicators (node2int or face2int): index1[i] is a local
// entity descriptor, index2[i] is its position in the shared pool.
//
// face2int's index1 entries encode (tetra, local face, starting vertex) as
// 12*iel + 3*ifac + iploc: stride 3 per face (3 possible starting vertices),
// stride 12 per element (4 faces).
type IntComm struct {
	Index1 []int32
	Index2 []int32
}

// Append records a new (local, pos) pair and returns its slot index.
func (c *IntComm) Append(local, pos int32) int {
	c.Index1 = append(c.Index1, local)
	c.Index2 = append(c.Index2, pos)
	return len(c.Index1) - 1
}

// Len returns the number of entries.
func (c *IntComm) Len() int { return len(c.Index1) }

// EncodeFace packs a face2int index1 entry.
func EncodeFace(iel, ifac, iploc int32) int32 { return 12*iel + 3*ifac + iploc }

// DecodeFace unpacks a face2int index1 entry.
func DecodeFace(v int32) (iel, ifac, iploc int32) {
	iploc = v % 3
	rest := v / 3
	ifac = rest % 4
	iel = rest / 4
	return
}

// Group is one process-local submesh plus its solutions and communicator
// maps.
type Group struct {
	Mesh *mesh.Mesh

	Met  Solution
	Disp Solution
	Ls   Solution
	Aux  []Solution

	Node2Int IntComm
	Face2Int IntComm
}

// New returns an empty group wrapping m, with a metric solution of the
// given size (1 scalar, 6 tensor) sized for m's current point count.
func New(m *mesh.Mesh, metSize int32) *Group {
	return &Group{
		Mesh: m,
		Met:  NewSolution(metSize, m.Np()),
	}
}
