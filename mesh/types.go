package mesh

// Unset is the sentinel used throughout this module for "no value"/"not yet
// assigned" integer fields. It is negative so it can never collide with a
// valid 1-based table index or a valid 0-based partition/rank id.
const Unset = -1

// Point is one mesh vertex, 3D coordinates plus scratch/boundary fields.
type Point struct {
	C    [3]float64
	Ref  int32
	Tag  Tag
	Tmp  int32 // scratch: parmesh-wide node communicator position, or Unset
	Flag int32 // scratch: sweep-local marker, valid only vs. Mesh.Base
	Xp   int32 // index into XPoints, 0 if none
}

// Tetra is one tetrahedron: four point indices plus scratch/weight fields.
type Tetra struct {
	V    [4]int32
	Ref  int32
	Qual float64 // volume/quality scalar; also reused to stash signed volume in interp
	Mark int32   // partition weight
	Flag int32   // scratch: sweep-local marker, valid only vs. Mesh.Base
	Xt   int32   // index into XTetras, 0 if none
}

// Dead reports whether a tetra slot has been freed (all-zero vertex ids).
func (t *Tetra) Dead() bool {
	return t.V[0] == 0 && t.V[1] == 0 && t.V[2] == 0 && t.V[3] == 0
}

// XTetra extends a boundary tetrahedron with per-face reference/tag and
// per-edge tag/reference.
type XTetra struct {
	FaceRef [4]int32
	FaceTag [4]Tag
	EdgeTag [6]Tag
	EdgeRef [6]int32
}

// XPoint carries surface normal/ridge data for a boundary point.
type XPoint struct {
	Normal [3]float64
	Tangent [3]float64
}

// Prism, Triangle, Quad and Edge are carried opaquely through splits: only
// their vertex indices are remapped; this module does not adapt surfaces,
// prisms, or quads.
type Prism struct {
	V   [6]int32
	Ref int32
}

type Triangle struct {
	V   [3]int32
	Ref int32
	Tag Tag
}

type Quad struct {
	V   [4]int32
	Ref int32
}

type Edge struct {
	V   [2]int32
	Ref int32
	Tag Tag
}

// Mesh is a bag of points, tetrahedra and the opaque pass-through entities,
// plus the boundary extension tables and the dual adjacency array. Index 0
// of every entity table is reserved and unused so that 0 can serve as a "no
// entity"/"boundary" sentinel in Adja and in the Xp/Xt fields above.
type Mesh struct {
	Points []Point
	Tetra  []Tetra

	Prisms    []Prism
	Triangles []Triangle
	Quads     []Quad
	Edges     []Edge

	XTetra  []XTetra
	XPoints []XPoint

	// Adja has length 4*len(Tetra)+5 once built; Adja[4*(k-1)+1+f] encodes
	// the neighbor of face f of tetra k as 4*j+g (face g of tetra j), or 0
	// if face f is a boundary. Index 0..4 are unused padding to make the
	// 1-based encoding above exact.
	Adja []int32

	// Base is bumped before every sweep that relies on Point.Flag/Tetra.Flag
	// being valid; a flag is only meaningful when it equals Base.
	Base int32
}

// NewMesh returns an empty mesh with the index-0 sentinel slots reserved.
func NewMesh() *Mesh {
	return &Mesh{
		Points: make([]Point, 1),
		Tetra:  make([]Tetra, 1),
		XTetra: make([]XTetra, 1),
		XPoints: make([]XPoint, 1),
	}
}

// Np is the number of live points (index 0 excluded).
func (m *Mesh) Np() int32 { return int32(len(m.Points) - 1) }

// Ne is the number of live tetrahedra (index 0 excluded). Packed meshes have
// no holes, so Ne equals the count of non-Dead tetrahedra.
func (m *Mesh) Ne() int32 { return int32(len(m.Tetra) - 1) }

// NextSweep bumps Base so a fresh sweep can use Point.Flag/Tetra.Flag as
// "unvisited" markers by comparing against the new Base.
func (m *Mesh) NextSweep() int32 {
	m.Base++
	return m.Base
}

// faceVerts lists, for each local face 0..3 of a tetra, the local vertex
// indices (0..3 into Tetra.V) that make up that face, in the orientation
// ParMmg's idir table uses: face f is opposite vertex f.
var faceVerts = [4][3]int{
	{1, 2, 3},
	{0, 3, 2},
	{0, 1, 3},
	{0, 2, 1},
}

// FaceVerts returns the three local vertex slots (into Tetra.V) of face f.
func FaceVerts(f int) [3]int { return faceVerts[f] }
