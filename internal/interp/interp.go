// Package interp implements the interpolation driver: given an old mesh
// with a metric and a new mesh, it locates each new point inside the old
// mesh by a barycentric adjacency walk and interpolates scalar or tensor
// metric values onto it.
package interp

import "github.com/yourusername/go-parmmg/mesh"

const maxWalkSteps = 10000

// Geometry precomputes the per-tet signed volume (also cached onto
// Tetra.Qual, following this module's reuse of that field for interpolation
// scratch) and the per-face oriented area normal of every live tetra of m,
// both required by the barycentric walk.
type Geometry struct {
	FaceNormal [][4][3]float64
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Precompute fills Tetra.Qual with six times the signed volume of every
// live tetra of m and returns the per-face oriented area normals needed by
// Locate.
func Precompute(m *mesh.Mesh) *Geometry {
	ne := m.Ne()
	faceNormal := make([][4][3]float64, ne+1)

	for k := int32(1); k <= ne; k++ {
		if m.Tetra[k].Dead() {
			continue
		}
		v := m.Tetra[k].V
		p0 := m.Points[v[0]].C
		p1 := m.Points[v[1]].C
		p2 := m.Points[v[2]].C
		p3 := m.Points[v[3]].C

		m.Tetra[k].Qual = dot(sub(p1, p0), cross(sub(p2, p0), sub(p3, p0)))

		for f := 0; f < 4; f++ {
			fv := mesh.FaceVerts(f)
			a := m.Points[v[fv[0]]].C
			b := m.Points[v[fv[1]]].C
			c := m.Points[v[fv[2]]].C
			faceNormal[k][f] = cross(sub(b, a), sub(c, a))
		}
	}

	return &Geometry{FaceNormal: faceNormal}
}

// barycentric returns, for point p against tetra k of m, the four
// barycentric-like coordinates -((p - v_f) . n_f) / vol for each face f,
// where v_f is a vertex on face f. All four sum to 1; a point is inside k
// iff every coordinate is >= 0 (within eps).
func (g *Geometry) barycentric(m *mesh.Mesh, k int32, p [3]float64) [4]float64 {
	vol := m.Tetra[k].Qual
	var bary [4]float64
	for f := 0; f < 4; f++ {
		fv := mesh.FaceVerts(f)
		v0 := m.Points[m.Tetra[k].V[fv[0]]].C
		bary[f] = -dot(sub(p, v0), g.FaceNormal[k][f]) / vol
	}
	return bary
}

const locateEps = 1e-9

// Locate walks the dual adjacency graph of m starting from startTet to find
// the tetra containing p, returning its barycentric coordinates (ordered by
// local vertex slot, opposite-face convention: coordinate i is the weight
// of the vertex opposite face i). If the walk cycles before converging, it
// falls back to an exhaustive scan and returns the tet with the least
// negative minimum coordinate (the closest near-miss).
func (g *Geometry) Locate(m *mesh.Mesh, p [3]float64, startTet int32) (tet int32, bary [4]float64, exact bool) {
	if startTet == 0 || m.Tetra[startTet].Dead() {
		startTet = firstLiveTet(m)
		if startTet == 0 {
			return 0, bary, false
		}
	}

	base := m.NextSweep()
	cur := startTet

	for step := 0; step < maxWalkSteps; step++ {
		if m.Tetra[cur].Flag == base {
			return g.exhaustiveScan(m, p)
		}
		m.Tetra[cur].Flag = base

		b := g.barycentric(m, cur, p)

		worst := 0
		for f := 1; f < 4; f++ {
			if b[f] < b[worst] {
				worst = f
			}
		}
		if b[worst] >= -locateEps {
			return cur, b, true
		}

		code := m.Adj(cur, worst)
		if code == 0 {
			return g.exhaustiveScan(m, p)
		}
		next, _ := mesh.DecodeAdja(code)
		cur = next
	}

	return g.exhaustiveScan(m, p)
}

func firstLiveTet(m *mesh.Mesh) int32 {
	for k := int32(1); k <= m.Ne(); k++ {
		if !m.Tetra[k].Dead() {
			return k
		}
	}
	return 0
}

// exhaustiveScan checks every live tet and keeps the one whose barycentric
// coordinates have the largest minimum value (closest to containing p, or
// exactly containing it if that minimum is >= -eps).
func (g *Geometry) exhaustiveScan(m *mesh.Mesh, p [3]float64) (int32, [4]float64, bool) {
	var bestTet int32
	var bestBary [4]float64
	bestMin := negInf

	for k := int32(1); k <= m.Ne(); k++ {
		if m.Tetra[k].Dead() {
			continue
		}
		b := g.barycentric(m, k, p)
		min := b[0]
		for f := 1; f < 4; f++ {
			if b[f] < min {
				min = b[f]
			}
		}
		if min > bestMin {
			bestMin = min
			bestTet = k
			bestBary = b
		}
	}

	return bestTet, bestBary, bestMin >= -locateEps
}

const negInf = -1e300

// InterpolateScalar returns the convex combination of the four vertex
// values of tet k weighted by bary.
func InterpolateScalar(m *mesh.Mesh, k int32, bary [4]float64, values []float64) float64 {
	v := m.Tetra[k].V
	var out float64
	for i := 0; i < 4; i++ {
		out += bary[i] * values[v[i]]
	}
	return out
}

// InterpolateTensor interpolates a symmetric-tensor metric (6 floats:
// m11,m12,m13,m22,m23,m33 per point) by inverting each vertex's matrix,
// linearly combining the inverses with bary, then inverting the result
// back, per the standard metric-interpolation convention (tensors combine
// multiplicatively in volume, so their inverses combine linearly).
func InterpolateTensor(m *mesh.Mesh, k int32, bary [4]float64, values []float64) [6]float64 {
	v := m.Tetra[k].V
	var acc [6]float64
	for i := 0; i < 4; i++ {
		var mat [6]float64
		copy(mat[:], values[v[i]*6:v[i]*6+6])
		inv := invertSym3(mat)
		for j := 0; j < 6; j++ {
			acc[j] += bary[i] * inv[j]
		}
	}
	return invertSym3(acc)
}

// invertSym3 inverts a symmetric 3x3 matrix stored as (m11,m12,m13,m22,m23,m33).
func invertSym3(m [6]float64) [6]float64 {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]

	det := a*(d*f-e*e) - b*(b*f-e*c) + c*(b*e-d*c)
	if det == 0 {
		return m
	}
	invDet := 1.0 / det

	return [6]float64{
		(d*f - e*e) * invDet,
		(c*e - b*f) * invDet,
		(b*e - c*d) * invDet,
		(a*f - c*c) * invDet,
		(b*c - a*e) * invDet,
		(a*d - b*b) * invDet,
	}
}
