package mesh

// AppendPoint appends p and returns its new 1-based index. Go's append
// already grows the backing array geometrically (doubling while small, then
// ~1.25x); explicit preallocation via Grow below is still available for
// callers (like the group splitter) that know the final size up front and
// want to avoid reallocation churn during a tight sweep.
func (m *Mesh) AppendPoint(p Point) int32 {
	m.Points = append(m.Points, p)
	return int32(len(m.Points) - 1)
}

// AppendTetra appends t and returns its new 1-based index.
func (m *Mesh) AppendTetra(t Tetra) int32 {
	m.Tetra = append(m.Tetra, t)
	return int32(len(m.Tetra) - 1)
}

// AppendXTetra appends x and returns its new 1-based index.
func (m *Mesh) AppendXTetra(x XTetra) int32 {
	m.XTetra = append(m.XTetra, x)
	return int32(len(m.XTetra) - 1)
}

// AppendXPoint appends x and returns its new 1-based index.
func (m *Mesh) AppendXPoint(x XPoint) int32 {
	m.XPoints = append(m.XPoints, x)
	return int32(len(m.XPoints) - 1)
}

// GrowPoints preallocates capacity for at least n additional points; a
// splitter sizing its output groups from Euler-Poincaré estimates is a
// typical caller.
func (m *Mesh) GrowPoints(n int32) {
	grow(&m.Points, n)
}

// GrowTetra preallocates capacity for at least n additional tetrahedra.
func (m *Mesh) GrowTetra(n int32) {
	grow(&m.Tetra, n)
}

func grow[T any](s *[]T, n int32) {
	if n <= 0 {
		return
	}
	if cap(*s)-len(*s) >= int(n) {
		return
	}
	bigger := make([]T, len(*s), len(*s)+int(n))
	copy(bigger, *s)
	*s = bigger
}

// Clean shrinks every table to its exact live length. It is a no-op on
// slices already at capacity, and on a Go slice "shrink capacity to length"
// only matters for memory, never for correctness, since indices are never
// invalidated by it.
func (m *Mesh) Clean() {
	m.Points = append([]Point(nil), m.Points...)
	m.Tetra = append([]Tetra(nil), m.Tetra...)
	m.XTetra = append([]XTetra(nil), m.XTetra...)
	m.XPoints = append([]XPoint(nil), m.XPoints...)
}
