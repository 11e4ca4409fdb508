// Package mesh implements the local mesh data model: points, tetrahedra,
// their boundary extension tables (xtetra/xpoint), opaque pass-through
// entities (prisms, triangles, quads, edges), and the dual adjacency array
// adja.
//
// All tables are 1-based (index 0 reserved/unused) to match the adja
// encoding ("0 if boundary") literally rather than translating it through an
// off-by-one shim at every call site; this mirrors the original ParMmg
// sources this package's algorithms are grounded on.
//
// Go slices are referenced only by integer index in this module, never by
// captured pointer, so the "index stability across growth" property the
// original C sources had to engineer with realloc-preserving discipline is
// automatic here: growing a table with append never invalidates another
// table's stored indices into it.
package mesh
