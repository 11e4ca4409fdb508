// Package pmpi provides the minimal message-passing substrate the core
// consumes as an external collaborator: rank/size queries and the five
// collectives named in the design (Allgather, Allgatherv, Allreduce,
// Scatterv, Sendrecv).
//
// No ready-made Go MPI binding exists in this module's reference corpus —
// a real MPI binding needs cgo against a system MPI install, which none of
// the example repositories wire. Comm is instead an in-process, channel-based
// SPMD substrate: NewWorld spawns one simulated rank per Comm, and every
// collective is a genuine synchronization point (a shared barrier all ranks
// must reach before any of them proceeds), not a no-op. This lets the rest of
// the module, and its tests, exercise real multi-rank scenarios inside a
// single test binary.
//
// Collectives must be invoked in the same order on every rank, exactly as
// real MPI requires; Comm enforces this implicitly by blocking each rank's
// goroutine until all ranks have issued the matching call.
package pmpi
