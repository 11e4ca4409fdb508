// Package pmerr defines the error taxonomy and exit-code model shared by
// every package in this module: one package-level error var per failure
// class, always matched with errors.Is, never compared by string.
package pmerr

import "errors"

var (
	// ErrAllocation is returned when a table growth or hash overflow fails.
	ErrAllocation = errors.New("pmerr: allocation failure")

	// ErrPartitioner is returned when the external KWAY partitioner reports
	// a non-OK status.
	ErrPartitioner = errors.New("pmerr: partitioner failure")

	// ErrStructuralInvariant is returned when an internal assertion on the
	// mesh/group/communicator invariants fails (adjacency index out of
	// range, tet/vertex count mismatch, nonempty communicator where empty
	// expected).
	ErrStructuralInvariant = errors.New("pmerr: structural invariant violation")

	// ErrCommunication is returned when a messaging primitive reports a
	// non-success status.
	ErrCommunication = errors.New("pmerr: communication failure")

	// ErrInputData is returned for missing points, inconsistent metric
	// size, or unsupported modes (Lagrangian, iso) requested of the core.
	ErrInputData = errors.New("pmerr: input data error")
)

// Code is the exit-status model: whether a conforming mesh survived an
// operation, and at what cost. The operations in package driver return an
// error, not a Code.
type Code int

const (
	// Success indicates the operation completed with no salvage needed.
	Success Code = iota
	// LowFailure indicates a conforming mesh was salvaged despite an error.
	LowFailure
	// StrongFailure indicates no conforming mesh could be salvaged.
	StrongFailure
)

func (c Code) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case LowFailure:
		return "LOWFAILURE"
	case StrongFailure:
		return "STRONGFAILURE"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic wraps a taxonomy sentinel with the subsystem that raised it, so
// callers can still match with errors.Is(err, pmerr.ErrAllocation) while the
// Error() text names the subsystem the failure came from. Diagnostic does
// not print anything itself.
type Diagnostic struct {
	Subsystem string
	Err       error
}

func (d *Diagnostic) Error() string {
	return d.Subsystem + ": " + d.Err.Error()
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Wrap builds a Diagnostic naming subsystem as the origin of err.
func Wrap(subsystem string, err error) error {
	if err == nil {
		return nil
	}
	return &Diagnostic{Subsystem: subsystem, Err: err}
}
