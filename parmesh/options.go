package parmesh

// Partitioner names an external KWAY variant. No driver operation reads
// it: PartGrpsDist always runs multilevel k-way partitioning.
type Partitioner int

const (
	// PartitionerKway is multilevel k-way partitioning (METIS_PTYPE_KWAY).
	PartitionerKway Partitioner = iota
	// PartitionerRecursive is recursive bisection (METIS_PTYPE_RB).
	PartitionerRecursive
)

// Options is ParMesh's process-wide configuration: memory budget, debug
// flags, partitioner choice, contiguous-mode flag. Generalized from a raw
// `options []int32` + SetDefaultOptions array into a typed struct with
// functional-option constructors.
type Options struct {
	MemMax      int64
	Debug       bool
	Partitioner Partitioner
	Contiguous  bool
	TargetSize  int32
}

// DefaultOptions returns the module's baseline configuration.
func DefaultOptions() Options {
	return Options{
		MemMax:      0, // 0 means "no explicit budget"
		Debug:       false,
		Partitioner: PartitionerKway,
		Contiguous:  true,
		TargetSize:  100000,
	}
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithMemMax sets the memory budget in bytes.
func WithMemMax(bytes int64) Option {
	return func(o *Options) { o.MemMax = bytes }
}

// WithDebug sets Options.Debug. No operation in this module reads it, so it
// enables no extra checks.
func WithDebug(debug bool) Option {
	return func(o *Options) { o.Debug = debug }
}

// WithPartitioner sets Options.Partitioner. Distributed repartitioning does
// not read it and always uses k-way.
func WithPartitioner(p Partitioner) Option {
	return func(o *Options) { o.Partitioner = p }
}

// WithContiguous sets the initial contiguous-mode request. It may still be
// downgraded to false at runtime by CheckAndResetContiguity.
func WithContiguous(contiguous bool) Option {
	return func(o *Options) { o.Contiguous = contiguous }
}

// WithTargetSize sets the default target element count used by SplitGrps
// when the caller passes zero.
func WithTargetSize(n int32) Option {
	return func(o *Options) { o.TargetSize = n }
}
