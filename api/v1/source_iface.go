package v1

// Source is the contract every ephemeris backend fulfils. The standard
// implementation wraps a binary JPL DE kernel; tests substitute
// synthetic sources. A Source is scoped: obtained by opening a kernel,
// passed to the code that queries it, and released with Close — never
// held as process-global state.
type Source interface {
	// Meta returns descriptive metadata for the opened kernel.
	Meta() KernelMeta

	// Coverage returns the ET interval the source can evaluate.
	Coverage() (startET, endET float64)

	// State returns the state of target relative to observer at et,
	// with the given aberration correction applied.
	State(et float64, target, observer string, corr Correction) (StateVector, error)

	// Window samples the relative trajectory at n evenly spaced epochs
	// spanning [from, to] inclusive.
	Window(from, to float64, n int, target, observer string, corr Correction) ([]Sample, error)

	// Bodies lists the body names this source resolves, sorted.
	Bodies() []string

	// Close releases the underlying kernel resources. The Source must
	// not be used afterwards.
	Close() error
}
