// Package sim provides the exhaustive lattice-walk sampler.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - lattice.go: Coordinate and the fixed step sets
//   - enumerator.go: depth-first generation of every walk of a given length
//   - energy.go: substrate contact energy (bonded eps0, lone eps1)
//   - sweep.go: temperature sweep driver and its two strategies
//
// # Architecture
//
// Every walk of length L from the start point is generated by Enumerate, which
// calls a LeafVisitor once per walk. Walks may cross themselves; nothing is
// pruned, so a step set of size K yields exactly K^L walks.
//
// For each temperature T the walk's energy E and squared end-to-end radius R²
// are folded into an Accumulator with the Boltzmann weight exp(-E/T), and the
// thermal averages <E>, <E²> and <R²> are derived once all walks are in.
//
// E and R² do not depend on T, so the default StrategySpectrum enumerates once
// into a Spectrum (distinct (E, R²) states with multiplicities) and evaluates
// every temperature from it. StrategyPerTemperature re-enumerates per T and is
// kept as the reference control flow; both agree to floating-point tolerance.
//
// Records are written by RecordWriter as comma-separated lines:
//
//	T,<E>²,<E²>,<R²>
//
// Sub-packages:
//   - sim/trace/: optional per-walk records and summary statistics
package sim
