// Package trace provides per-walk recording for enumeration runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// LeafRecord captures one complete walk visited by the enumerator.
type LeafRecord struct {
	Index            uint64  // position in enumeration order, starting at 0
	Path             string  // rendered points, e.g. "(0, 0)(1, 0)"; empty below TraceLevelPaths
	Energy           float64 // contact energy
	RadiusSqr        float64 // squared end-to-end distance
	SelfIntersecting bool    // true if any site is visited twice
}
