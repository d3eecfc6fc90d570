package sim

import (
	"math"
	"strings"
)

// Path is one complete walk: the starting point followed by one point per step.
// Paths handed to an enumeration callback share a buffer with the enumerator
// and are only valid for the duration of the call; use Clone to retain one.
type Path []Coordinate

// Clone returns a copy of p that does not alias the enumerator's buffer.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Steps returns the walk length (number of edges) of p.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// End returns the final point of the walk.
func (p Path) End() Coordinate {
	if len(p) == 0 {
		return Origin
	}
	return p[len(p)-1]
}

// RadiusSqr is the squared distance from the origin to the final point.
func (p Path) RadiusSqr() float64 {
	return float64(p.End().NormSqr())
}

// Radius is the end-to-end distance from the origin to the final point.
func (p Path) Radius() float64 {
	return math.Sqrt(p.RadiusSqr())
}

// Reversed returns a new path visiting the same points in the opposite order.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// SelfIntersecting reports whether any lattice site is visited twice.
func (p Path) SelfIntersecting() bool {
	seen := make(map[Coordinate]struct{}, len(p))
	for _, c := range p {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// String renders the path as "(x, y)(x, y)...".
func (p Path) String() string {
	var sb strings.Builder
	for _, c := range p {
		sb.WriteString(c.String())
	}
	return sb.String()
}
