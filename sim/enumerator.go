package sim

import (
	"fmt"
	"math/bits"
)

// LeafVisitor is called once per complete walk. The Path argument is only
// valid for the duration of the call.
type LeafVisitor func(Path)

// Enumerate visits every walk of exactly length steps starting at start,
// where each step is drawn from steps. There is no pruning: self-intersecting
// walks are visited like any other, so visit is called |steps|^length times.
//
// Walks are produced depth-first with children in step-set declaration order,
// i.e. in lexicographic order of their step indices. The traversal uses an
// explicit work stack over a single path buffer, so walk length is bounded
// only by memory and nothing is copied per node.
func Enumerate(start Coordinate, length int, steps StepSet, visit LeafVisitor) error {
	if length < 0 {
		return fmt.Errorf("enumerate length %d: %w", length, ErrNegativeWalkLength)
	}

	path := make(Path, length+1)
	path[0] = start
	if length == 0 {
		visit(path)
		return nil
	}

	// next[d] is the index of the next step to try from path[d].
	next := make([]int, length)
	depth := 0
	for depth >= 0 {
		if next[depth] == len(steps) {
			next[depth] = 0
			depth--
			continue
		}
		path[depth+1] = path[depth].Add(steps[next[depth]])
		next[depth]++
		if depth+1 == length {
			visit(path)
			continue
		}
		depth++
	}
	return nil
}

// LeafCount returns the number of walks Enumerate visits for a step set of
// size k and the given length, i.e. k^length.
func LeafCount(k, length int) (uint64, error) {
	if length < 0 {
		return 0, fmt.Errorf("leaf count length %d: %w", length, ErrNegativeWalkLength)
	}
	if k < 0 {
		return 0, fmt.Errorf("leaf count for %d steps: %w", k, ErrEmptyStepSet)
	}
	total := uint64(1)
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(total, uint64(k))
		if hi != 0 {
			return 0, fmt.Errorf("%d^%d: %w", k, length, ErrLeafCountOverflow)
		}
		total = lo
	}
	return total, nil
}
