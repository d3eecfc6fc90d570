package sim

import "fmt"

// Coordinate is a point (or a step delta) on the 2D integer lattice.
// Equality is structural, so Coordinates can be compared with ==.
type Coordinate struct {
	X int
	Y int
}

// Origin is the default starting point of every walk.
var Origin = Coordinate{}

// Add returns the coordinate reached by moving c by delta.
func (c Coordinate) Add(delta Coordinate) Coordinate {
	return Coordinate{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// OnAxis reports whether c lies on the substrate line y == 0.
func (c Coordinate) OnAxis() bool {
	return c.Y == 0
}

// NormSqr returns the squared Euclidean distance from the origin.
func (c Coordinate) NormSqr() int {
	return c.X*c.X + c.Y*c.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// StepSet is the ordered collection of deltas allowed for a single move.
// Enumeration visits its entries in declaration order. Callers must treat a
// StepSet as immutable for the lifetime of a run.
type StepSet []Coordinate

// SquareSteps are the four axis-aligned unit moves of the square lattice.
var SquareSteps = StepSet{
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
}

// TriangularSteps extends SquareSteps with the two anti-diagonal moves,
// giving every site six neighbours.
var TriangularSteps = StepSet{
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
}

// DefaultSteps is the step set used by the reference sweep.
// Swap in TriangularSteps here to sample the six-neighbour lattice.
var DefaultSteps = SquareSteps
