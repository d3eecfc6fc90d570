package sim

import (
	"fmt"
	"math"
)

// Contact energies of the reference run.
const (
	ReferenceEps0 = 10.0 // bonded contact: two path-adjacent points on the axis
	ReferenceEps1 = 1.0  // lone contact: an axis point not in any bonded pair
)

// ConsumptionMode selects how points claimed by a bonded contact are
// excluded from the lone-contact pass.
type ConsumptionMode int

const (
	// ConsumeByPosition marks path indices. A site revisited later in the
	// walk is judged on its own.
	ConsumeByPosition ConsumptionMode = iota

	// ConsumeByValue marks coordinates. Once a site is part of a bonded
	// contact, every visit to it is excluded from the lone-contact pass.
	ConsumeByValue
)

var consumptionModeNames = map[string]ConsumptionMode{
	"position": ConsumeByPosition,
	"value":    ConsumeByValue,
}

// ParseConsumptionMode maps "position" or "value" to a ConsumptionMode.
// The empty string selects ConsumeByPosition.
func ParseConsumptionMode(name string) (ConsumptionMode, error) {
	if name == "" {
		return ConsumeByPosition, nil
	}
	mode, ok := consumptionModeNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown consumption mode %q", name)
	}
	return mode, nil
}

func (m ConsumptionMode) String() string {
	switch m {
	case ConsumeByPosition:
		return "position"
	case ConsumeByValue:
		return "value"
	default:
		return fmt.Sprintf("ConsumptionMode(%d)", int(m))
	}
}

// inlineMarks bounds the path length whose consumption marks live on the stack.
const inlineMarks = 64

// EnergyModel scores a walk by its contacts with the substrate line y == 0.
type EnergyModel struct {
	Eps0        float64 // per bonded contact
	Eps1        float64 // per lone contact
	Consumption ConsumptionMode
}

// NewReferenceEnergyModel returns the eps0=10, eps1=1 model with positional consumption.
func NewReferenceEnergyModel() EnergyModel {
	return EnergyModel{Eps0: ReferenceEps0, Eps1: ReferenceEps1, Consumption: ConsumeByPosition}
}

// Validate checks that both contact energies are finite and non-negative.
func (m EnergyModel) Validate() error {
	for _, eps := range []float64{m.Eps0, m.Eps1} {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			return fmt.Errorf("eps0=%v eps1=%v: %w", m.Eps0, m.Eps1, ErrNegativeEnergyWeight)
		}
	}
	if m.Consumption != ConsumeByPosition && m.Consumption != ConsumeByValue {
		return fmt.Errorf("unknown consumption mode %v", m.Consumption)
	}
	return nil
}

// Energy returns the contact energy of p.
//
// Every consecutive pair of points both lying on the axis adds Eps0 and
// consumes both points. Every axis point left unconsumed afterwards adds Eps1.
// The pair pass always completes before the lone pass starts.
func (m EnergyModel) Energy(p Path) float64 {
	if m.Consumption == ConsumeByValue {
		return m.energyByValue(p)
	}
	return m.energyByPosition(p)
}

func (m EnergyModel) energyByPosition(p Path) float64 {
	var buf [inlineMarks]bool
	var consumed []bool
	if len(p) <= inlineMarks {
		consumed = buf[:len(p)]
	} else {
		consumed = make([]bool, len(p))
	}

	e := 0.0
	for i := 1; i < len(p); i++ {
		if p[i-1].OnAxis() && p[i].OnAxis() {
			e += m.Eps0
			consumed[i-1] = true
			consumed[i] = true
		}
	}
	for i, c := range p {
		if c.OnAxis() && !consumed[i] {
			e += m.Eps1
		}
	}
	return e
}

func (m EnergyModel) energyByValue(p Path) float64 {
	var buf [inlineMarks]Coordinate
	consumed := buf[:0]

	e := 0.0
	for i := 1; i < len(p); i++ {
		if p[i-1].OnAxis() && p[i].OnAxis() {
			e += m.Eps0
			consumed = markSite(consumed, p[i-1])
			consumed = markSite(consumed, p[i])
		}
	}
	for _, c := range p {
		if c.OnAxis() && !containsSite(consumed, c) {
			e += m.Eps1
		}
	}
	return e
}

func markSite(set []Coordinate, c Coordinate) []Coordinate {
	if containsSite(set, c) {
		return set
	}
	return append(set, c)
}

func containsSite(set []Coordinate, c Coordinate) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
