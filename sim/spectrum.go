package sim

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/trees/redblacktree"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpectrumState is one distinct (energy, squared radius) pair and the number
// of walks that realise it.
type SpectrumState struct {
	Energy       float64
	RadiusSqr    float64
	Multiplicity uint64
}

// spectrumKey orders states by energy, then squared radius.
type spectrumKey struct {
	energy    float64
	radiusSqr float64
}

func compareSpectrumKeys(a, b interface{}) int {
	ka := a.(spectrumKey)
	kb := b.(spectrumKey)
	switch {
	case ka.energy < kb.energy:
		return -1
	case ka.energy > kb.energy:
		return 1
	case ka.radiusSqr < kb.radiusSqr:
		return -1
	case ka.radiusSqr > kb.radiusSqr:
		return 1
	default:
		return 0
	}
}

// Spectrum is the density of states of a walk ensemble. Energies and radii do
// not depend on temperature, so a single enumeration into a Spectrum can serve
// an entire temperature sweep.
//
// States are kept in a fixed order, so evaluating the same Spectrum twice sums
// the same terms in the same order and gives bit-identical results.
type Spectrum struct {
	states []SpectrumState
	leaves uint64

	energies      []float64
	energySquares []float64
	radii         []float64
	multiplicity  []float64
	weights       []float64 // scratch, reused across Evaluate calls
}

// BuildSpectrum enumerates every walk once and tallies its states.
func BuildSpectrum(start Coordinate, length int, steps StepSet, model EnergyModel) (*Spectrum, error) {
	tree := redblacktree.Tree{Comparator: compareSpectrumKeys}
	var leaves uint64

	err := Enumerate(start, length, steps, func(p Path) {
		key := spectrumKey{energy: model.Energy(p), radiusSqr: p.RadiusSqr()}
		n := uint64(0)
		if v, found := tree.Get(key); found {
			n = v.(uint64)
		}
		tree.Put(key, n+1)
		leaves++
	})
	if err != nil {
		return nil, err
	}

	states := make([]SpectrumState, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		key := it.Key().(spectrumKey)
		states = append(states, SpectrumState{
			Energy:       key.energy,
			RadiusSqr:    key.radiusSqr,
			Multiplicity: it.Value().(uint64),
		})
	}
	return newSpectrum(states, leaves), nil
}

func newSpectrum(states []SpectrumState, leaves uint64) *Spectrum {
	s := &Spectrum{
		states:        states,
		leaves:        leaves,
		energies:      make([]float64, len(states)),
		energySquares: make([]float64, len(states)),
		radii:         make([]float64, len(states)),
		multiplicity:  make([]float64, len(states)),
		weights:       make([]float64, len(states)),
	}
	for i, st := range states {
		s.energies[i] = st.Energy
		s.energySquares[i] = st.Energy * st.Energy
		s.radii[i] = st.RadiusSqr
		s.multiplicity[i] = float64(st.Multiplicity)
	}
	return s
}

// Leaves returns the number of walks folded into the spectrum.
func (s *Spectrum) Leaves() uint64 {
	return s.leaves
}

// States returns the distinct states in ascending (energy, radius) order.
func (s *Spectrum) States() []SpectrumState {
	out := make([]SpectrumState, len(s.states))
	copy(out, s.states)
	return out
}

// MinEnergy returns the ground-state energy, or 0 for an empty spectrum.
func (s *Spectrum) MinEnergy() float64 {
	if len(s.states) == 0 {
		return 0
	}
	return s.states[0].Energy
}

// PartitionSum returns Σ g·exp(-(E-shift)/t) over all states.
func (s *Spectrum) PartitionSum(t, shift float64) float64 {
	s.fillWeights(t, shift)
	return floats.Sum(s.weights)
}

func (s *Spectrum) fillWeights(t, shift float64) {
	for i, e := range s.energies {
		s.weights[i] = s.multiplicity[i] * math.Exp(-(e-shift)/t)
	}
}

// Evaluate returns the thermal averages at temperature t. Weights are taken
// relative to the ground state, so the partition sum never underflows.
func (s *Spectrum) Evaluate(t float64) (Record, error) {
	if !validTemperature(t) {
		return Record{}, fmt.Errorf("T=%v: %w", t, ErrInvalidTemperature)
	}
	if len(s.states) == 0 {
		return Record{}, fmt.Errorf("T=%v on empty spectrum: %w", t, ErrDegeneratePartition)
	}
	// PartitionSum leaves the per-state weights in s.weights for the means below.
	if z := s.PartitionSum(t, s.MinEnergy()); !(z > 0) || math.IsInf(z, 0) {
		return Record{}, fmt.Errorf("T=%v: %w", t, ErrDegeneratePartition)
	}

	meanEnergy := stat.Mean(s.energies, s.weights)
	return Record{
		Temperature:       t,
		MeanEnergy:        meanEnergy,
		MeanSquaredEnergy: meanEnergy * meanEnergy,
		MeanEnergySquared: stat.Mean(s.energySquares, s.weights),
		MeanRadiusSquared: stat.Mean(s.radii, s.weights),
	}, nil
}
