package sim

import (
	"fmt"
	"math"
)

// Accumulator holds the Boltzmann-weighted running sums for one temperature.
// It is owned by a single enumeration pass and must not be read through
// Record until that pass has finished.
//
// Weights are taken relative to the lowest energy observed so far, so the
// sums stay representable at any temperature. When a lower energy arrives
// the sums are rescaled; the shift cancels in every average.
type Accumulator struct {
	Temperature float64

	EnergyWeighted        float64 // Σ E·w
	EnergySquaredWeighted float64 // Σ E²·w
	RadiusWeighted        float64 // Σ R²·w
	PartitionNorm         float64 // Σ w, with w = exp(-(E-Shift())/T)

	Leaves uint64

	shift float64
}

// NewAccumulator returns a zeroed accumulator for temperature t.
func NewAccumulator(t float64) *Accumulator {
	return &Accumulator{Temperature: t}
}

// Reset clears the running sums and the shift, keeping Temperature.
func (a *Accumulator) Reset() {
	*a = Accumulator{Temperature: a.Temperature}
}

// Shift returns the energy every weight is measured from: the lowest energy
// observed so far, or 0 before the first observation.
func (a *Accumulator) Shift() float64 {
	return a.shift
}

// Weight returns the Boltzmann factor exp(-(energy-Shift())/Temperature).
func (a *Accumulator) Weight(energy float64) float64 {
	return math.Exp(-(energy - a.shift) / a.Temperature)
}

// Observe folds one walk into the sums.
func (a *Accumulator) Observe(energy, radiusSqr float64) {
	a.ObserveN(energy, radiusSqr, 1)
}

// ObserveN folds n walks sharing the same energy and squared radius.
func (a *Accumulator) ObserveN(energy, radiusSqr float64, n uint64) {
	if n == 0 {
		return
	}
	switch {
	case a.Leaves == 0:
		a.shift = energy
	case energy < a.shift:
		a.rescale(energy)
	}
	w := float64(n) * a.Weight(energy)
	a.EnergyWeighted += energy * w
	a.EnergySquaredWeighted += energy * energy * w
	a.RadiusWeighted += radiusSqr * w
	a.PartitionNorm += w
	a.Leaves += n
}

// rescale moves the shift down to energy, multiplying every sum by the
// ratio of old to new weights.
func (a *Accumulator) rescale(energy float64) {
	f := math.Exp(-(a.shift - energy) / a.Temperature)
	a.EnergyWeighted *= f
	a.EnergySquaredWeighted *= f
	a.RadiusWeighted *= f
	a.PartitionNorm *= f
	a.shift = energy
}

// Record derives the thermal averages from the accumulated sums.
func (a *Accumulator) Record() (Record, error) {
	z := a.PartitionNorm
	if !(z > 0) || math.IsInf(z, 0) {
		return Record{}, fmt.Errorf("T=%v after %d walks: %w", a.Temperature, a.Leaves, ErrDegeneratePartition)
	}
	meanEnergy := a.EnergyWeighted / z
	return Record{
		Temperature:       a.Temperature,
		MeanEnergy:        meanEnergy,
		MeanSquaredEnergy: meanEnergy * meanEnergy,
		MeanEnergySquared: a.EnergySquaredWeighted / z,
		MeanRadiusSquared: a.RadiusWeighted / z,
	}, nil
}
