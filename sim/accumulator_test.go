package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/lattice-sim/sim/internal/testutil"
)

func TestAccumulator_Observe_WeightedSums(t *testing.T) {
	// GIVEN an accumulator at T=2
	acc := NewAccumulator(2)

	// WHEN two walks are observed
	acc.Observe(0, 4)
	acc.Observe(2, 1)

	// THEN the sums use w = exp(-E/T)
	w := math.Exp(-1)
	testutil.AssertFloat64Equal(t, "PartitionNorm", 1+w, acc.PartitionNorm, 1e-15)
	testutil.AssertFloat64Equal(t, "EnergyWeighted", 2*w, acc.EnergyWeighted, 1e-15)
	testutil.AssertFloat64Equal(t, "EnergySquaredWeighted", 4*w, acc.EnergySquaredWeighted, 1e-15)
	testutil.AssertFloat64Equal(t, "RadiusWeighted", 4+w, acc.RadiusWeighted, 1e-15)
	assert.Equal(t, uint64(2), acc.Leaves)
}

func TestAccumulator_ObserveN_MatchesRepeatedObserve(t *testing.T) {
	a := NewAccumulator(3)
	b := NewAccumulator(3)
	for i := 0; i < 5; i++ {
		a.Observe(11, 2)
	}
	b.ObserveN(11, 2, 5)
	b.ObserveN(40, 9, 0)

	testutil.AssertFloat64Equal(t, "PartitionNorm", a.PartitionNorm, b.PartitionNorm, 1e-14)
	testutil.AssertFloat64Equal(t, "EnergyWeighted", a.EnergyWeighted, b.EnergyWeighted, 1e-14)
	assert.Equal(t, a.Leaves, b.Leaves)
}

func TestAccumulator_Record_DerivedStatistics(t *testing.T) {
	acc := NewAccumulator(1)
	acc.Observe(1, 1)
	acc.Observe(1, 9)

	rec, err := acc.Record()
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Temperature)
	testutil.AssertFloat64Equal(t, "MeanEnergy", 1, rec.MeanEnergy, 1e-15)
	testutil.AssertFloat64Equal(t, "MeanSquaredEnergy", 1, rec.MeanSquaredEnergy, 1e-15)
	testutil.AssertFloat64Equal(t, "MeanEnergySquared", 1, rec.MeanEnergySquared, 1e-15)
	testutil.AssertFloat64Equal(t, "MeanRadiusSquared", 5, rec.MeanRadiusSquared, 1e-15)
}

func TestAccumulator_Shift_TracksLowestEnergy(t *testing.T) {
	acc := NewAccumulator(1)
	assert.Equal(t, 0.0, acc.Shift())

	acc.Observe(13, 0)
	assert.Equal(t, 13.0, acc.Shift())
	acc.Observe(20, 0)
	assert.Equal(t, 13.0, acc.Shift())
	acc.Observe(3, 0)
	assert.Equal(t, 3.0, acc.Shift())
}

func TestAccumulator_Rescale_OrderIndependent(t *testing.T) {
	// GIVEN the same walks observed in ascending and descending energy order
	energies := []float64{3, 4, 13, 20}
	ascending := NewAccumulator(0.5)
	descending := NewAccumulator(0.5)
	for i := range energies {
		ascending.Observe(energies[i], energies[i])
		descending.Observe(energies[len(energies)-1-i], energies[len(energies)-1-i])
	}

	// THEN rescaling on every new minimum gives the same averages
	want, err := ascending.Record()
	require.NoError(t, err)
	got, err := descending.Record()
	require.NoError(t, err)
	testutil.AssertRecordClose(t, "descending", testutil.RecordFields(want), testutil.RecordFields(got), 1e-12)
	testutil.AssertFloat64Equal(t, "PartitionNorm", ascending.PartitionNorm, descending.PartitionNorm, 1e-12)
}

func TestAccumulator_MatchesUnshiftedSums(t *testing.T) {
	// Plain exp(-E/T) sums, as a direct port would compute them.
	const temp = 2.0
	energies := []float64{10, 1, 11, 2}
	radii := []float64{1, 4, 9, 16}
	var z, sumE, sumE2, sumR float64
	acc := NewAccumulator(temp)
	for i, e := range energies {
		w := math.Exp(-e / temp)
		z += w
		sumE += e * w
		sumE2 += e * e * w
		sumR += radii[i] * w
		acc.Observe(e, radii[i])
	}

	rec, err := acc.Record()
	require.NoError(t, err)
	testutil.AssertFloat64Equal(t, "MeanEnergy", sumE/z, rec.MeanEnergy, 1e-12)
	testutil.AssertFloat64Equal(t, "MeanEnergySquared", sumE2/z, rec.MeanEnergySquared, 1e-12)
	testutil.AssertFloat64Equal(t, "MeanRadiusSquared", sumR/z, rec.MeanRadiusSquared, 1e-12)
}

func TestAccumulator_Record_EmptyIsDegenerate(t *testing.T) {
	_, err := NewAccumulator(1).Record()
	assert.True(t, errors.Is(err, ErrDegeneratePartition))
}

func TestAccumulator_LowTemperature_NoUnderflow(t *testing.T) {
	// GIVEN a temperature at which exp(-E/T) underflows for every walk
	acc := NewAccumulator(0.001)
	acc.Observe(10, 4)
	acc.Observe(1, 1)
	acc.Observe(1, 9)

	// WHEN derived relative to the lowest energy
	rec, err := acc.Record()

	// THEN the result is the ground state, not a degenerate partition
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.MeanEnergy)
	assert.Equal(t, 5.0, rec.MeanRadiusSquared)
}

func TestAccumulator_Reset(t *testing.T) {
	acc := NewAccumulator(4)
	acc.Observe(10, 10)
	acc.Reset()
	assert.Equal(t, Accumulator{Temperature: 4}, *acc)
	assert.Equal(t, 0.0, acc.Shift())

	// A reset accumulator behaves like a fresh one at its new temperature.
	acc.Temperature = 2
	acc.Reset()
	acc.Observe(0, 4)
	acc.Observe(2, 1)
	fresh := NewAccumulator(2)
	fresh.Observe(0, 4)
	fresh.Observe(2, 1)
	assert.Equal(t, *fresh, *acc)
}

func TestRecord_HeatCapacity(t *testing.T) {
	r := Record{Temperature: 2, MeanSquaredEnergy: 9, MeanEnergySquared: 13}
	assert.Equal(t, 1.0, r.HeatCapacity())
}
