// Package testutil provides shared test infrastructure for the lattice sampler.
// It consolidates tolerance helpers used across the sim/ test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// RecordFields is the subset of a sweep record compared by AssertRecordClose.
// It mirrors sim.Record without importing sim, so sim's own tests can use it.
type RecordFields struct {
	Temperature       float64
	MeanEnergy        float64
	MeanSquaredEnergy float64
	MeanEnergySquared float64
	MeanRadiusSquared float64
}

// AssertRecordClose compares every field of two records with relative tolerance.
func AssertRecordClose(t *testing.T, name string, want, got RecordFields, relTol float64) {
	t.Helper()
	AssertFloat64Equal(t, name+".Temperature", want.Temperature, got.Temperature, relTol)
	AssertFloat64Equal(t, name+".MeanEnergy", want.MeanEnergy, got.MeanEnergy, relTol)
	AssertFloat64Equal(t, name+".MeanSquaredEnergy", want.MeanSquaredEnergy, got.MeanSquaredEnergy, relTol)
	AssertFloat64Equal(t, name+".MeanEnergySquared", want.MeanEnergySquared, got.MeanEnergySquared, relTol)
	AssertFloat64Equal(t, name+".MeanRadiusSquared", want.MeanRadiusSquared, got.MeanRadiusSquared, relTol)
}
