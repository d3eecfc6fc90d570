package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_SingleStepWalks(t *testing.T) {
	// GIVEN the four walks of length 1 and the reference energies
	model := NewReferenceEnergyModel()
	tests := []struct {
		name string
		path Path
		want float64
	}{
		{"left stays on axis", Path{{0, 0}, {-1, 0}}, 10},
		{"up leaves axis", Path{{0, 0}, {0, 1}}, 1},
		{"right stays on axis", Path{{0, 0}, {1, 0}}, 10},
		{"down leaves axis", Path{{0, 0}, {0, -1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Energy(tt.path))
		})
	}
}

func TestEnergy_ZeroLength(t *testing.T) {
	model := NewReferenceEnergyModel()
	// A lone start point on the axis is a lone contact.
	assert.Equal(t, ReferenceEps1, model.Energy(Path{{0, 0}}))
	// Off the axis it scores nothing.
	assert.Equal(t, 0.0, model.Energy(Path{{0, 3}}))
	assert.Equal(t, 0.0, model.Energy(Path{}))
}

func TestEnergy_EveryAdjacentPairCounts(t *testing.T) {
	// Three consecutive axis points form two bonded pairs; the middle point
	// belongs to both but is consumed only once and earns no lone contact.
	model := NewReferenceEnergyModel()
	assert.Equal(t, 20.0, model.Energy(Path{{0, 0}, {1, 0}, {2, 0}}))
	assert.Equal(t, 21.0, model.Energy(Path{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 0}}))
}

func TestEnergy_LoneContactsOnly(t *testing.T) {
	model := NewReferenceEnergyModel()
	// Crossing the axis vertically touches it once per crossing.
	assert.Equal(t, 1.0, model.Energy(Path{{0, 1}, {0, 0}, {0, -1}}))
	assert.Equal(t, 2.0, model.Energy(Path{{0, 0}, {0, 1}, {1, 1}, {1, 0}}))
}

func TestEnergy_DiagonalStepsNeverBond(t *testing.T) {
	model := NewReferenceEnergyModel()
	assert.Equal(t, 1.0, model.Energy(Path{{0, 0}, {1, -1}}))
	assert.Equal(t, 2.0, model.Energy(Path{{0, 0}, {1, -1}, {0, 0}}))
}

func TestEnergy_SelfIntersectingWalk_ConsumptionModes(t *testing.T) {
	// GIVEN a closed square that revisits the origin at the end:
	// (0,0)-(1,0) is a bonded pair, the final (0,0) is a separate visit.
	p := Path{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

	// WHEN consumption is per position, the revisit is a lone contact
	byPosition := EnergyModel{Eps0: 10, Eps1: 1, Consumption: ConsumeByPosition}
	assert.Equal(t, 11.0, byPosition.Energy(p))

	// WHEN consumption is per coordinate value, the revisit is already consumed
	byValue := EnergyModel{Eps0: 10, Eps1: 1, Consumption: ConsumeByValue}
	assert.Equal(t, 10.0, byValue.Energy(p))
}

func TestEnergy_SelfAvoidingWalks_ModesAgree(t *testing.T) {
	byPosition := EnergyModel{Eps0: 10, Eps1: 1, Consumption: ConsumeByPosition}
	byValue := EnergyModel{Eps0: 10, Eps1: 1, Consumption: ConsumeByValue}
	err := Enumerate(Origin, 6, SquareSteps, func(p Path) {
		if p.SelfIntersecting() {
			return
		}
		require.Equal(t, byPosition.Energy(p), byValue.Energy(p), "path %s", p)
	})
	require.NoError(t, err)
}

func TestEnergy_NonNegativeAndReversalInvariant(t *testing.T) {
	for _, mode := range []ConsumptionMode{ConsumeByPosition, ConsumeByValue} {
		model := EnergyModel{Eps0: 10, Eps1: 1, Consumption: mode}
		for _, steps := range []StepSet{SquareSteps, TriangularSteps} {
			err := Enumerate(Origin, 5, steps, func(p Path) {
				e := model.Energy(p)
				require.GreaterOrEqual(t, e, 0.0)
				require.Equal(t, e, model.Energy(p.Reversed()), "mode=%v path %s", mode, p)
			})
			require.NoError(t, err)
		}
	}
}

func TestEnergy_IsCombinationOfWeights(t *testing.T) {
	// With eps0=10 and eps1=1 on walks of length 6 there are at most 7 lone
	// contacts, so E mod 10 counts them and E div 10 counts bonded pairs.
	model := NewReferenceEnergyModel()
	err := Enumerate(Origin, 6, SquareSteps, func(p Path) {
		e := model.Energy(p)
		require.Equal(t, e, math.Trunc(e))
		bonded := int(e) / 10
		lone := int(e) % 10
		require.LessOrEqual(t, bonded, p.Steps())
		require.LessOrEqual(t, lone, len(p))
	})
	require.NoError(t, err)
}

func TestEnergy_LongPath_BeyondInlineMarks(t *testing.T) {
	// GIVEN a straight axis walk longer than the inline mark buffer
	p := make(Path, inlineMarks+10)
	for i := range p {
		p[i] = Coordinate{X: i}
	}
	model := NewReferenceEnergyModel()

	// THEN every step is a bonded pair in both modes
	want := float64(len(p)-1) * ReferenceEps0
	assert.Equal(t, want, model.Energy(p))
	model.Consumption = ConsumeByValue
	assert.Equal(t, want, model.Energy(p))
}

func TestEnergyModel_Validate(t *testing.T) {
	assert.NoError(t, NewReferenceEnergyModel().Validate())
	assert.NoError(t, EnergyModel{}.Validate())

	for _, m := range []EnergyModel{
		{Eps0: -1, Eps1: 1},
		{Eps0: 10, Eps1: -0.5},
		{Eps0: math.NaN(), Eps1: 1},
		{Eps0: 10, Eps1: math.Inf(1)},
	} {
		err := m.Validate()
		assert.True(t, errors.Is(err, ErrNegativeEnergyWeight), "model %+v", m)
	}
	assert.Error(t, EnergyModel{Consumption: ConsumptionMode(7)}.Validate())
}

func TestParseConsumptionMode(t *testing.T) {
	mode, err := ParseConsumptionMode("")
	require.NoError(t, err)
	assert.Equal(t, ConsumeByPosition, mode)

	mode, err = ParseConsumptionMode("value")
	require.NoError(t, err)
	assert.Equal(t, ConsumeByValue, mode)
	assert.Equal(t, "value", mode.String())

	_, err = ParseConsumptionMode("identity")
	assert.Error(t, err)
}
