package trace

import "sort"

// TraceSummary aggregates statistics over every recorded walk.
type TraceSummary struct {
	TotalLeaves        int
	SelfIntersecting   int
	AxisFree           int // walks with zero contact energy
	MeanEnergy         float64
	MaxEnergy          float64
	MeanRadiusSqr      float64
	MaxRadiusSqr       float64
	EnergyDistribution map[float64]int // energy → count of walks

	energySum float64
	radiusSum float64
}

// NewTraceSummary returns an empty summary.
func NewTraceSummary() *TraceSummary {
	return &TraceSummary{EnergyDistribution: make(map[float64]int)}
}

// Observe folds one walk into the summary. Means are unweighted, which makes
// MeanEnergy the infinite-temperature limit of the thermal average.
func (s *TraceSummary) Observe(r LeafRecord) {
	s.TotalLeaves++
	if r.SelfIntersecting {
		s.SelfIntersecting++
	}
	if r.Energy == 0 {
		s.AxisFree++
	}
	if r.Energy > s.MaxEnergy {
		s.MaxEnergy = r.Energy
	}
	if r.RadiusSqr > s.MaxRadiusSqr {
		s.MaxRadiusSqr = r.RadiusSqr
	}
	s.EnergyDistribution[r.Energy]++
	s.energySum += r.Energy
	s.radiusSum += r.RadiusSqr
	s.MeanEnergy = s.energySum / float64(s.TotalLeaves)
	s.MeanRadiusSqr = s.radiusSum / float64(s.TotalLeaves)
}

// DistinctEnergies returns the observed energy levels in ascending order.
func (s *TraceSummary) DistinctEnergies() []float64 {
	levels := make([]float64, 0, len(s.EnergyDistribution))
	for e := range s.EnergyDistribution {
		levels = append(levels, e)
	}
	sort.Float64s(levels)
	return levels
}

// Summarize computes aggregate statistics from the records held by a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := NewTraceSummary()
	if st == nil {
		return summary
	}
	for _, r := range st.Leaves {
		summary.Observe(r)
	}
	return summary
}
