package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ReferenceWalkLength is the walk length of the reference run.
const ReferenceWalkLength = 10

// SweepStrategy selects how the walk ensemble is revisited per temperature.
type SweepStrategy string

const (
	// StrategySpectrum enumerates once and evaluates every temperature from
	// the resulting density of states (default).
	StrategySpectrum SweepStrategy = "spectrum"
	// StrategyPerTemperature re-enumerates the full walk tree for every
	// temperature and feeds each walk straight into an Accumulator.
	StrategyPerTemperature SweepStrategy = "per-temperature"
)

// validSweepStrategies maps accepted strategy names.
var validSweepStrategies = map[SweepStrategy]bool{
	StrategySpectrum:       true,
	StrategyPerTemperature: true,
	"":                     true, // empty defaults to spectrum
}

// IsValidSweepStrategy returns true if the given name is a recognized strategy.
func IsValidSweepStrategy(name string) bool {
	return validSweepStrategies[SweepStrategy(name)]
}

// SweepConfig fully determines a sweep. Two sweeps with equal configs produce
// identical records.
type SweepConfig struct {
	Start        Coordinate
	WalkLength   int
	Steps        StepSet
	Energy       EnergyModel
	Temperatures []float64
	Strategy     SweepStrategy
}

// NewReferenceSweepConfig returns the reference run: walks of length 10 from
// the origin on the square lattice, eps0=10, eps1=1, T = 1, 2, ..., 50.
func NewReferenceSweepConfig() SweepConfig {
	temps, _ := TemperatureRange(1, 50, 1)
	return SweepConfig{
		Start:        Origin,
		WalkLength:   ReferenceWalkLength,
		Steps:        DefaultSteps,
		Energy:       NewReferenceEnergyModel(),
		Temperatures: temps,
		Strategy:     StrategySpectrum,
	}
}

// Validate rejects configs that cannot produce a well-defined record for
// every temperature. It runs before any enumeration starts.
func (c SweepConfig) Validate() error {
	if c.WalkLength < 0 {
		return fmt.Errorf("walk length %d: %w", c.WalkLength, ErrNegativeWalkLength)
	}
	if len(c.Steps) == 0 {
		return ErrEmptyStepSet
	}
	if err := c.Energy.Validate(); err != nil {
		return err
	}
	if len(c.Temperatures) == 0 {
		return ErrNoTemperatures
	}
	for i, t := range c.Temperatures {
		if !validTemperature(t) {
			return fmt.Errorf("temperature[%d]=%v: %w", i, t, ErrInvalidTemperature)
		}
	}
	if !IsValidSweepStrategy(string(c.Strategy)) {
		return fmt.Errorf("unknown sweep strategy %q", c.Strategy)
	}
	if _, err := LeafCount(len(c.Steps), c.WalkLength); err != nil {
		return err
	}
	return nil
}

func validTemperature(t float64) bool {
	return t > 0 && !math.IsInf(t, 0)
}

// Sweep computes one Record per temperature, in the order given, and passes
// each to emit as soon as it is ready. It stops at the first error.
func Sweep(cfg SweepConfig, emit func(Record) error) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	leaves, _ := LeafCount(len(cfg.Steps), cfg.WalkLength)
	logrus.Debugf("Sweep: %d temperatures, %d walks per temperature, strategy=%s",
		len(cfg.Temperatures), leaves, strategyOrDefault(cfg.Strategy))

	if cfg.Strategy == StrategyPerTemperature {
		return sweepPerTemperature(cfg, emit)
	}
	return sweepSpectrum(cfg, emit)
}

// RunSweep collects every record of the sweep.
func RunSweep(cfg SweepConfig) ([]Record, error) {
	records := make([]Record, 0, len(cfg.Temperatures))
	err := Sweep(cfg, func(r Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func sweepPerTemperature(cfg SweepConfig, emit func(Record) error) error {
	acc := &Accumulator{}
	for _, t := range cfg.Temperatures {
		acc.Temperature = t
		acc.Reset()
		err := Enumerate(cfg.Start, cfg.WalkLength, cfg.Steps, func(p Path) {
			acc.Observe(cfg.Energy.Energy(p), p.RadiusSqr())
		})
		if err != nil {
			return err
		}
		rec, err := acc.Record()
		if err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	return nil
}

func sweepSpectrum(cfg SweepConfig, emit func(Record) error) error {
	spectrum, err := BuildSpectrum(cfg.Start, cfg.WalkLength, cfg.Steps, cfg.Energy)
	if err != nil {
		return err
	}
	logrus.Debugf("Sweep: spectrum has %d distinct states over %d walks, ground state E=%v",
		len(spectrum.states), spectrum.Leaves(), spectrum.MinEnergy())

	for _, t := range cfg.Temperatures {
		rec, err := spectrum.Evaluate(t)
		if err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	return nil
}

func strategyOrDefault(s SweepStrategy) SweepStrategy {
	if s == "" {
		return StrategySpectrum
	}
	return s
}

// MaxTemperatures bounds the length of a generated temperature sweep.
const MaxTemperatures = 1 << 20

// TemperatureRange returns start, start+step, ... up to and including stop
// (within rounding). Values are computed as start + i*step so long sweeps do
// not drift.
func TemperatureRange(start, stop, step float64) ([]float64, error) {
	if !validTemperature(start) {
		return nil, fmt.Errorf("range start %v: %w", start, ErrInvalidTemperature)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("temperature step must be finite and > 0, got %v", step)
	}
	if math.IsNaN(stop) || math.IsInf(stop, 0) || stop < start {
		return nil, fmt.Errorf("range stop %v is before start %v: %w", stop, start, ErrNoTemperatures)
	}
	count := math.Floor((stop-start)/step+1e-9) + 1
	if count > MaxTemperatures {
		return nil, fmt.Errorf("range [%v, %v] step %v gives %.0f temperatures, limit %d: %w",
			start, stop, step, count, MaxTemperatures, ErrTooManyTemperatures)
	}
	temps := make([]float64, int(count))
	for i := range temps {
		temps[i] = start + float64(i)*step
	}
	return temps, nil
}
