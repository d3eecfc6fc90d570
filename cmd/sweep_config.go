package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TemperatureRangeConfig is an inclusive arithmetic temperature sweep.
type TemperatureRangeConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// SweepFile represents the sweep YAML structure (see defaults.yaml).
// Nil pointer fields and empty strings mean "not set in YAML" and leave the
// flag value in place.
type SweepFile struct {
	WalkLength       *int                    `yaml:"walk_length"`
	Eps0             *float64                `yaml:"eps0"`
	Eps1             *float64                `yaml:"eps1"`
	Temperatures     []float64               `yaml:"temperatures"`
	TemperatureRange *TemperatureRangeConfig `yaml:"temperature_range"`
	Output           string                  `yaml:"output"`
	Strategy         string                  `yaml:"strategy"`
	Consumption      string                  `yaml:"consumption"`
}

// loadSweepFile parses a sweep YAML file with strict field checking, so a
// misspelled key is an error rather than a silently ignored setting.
func loadSweepFile(path string) (*SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	var file SweepFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing sweep config %s: %w", path, err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("sweep config %s: %w", path, err)
	}
	return &file, nil
}

// Validate checks for settings that contradict each other.
func (f *SweepFile) Validate() error {
	if len(f.Temperatures) > 0 && f.TemperatureRange != nil {
		return fmt.Errorf("temperatures and temperature_range are mutually exclusive")
	}
	return nil
}

// apply overlays the file onto opts. A value set in the file wins unless the
// matching flag was set explicitly on the command line.
func (f *SweepFile) apply(opts runOptions, changed func(flag string) bool) runOptions {
	if f.WalkLength != nil && !changed("walk-length") {
		opts.WalkLength = *f.WalkLength
	}
	if f.Eps0 != nil && !changed("eps0") {
		opts.Eps0 = *f.Eps0
	}
	if f.Eps1 != nil && !changed("eps1") {
		opts.Eps1 = *f.Eps1
	}
	rangeFlagsSet := changed("t-start") || changed("t-stop") || changed("t-step")
	if !rangeFlagsSet {
		if len(f.Temperatures) > 0 {
			opts.Temperatures = append([]float64(nil), f.Temperatures...)
		} else if f.TemperatureRange != nil {
			opts.TStart = f.TemperatureRange.Start
			opts.TStop = f.TemperatureRange.Stop
			opts.TStep = f.TemperatureRange.Step
		}
	}
	if f.Output != "" && !changed("output") {
		opts.Output = f.Output
	}
	if f.Strategy != "" && !changed("strategy") {
		opts.Strategy = f.Strategy
	}
	if f.Consumption != "" && !changed("consumption") {
		opts.Consumption = f.Consumption
	}
	return opts
}
