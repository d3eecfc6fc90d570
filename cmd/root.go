package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/lattice-sim/sim"
	"github.com/inference-sim/lattice-sim/sim/trace"
)

var (
	// CLI flags for the walk ensemble
	walkLength  int     // Number of steps per walk
	eps0        float64 // Energy per bonded axis contact
	eps1        float64 // Energy per lone axis contact
	consumption string  // How bonded contacts exclude lone contacts ("position" or "value")

	// CLI flags for the temperature sweep
	tStart   float64 // First temperature
	tStop    float64 // Last temperature (inclusive)
	tStep    float64 // Temperature increment
	strategy string  // Sweep strategy ("spectrum" or "per-temperature")

	// CLI flags for I/O
	outputPath  string // Record output file
	configPath  string // Optional sweep YAML
	traceLevel  string // Walk trace level
	traceOutput string // Path dump file (trace level "paths")
	logLevel    string // Log verbosity level
)

// runOptions is the resolved set of run settings, after flags and YAML are merged.
type runOptions struct {
	WalkLength   int
	Eps0         float64
	Eps1         float64
	Consumption  string
	TStart       float64
	TStop        float64
	TStep        float64
	Temperatures []float64 // explicit list; overrides the range when non-empty
	Strategy     string
	Output       string
}

func flagRunOptions() runOptions {
	return runOptions{
		WalkLength:  walkLength,
		Eps0:        eps0,
		Eps1:        eps1,
		Consumption: consumption,
		TStart:      tStart,
		TStop:       tStop,
		TStep:       tStep,
		Strategy:    strategy,
		Output:      outputPath,
	}
}

// sweepConfig builds and validates the engine configuration. The step set is
// fixed at sim.DefaultSteps.
func (o runOptions) sweepConfig() (sim.SweepConfig, error) {
	mode, err := sim.ParseConsumptionMode(o.Consumption)
	if err != nil {
		return sim.SweepConfig{}, err
	}
	temps := o.Temperatures
	if len(temps) == 0 {
		temps, err = sim.TemperatureRange(o.TStart, o.TStop, o.TStep)
		if err != nil {
			return sim.SweepConfig{}, err
		}
	}
	cfg := sim.SweepConfig{
		Start:        sim.Origin,
		WalkLength:   o.WalkLength,
		Steps:        sim.DefaultSteps,
		Energy:       sim.EnergyModel{Eps0: o.Eps0, Eps1: o.Eps1, Consumption: mode},
		Temperatures: temps,
		Strategy:     sim.SweepStrategy(o.Strategy),
	}
	if err := cfg.Validate(); err != nil {
		return sim.SweepConfig{}, err
	}
	return cfg, nil
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lattice-sim",
	Short: "Exhaustive lattice-walk sampler for substrate adsorption thermodynamics",
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the temperature sweep using parameters from CLI flags and the optional config file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the temperature sweep and write one record per temperature",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		opts := flagRunOptions()
		if configPath != "" {
			file, err := loadSweepFile(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			opts = file.apply(opts, cmd.Flags().Changed)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		cfg, err := opts.sweepConfig()
		if err != nil {
			logrus.Fatalf("Invalid sweep configuration: %v", err)
		}
		leaves, _ := sim.LeafCount(len(cfg.Steps), cfg.WalkLength)

		logrus.Infof("Starting sweep: walk length %d, %d walks, eps0=%v, eps1=%v, consumption=%s, %d temperatures in [%v, %v], strategy=%s",
			cfg.WalkLength, leaves, cfg.Energy.Eps0, cfg.Energy.Eps1, cfg.Energy.Consumption,
			len(cfg.Temperatures), cfg.Temperatures[0], cfg.Temperatures[len(cfg.Temperatures)-1], opts.Strategy)

		startTime := time.Now()

		written, err := writeSweepFile(cfg, opts.Output)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		if tc := (trace.TraceConfig{Level: trace.TraceLevel(traceLevel), MaxLeafs: 1000}); tc.Enabled() {
			summary, err := traceWalksToFile(cfg, tc, traceOutput)
			if err != nil {
				logrus.Fatalf("Walk trace failed: %v", err)
			}
			logSummary(summary)
		}

		logrus.Infof("Sweep complete: %d records written to %s in %v", written, opts.Output, time.Since(startTime))
	},
}

// writeSweepFile runs the sweep into a freshly truncated file. The file is
// closed on every path; a close error is reported if nothing failed earlier.
func writeSweepFile(cfg sim.SweepConfig, path string) (written int, err error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output %s: %w", path, closeErr)
		}
	}()

	written, err = writeSweep(cfg, file)
	if err != nil {
		return written, err
	}
	logrus.Debugf("Successfully wrote %d records to '%s'", written, path)
	return written, nil
}

// writeSweep streams one record line per temperature to w and logs progress.
// Buffered records are flushed even when the sweep fails part way.
func writeSweep(cfg sim.SweepConfig, w io.Writer) (int, error) {
	rw := sim.NewRecordWriter(w)
	err := sim.Sweep(cfg, func(r sim.Record) error {
		logrus.Infof("T=%-6g <E>=%.9f <E^2>=%.9f <R^2>=%.9f", r.Temperature, r.MeanEnergy, r.MeanEnergySquared, r.MeanRadiusSquared)
		return rw.Write(r)
	})
	if flushErr := rw.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return rw.Written(), err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Walk ensemble
	runCmd.Flags().IntVar(&walkLength, "walk-length", sim.ReferenceWalkLength, "Number of steps per walk")
	runCmd.Flags().Float64Var(&eps0, "eps0", sim.ReferenceEps0, "Energy per bonded contact (two adjacent points on the axis)")
	runCmd.Flags().Float64Var(&eps1, "eps1", sim.ReferenceEps1, "Energy per lone contact (axis point outside any bonded pair)")
	runCmd.Flags().StringVar(&consumption, "consumption", "position", "Bonded-contact consumption: position (per path index) or value (per lattice site)")

	// Temperature sweep
	runCmd.Flags().Float64Var(&tStart, "t-start", 1, "First temperature (must be > 0)")
	runCmd.Flags().Float64Var(&tStop, "t-stop", 50, "Last temperature, inclusive")
	runCmd.Flags().Float64Var(&tStep, "t-step", 1, "Temperature increment")
	runCmd.Flags().StringVar(&strategy, "strategy", string(sim.StrategySpectrum), "Sweep strategy: spectrum (enumerate once) or per-temperature")

	// I/O
	runCmd.Flags().StringVar(&outputPath, "output", "molecules.txt", "Output file, one comma-separated line per temperature")
	runCmd.Flags().StringVar(&configPath, "config", "", "Sweep YAML file; explicitly set flags take precedence")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Walk trace level (none, summary, paths)")
	runCmd.Flags().StringVar(&traceOutput, "trace-output", "paths.txt", "Path dump file used with --trace paths")

	// Attach `run` and `enumerate` as subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(enumerateCmd)
}
