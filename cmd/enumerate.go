package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/lattice-sim/sim"
	"github.com/inference-sim/lattice-sim/sim/trace"
)

var (
	enumWalkLength  int
	enumEps0        float64
	enumEps1        float64
	enumConsumption string
	enumTraceLevel  string
	enumTraceOutput string
	enumMaxLeafs    int
)

// enumerateCmd walks the ensemble once and reports its unweighted statistics
var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "Enumerate every walk once and summarize the ensemble",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(enumTraceLevel) {
			logrus.Fatalf("Invalid trace level: %s", enumTraceLevel)
		}
		tc := trace.TraceConfig{Level: trace.TraceLevel(enumTraceLevel), MaxLeafs: enumMaxLeafs}
		if !tc.Enabled() {
			tc.Level = trace.TraceLevelSummary
		}

		cfg, err := enumerateConfig()
		if err != nil {
			logrus.Fatalf("Invalid enumeration: %v", err)
		}

		out := ""
		if tc.WantsPaths() {
			out = enumTraceOutput
		}
		summary, err := traceWalksToFile(cfg, tc, out)
		if err != nil {
			logrus.Fatalf("Enumeration failed: %v", err)
		}
		logSummary(summary)
	},
}

// enumerateConfig builds the walk ensemble from the enumerate flags. The
// temperature sweep is left at the reference run; enumerate never evaluates it.
func enumerateConfig() (sim.SweepConfig, error) {
	mode, err := sim.ParseConsumptionMode(enumConsumption)
	if err != nil {
		return sim.SweepConfig{}, err
	}
	cfg := sim.NewReferenceSweepConfig()
	cfg.WalkLength = enumWalkLength
	cfg.Energy = sim.EnergyModel{Eps0: enumEps0, Eps1: enumEps1, Consumption: mode}
	if err := cfg.Validate(); err != nil {
		return sim.SweepConfig{}, err
	}
	return cfg, nil
}

// traceWalksToFile enumerates cfg once into a trace, dumping rendered paths
// to path when it is non-empty.
func traceWalksToFile(cfg sim.SweepConfig, tc trace.TraceConfig, path string) (summary *trace.TraceSummary, err error) {
	if path == "" || !tc.WantsPaths() {
		st, err := traceWalks(cfg, tc, nil)
		if err != nil {
			return nil, err
		}
		return st.Summary, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating path dump %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing path dump %s: %w", path, closeErr)
		}
	}()

	st, err := traceWalks(cfg, tc, file)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Successfully wrote %d paths to '%s'", st.Summary.TotalLeaves, path)
	return st.Summary, nil
}

// traceWalks records every walk of cfg into a SimulationTrace. With
// TraceLevelPaths and a non-nil dump, each rendered path is also written to
// dump on its own line, in enumeration order.
func traceWalks(cfg sim.SweepConfig, tc trace.TraceConfig, dump io.Writer) (*trace.SimulationTrace, error) {
	st := trace.NewSimulationTrace(tc)

	var bw *bufio.Writer
	if dump != nil && tc.WantsPaths() {
		bw = bufio.NewWriter(dump)
	}

	var index uint64
	var writeErr error
	err := sim.Enumerate(cfg.Start, cfg.WalkLength, cfg.Steps, func(p sim.Path) {
		rec := trace.LeafRecord{
			Index:            index,
			Energy:           cfg.Energy.Energy(p),
			RadiusSqr:        p.RadiusSqr(),
			SelfIntersecting: p.SelfIntersecting(),
		}
		if tc.WantsPaths() {
			rec.Path = p.String()
		}
		st.RecordLeaf(rec)
		if bw != nil && writeErr == nil {
			if _, err := bw.WriteString(rec.Path); err != nil {
				writeErr = err
			} else {
				writeErr = bw.WriteByte('\n')
			}
		}
		index++
	})
	if err != nil {
		return nil, err
	}
	if writeErr != nil {
		return nil, fmt.Errorf("writing path dump: %w", writeErr)
	}
	if bw != nil {
		if err := bw.Flush(); err != nil {
			return nil, fmt.Errorf("writing path dump: %w", err)
		}
	}
	return st, nil
}

func logSummary(s *trace.TraceSummary) {
	logrus.Infof("Walks: %d (%d self-intersecting, %d without axis contact)", s.TotalLeaves, s.SelfIntersecting, s.AxisFree)
	logrus.Infof("Energy levels: %v", s.DistinctEnergies())
	logrus.Infof("Unweighted <E>=%.9f (T -> infinity limit), max E=%v", s.MeanEnergy, s.MaxEnergy)
	logrus.Infof("Unweighted <R^2>=%.9f, max R^2=%v", s.MeanRadiusSqr, s.MaxRadiusSqr)
}

func init() {
	enumerateCmd.Flags().IntVar(&enumWalkLength, "walk-length", sim.ReferenceWalkLength, "Number of steps per walk")
	enumerateCmd.Flags().Float64Var(&enumEps0, "eps0", sim.ReferenceEps0, "Energy per bonded contact (two adjacent points on the axis)")
	enumerateCmd.Flags().Float64Var(&enumEps1, "eps1", sim.ReferenceEps1, "Energy per lone contact (axis point outside any bonded pair)")
	enumerateCmd.Flags().StringVar(&enumConsumption, "consumption", "position", "Bonded-contact consumption: position or value")
	enumerateCmd.Flags().StringVar(&enumTraceLevel, "trace", string(trace.TraceLevelSummary), "Walk trace level (summary, paths)")
	enumerateCmd.Flags().StringVar(&enumTraceOutput, "trace-output", "paths.txt", "Path dump file used with --trace paths")
	enumerateCmd.Flags().IntVar(&enumMaxLeafs, "max-trace-records", 1000, "Walk records kept in memory (0 = all); the summary covers every walk")
}
