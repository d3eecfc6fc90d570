package trace

// TraceLevel controls the verbosity of walk tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSummary records energy and radius per walk, without the path.
	TraceLevelSummary TraceLevel = "summary"
	// TraceLevelPaths additionally records each rendered path.
	TraceLevelPaths TraceLevel = "paths"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelSummary: true,
	TraceLevelPaths:   true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	MaxLeafs int // records kept in memory; 0 = unlimited. The summary still sees every walk.
}

// Enabled reports whether any recording happens at this level.
func (c TraceConfig) Enabled() bool {
	return c.Level != TraceLevelNone && c.Level != ""
}

// WantsPaths reports whether rendered paths should be recorded.
func (c TraceConfig) WantsPaths() bool {
	return c.Level == TraceLevelPaths
}

// SimulationTrace collects walk records during an enumeration.
type SimulationTrace struct {
	Config  TraceConfig
	Leaves  []LeafRecord
	Summary *TraceSummary // updated on every RecordLeaf, including dropped records
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Leaves:  make([]LeafRecord, 0),
		Summary: NewTraceSummary(),
	}
}

// RecordLeaf folds a walk into the summary and appends it to Leaves unless
// MaxLeafs records are already held. A disabled trace ignores the call.
func (st *SimulationTrace) RecordLeaf(record LeafRecord) {
	if !st.Config.Enabled() {
		return
	}
	if !st.Config.WantsPaths() {
		record.Path = ""
	}
	st.Summary.Observe(record)
	if st.Config.MaxLeafs > 0 && len(st.Leaves) >= st.Config.MaxLeafs {
		return
	}
	st.Leaves = append(st.Leaves, record)
}
