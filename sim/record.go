package sim

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// Record is the set of thermal averages reported for one temperature.
type Record struct {
	Temperature       float64
	MeanEnergy        float64 // <E>; logged, not written
	MeanSquaredEnergy float64 // <E>²
	MeanEnergySquared float64 // <E²>
	MeanRadiusSquared float64 // <R²>
}

// HeatCapacity returns the energy variance over T², i.e. (<E²> - <E>²)/T².
func (r Record) HeatCapacity() float64 {
	return (r.MeanEnergySquared - r.MeanSquaredEnergy) / (r.Temperature * r.Temperature)
}

// FormatRecord renders r as one output line without the trailing newline:
// T,<E>²,<E²>,<R²>
func FormatRecord(r Record) string {
	fields := []string{
		formatDecimal(r.Temperature),
		formatDecimal(r.MeanSquaredEnergy),
		formatDecimal(r.MeanEnergySquared),
		formatDecimal(r.MeanRadiusSquared),
	}
	return strings.Join(fields, ",")
}

// formatDecimal prints v in plain decimal notation with at least one
// fractional digit, so integral temperatures come out as "1.0".
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// RecordWriter writes one comma-separated line per Record. No header is written.
type RecordWriter struct {
	w       *bufio.Writer
	written int
}

// NewRecordWriter buffers writes to w. Call Flush when done.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{w: bufio.NewWriter(w)}
}

// Write appends r as one line.
func (rw *RecordWriter) Write(r Record) error {
	if _, err := rw.w.WriteString(FormatRecord(r)); err != nil {
		return err
	}
	if err := rw.w.WriteByte('\n'); err != nil {
		return err
	}
	rw.written++
	return nil
}

// Written returns the number of records written so far.
func (rw *RecordWriter) Written() int {
	return rw.written
}

// Flush writes any buffered data to the underlying writer.
func (rw *RecordWriter) Flush() error {
	return rw.w.Flush()
}
