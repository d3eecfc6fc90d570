package sim

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecord_FieldOrderAndDecimals(t *testing.T) {
	r := Record{
		Temperature:       1,
		MeanEnergy:        99, // not written
		MeanSquaredEnergy: 2.5,
		MeanEnergySquared: 3,
		MeanRadiusSquared: 0.25,
	}
	assert.Equal(t, "1.0,2.5,3.0,0.25", FormatRecord(r))
}

func TestFormatDecimal_NoExponent(t *testing.T) {
	assert.Equal(t, "0.00001", formatDecimal(1e-5))
	assert.Equal(t, "12345678901.0", formatDecimal(12345678901))
	assert.Equal(t, "-2.0", formatDecimal(-2))
	assert.Equal(t, "NaN", formatDecimal(math.NaN()))
	assert.Equal(t, "+Inf", formatDecimal(math.Inf(1)))
}

func TestRecordWriter_OneLinePerRecordNoHeader(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf)
	for _, r := range []Record{
		{Temperature: 1, MeanSquaredEnergy: 4, MeanEnergySquared: 5, MeanRadiusSquared: 6},
		{Temperature: 2.5, MeanSquaredEnergy: 0.5, MeanEnergySquared: 1, MeanRadiusSquared: 2},
	} {
		require.NoError(t, rw.Write(r))
	}
	require.NoError(t, rw.Flush())
	assert.Equal(t, "1.0,4.0,5.0,6.0\n2.5,0.5,1.0,2.0\n", buf.String())
}

func TestRecordWriter_CountsAndBuffers(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRecordWriter(&buf)
	require.NoError(t, rw.Write(Record{Temperature: 3}))
	assert.Equal(t, 1, rw.Written())
	assert.Empty(t, buf.String(), "nothing reaches the sink before Flush")
	require.NoError(t, rw.Flush())
	assert.Equal(t, "3.0,0.0,0.0,0.0\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRecordWriter_SinkErrorOnFlush(t *testing.T) {
	rw := NewRecordWriter(failingWriter{})
	require.NoError(t, rw.Write(Record{Temperature: 1}))
	assert.EqualError(t, rw.Flush(), "disk full")
}
