package bench_test

import (
	"testing"
	"time"

	"github.com/acubelab/ppcutils/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, fields ...string) bench.Record {
	record, err := bench.RecordFromFields(fields)
	require.NoError(t, err)
	return record
}

func TestCombine(t *testing.T) {
	base := mustRecord(t, "1.0", "0:00:01", "10", "10", "10", "10", "100", "100", "0.5", "2.0")
	extra := mustRecord(t, "2.0", "0:00:02", "20", "5", "15", "8", "50", "50", "0.9", "3.0")

	combined := bench.Combine(base, extra)
	assert.Equal(
		t,
		[]string{"3.0", "0:00:03", "20", "10", "15", "10", "150", "150", "0.9", "5.0"},
		combined.Fields())

	// Arguments are left untouched.
	assert.Equal(t, "1.0", base.Seconds)
	assert.Equal(t, "2.0", extra.Seconds)
}

func TestCombine__NA(t *testing.T) {
	extra := mustRecord(t, "2.0", "0:00:02", "20", "5", "15", "8", "50", "50", "0.9", "3.0")

	assert.Equal(t, extra, bench.Combine(bench.NARecord(), extra))
	assert.Equal(t, extra, bench.Combine(extra, bench.NARecord()))
	assert.Equal(t, bench.NARecord(), bench.Combine(bench.NARecord(), bench.NARecord()))
}

func TestCombine__MixedIntegerAndFloat(t *testing.T) {
	base := mustRecord(t, "1", "0:00:01", "1", "1", "1", "1", "0.25", "7", "1", "1")
	extra := mustRecord(t, "2", "0:00:01.5", "1", "1", "1", "1", "1", "0.00", "1", "1")

	combined := bench.Combine(base, extra)
	assert.Equal(t, "3", combined.Seconds)
	assert.Equal(t, "0:00:02.500000", combined.HMS)
	assert.Equal(t, "1.25", combined.IOIn)
	assert.Equal(t, "7.0", combined.IOOut)
}

func TestParseHMS(t *testing.T) {
	tests := []struct {
		Input    string
		Expected time.Duration
	}{
		{"0:00:00", 0},
		{"0:00:01", time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"0:00:01.250000", 1250 * time.Millisecond},
		{"1 day, 0:00:05", 24*time.Hour + 5*time.Second},
		{"3 days, 2:00:00", 74 * time.Hour},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			d, err := bench.ParseHMS(test.Input)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, d)
			assert.Equal(t, test.Input, bench.FormatHMS(d))
		})
	}
}

func TestParseHMS__Invalid(t *testing.T) {
	for _, input := range []string{"NA", "", "12", "1:2", "a:00:00", "0:00:xx", "tomorrow, 0:00:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := bench.ParseHMS(input)
			assert.Error(t, err)
		})
	}
}
