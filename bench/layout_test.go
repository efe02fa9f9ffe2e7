package bench_test

import (
	"path/filepath"
	"testing"

	"github.com/acubelab/ppcutils/bench"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	layout := bench.Layout{Root: "/r"}
	key := bench.Key{Dataset: "C_small", Length: 100, Approach: "fm"}

	tests := []struct {
		Name     string
		Actual   string
		Expected string
	}{
		{"compression", layout.CompressionBench("C_small"), "/r/bench/C_small.csv"},
		{"query", layout.QueryBench(key), "/r/bench/C_small.100.fm.csv"},
		{"decompression", layout.DecompressionBench("C_small"), "/r/bench/C_small.dec.csv"},
		{"indicator", layout.Indicator(key), "/r/indicators/C_small.100.fm"},
		{"source", layout.Source("C_small"), "/r/source/C_small"},
		{"compressed", layout.Compressed("C_small"), "/r/data/C_small"},
		{"queries", layout.Queries("C_small", 100), "/r/queries/C_small.100"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(test.Expected), test.Actual)
		})
	}
}
