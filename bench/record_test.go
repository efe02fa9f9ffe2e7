package bench_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/bench"
	dt "github.com/acubelab/ppcutils/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchHeader = "s\th:m:s\tmax_rss\tmax_vms\tmax_uss\tmax_pss\tio_in\tio_out\tmean_load\tcpu_time\n"

func TestRecordHeader(t *testing.T) {
	assert.Equal(t, strings.Split(strings.TrimSpace(benchHeader), "\t"), bench.RecordHeader())
}

func TestDecodeRecord(t *testing.T) {
	input := benchHeader + "12.5\t0:00:12\t100.1\t200\t50\t60\t1.5\t2.5\t97.3\t12.1\n"
	record, err := bench.DecodeRecord(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"12.5", "0:00:12", "100.1", "200", "50", "60", "1.5", "2.5", "97.3", "12.1"},
		record.Fields())
}

func TestDecodeRecord__HeaderIgnored(t *testing.T) {
	input := "a\tb\n1\t2\t3\t4\t5\t6\t7\t8\t9\t10\n"
	record, err := bench.DecodeRecord(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "1", record.Seconds)
	assert.Equal(t, "10", record.CPUTime)
}

func TestDecodeRecord__Malformed(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
	}{
		{"empty", ""},
		{"header only", benchHeader},
		{"short row", benchHeader + "1\t2\t3\n"},
		{"long row", benchHeader + "1\t2\t3\t4\t5\t6\t7\t8\t9\t10\t11\n"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			record, err := bench.DecodeRecord(strings.NewReader(test.Input))
			assert.ErrorIs(t, err, ppcutils.ErrMalformedRecord)
			assert.True(t, record.IsNA())
		})
	}
}

func TestLoadRecord__Missing(t *testing.T) {
	record, found, err := bench.LoadRecord(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, bench.NARecord(), record)
	for _, field := range record.Fields() {
		assert.Equal(t, "NA", field)
	}
}

func TestLoadRecord__Present(t *testing.T) {
	dir := t.TempDir()
	dt.WriteFiles(t, dir, map[string]string{
		"x.csv": benchHeader + "1\t0:00:01\t2\t3\t4\t5\t6\t7\t8\t9\n",
	})
	record, found, err := bench.LoadRecord(filepath.Join(dir, "x.csv"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0:00:01", record.HMS)
}

func TestRecordFromFields(t *testing.T) {
	fields := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	record, err := bench.RecordFromFields(fields)
	require.NoError(t, err)
	assert.Equal(t, fields, record.Fields())

	_, err = bench.RecordFromFields(fields[:9])
	assert.ErrorIs(t, err, ppcutils.ErrMalformedRecord)
}
