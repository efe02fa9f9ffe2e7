package archive_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/acubelab/ppcutils/archive"
	"github.com/acubelab/ppcutils/runner"
	dt "github.com/acubelab/ppcutils/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTarProgram(t *testing.T) {
	if runtime.GOOS == "darwin" {
		assert.Equal(t, "gtar", archive.DefaultTarProgram())
	} else {
		assert.Equal(t, "tar", archive.DefaultTarProgram())
	}
}

func TestCommandExtractor__Command(t *testing.T) {
	extractor := archive.CommandExtractor{Compressor: archive.DatasetCompressor}
	cmd := extractor.Command("/data/000000001ds.tar", "/out")
	assert.Equal(
		t,
		runner.Command{
			Program: archive.DefaultTarProgram(),
			Args:    []string{"-xf", "/data/000000001ds.tar", "-I", archive.DatasetCompressor},
			Dir:     "/out",
		},
		cmd)
	assert.Equal(
		t,
		archive.DefaultTarProgram()+" -xf /data/000000001ds.tar -I 'zstd --long=30 --adapt -M1024MB'",
		cmd.String())
}

func TestCommandExtractor__Failure(t *testing.T) {
	fake := &dt.RecordingRunner{Fail: func(runner.Command) bool { return true }}
	extractor := archive.CommandExtractor{Runner: fake, Tar: "gtar", Compressor: "zstd"}

	err := extractor.Extract(context.Background(), "/data/a.tar", "/out")
	require.Error(t, err)
	require.Len(t, fake.Commands, 1)
	assert.Equal(t, "gtar", fake.Commands[0].Program)
}
