package runner_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		Name     string
		Command  runner.Command
		Expected string
	}{
		{"no args", runner.Command{Program: "ls"}, "ls"},
		{
			"plain args",
			runner.Command{Program: "tar", Args: []string{"-xf", "/a/b.tar"}},
			"tar -xf /a/b.tar",
		},
		{
			"quoted pipe",
			runner.Command{
				Program: "tar",
				Args:    []string{"-xf", "x", "-I", "zstd --long=30"},
			},
			"tar -xf x -I 'zstd --long=30'",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Command.String())
		})
	}
}

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	skipOnWindows(t)
	r := runner.NewExecRunner(nil)
	result := r.Run(context.Background(), runner.Command{Program: "sh", Args: []string{"-c", "echo hi"}})
	require.True(t, result.OK)
	assert.NoError(t, result.Err)
	assert.Equal(t, "hi\n", result.Stdout)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	skipOnWindows(t)
	r := runner.NewExecRunner(nil)
	result := r.Run(
		context.Background(),
		runner.Command{Program: "sh", Args: []string{"-c", "echo broken >&2; exit 3"}})
	assert.False(t, result.OK)
	assert.Equal(t, "broken\n", result.Stderr)
	assert.ErrorIs(t, result.Err, ppcutils.ErrCommandFailed)
}

func TestExecRunnerMissingProgram(t *testing.T) {
	r := runner.NewExecRunner(nil)
	result := r.Run(
		context.Background(), runner.Command{Program: "/nonexistent/ppcutils-no-such-program"})
	assert.False(t, result.OK)
	assert.ErrorIs(t, result.Err, ppcutils.ErrCommandFailed)
}

func TestExecRunnerUsesDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	r := runner.NewExecRunner(nil)
	result := r.Run(context.Background(), runner.Command{Program: "pwd", Dir: dir})
	require.True(t, result.OK)
	assert.Contains(t, result.Stdout, filepath.Base(dir))
}

func TestExecRunnerTimeout(t *testing.T) {
	skipOnWindows(t)
	r := runner.NewExecRunner(nil)
	r.Timeout = 50 * time.Millisecond
	result := r.Run(context.Background(), runner.Command{Program: "sleep", Args: []string{"5"}})
	assert.False(t, result.OK)
	assert.Error(t, result.Err)
}
