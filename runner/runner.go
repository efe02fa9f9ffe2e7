// Package runner executes external programs on behalf of the harness commands.
//
// A failing command never produces a panic or an aborted batch: the outcome is
// reported as a [Result] and it is up to the caller to tally it.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/logging"
	"go.uber.org/zap"
)

// Command is a pre-tokenized command line. Arguments are passed to the program
// as-is; no shell is involved.
type Command struct {
	Program string
	Args    []string
	// Dir is the working directory of the process. Empty means the current one.
	Dir string
}

// String renders the command for display. Words containing whitespace are
// wrapped in single quotes. The result is not meant to be fed to a shell.
func (c Command) String() string {
	words := append([]string{c.Program}, c.Args...)
	quoted := make([]string, len(words))
	for i, word := range words {
		if len(strings.Fields(word)) > 1 {
			quoted[i] = "'" + word + "'"
		} else {
			quoted[i] = word
		}
	}
	return strings.Join(quoted, " ")
}

// Result is the outcome of running one [Command].
type Result struct {
	// OK is true if and only if the process was started and exited with status 0.
	OK     bool
	Stdout string
	Stderr string
	// Err describes why OK is false. It is nil on success.
	Err error
}

// Runner is implemented by anything able to execute a [Command].
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Timeout bounds each command. Zero waits forever, so a hung process hangs
	// the caller.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewExecRunner creates an [ExecRunner] with no timeout.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	return &ExecRunner{Logger: logging.OrNop(logger)}
}

// Run executes the command and waits for it to finish. Standard error is
// captured and logged if the command fails.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) Result {
	logger := logging.OrNop(r.Logger)
	logger.Debug("Executing", zap.Stringer("command", cmd))

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	process := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	process.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	process.Stdout = &stdout
	process.Stderr = &stderr

	err := process.Run()
	result := Result{
		OK:     err == nil,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Error(
			"Error executing command line",
			zap.Stringer("command", cmd),
			zap.Int("status", exitErr.ExitCode()),
			zap.String("stderr", result.Stderr))
	} else {
		logger.Error(
			"Error executing subprocess invocation on the command line",
			zap.Stringer("command", cmd),
			zap.Error(err))
	}
	result.Err = ppcutils.ErrCommandFailed.WithMessage(cmd.String()).Wrap(err)
	return result
}
