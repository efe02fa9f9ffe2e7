package testing

import (
	"context"
	"errors"

	"github.com/acubelab/ppcutils/runner"
)

// RecordingRunner is a [runner.Runner] that executes nothing. It records every
// command it receives, in order, and fails those for which Fail returns true.
type RecordingRunner struct {
	Commands []runner.Command
	Fail     func(cmd runner.Command) bool
	// active counts commands currently inside Run; MaxActive is its peak.
	active    int
	MaxActive int
}

func (r *RecordingRunner) Run(_ context.Context, cmd runner.Command) runner.Result {
	r.active++
	if r.active > r.MaxActive {
		r.MaxActive = r.active
	}
	defer func() { r.active-- }()

	r.Commands = append(r.Commands, cmd)
	if r.Fail != nil && r.Fail(cmd) {
		return runner.Result{OK: false, Stderr: "simulated failure", Err: errors.New("exit status 1")}
	}
	return runner.Result{OK: true}
}
