package services

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// ExecRunner is the production [Runner] built on os/exec.
//
// On context cancellation the child receives an interrupt first; if it is
// still alive after KillGrace it is killed.
type ExecRunner struct {
	KillGrace time.Duration
}

// NewExecRunner creates an ExecRunner with the given kill grace period.
func NewExecRunner(killGrace time.Duration) *ExecRunner {
	if killGrace <= 0 {
		killGrace = 3 * time.Second
	}
	return &ExecRunner{KillGrace: killGrace}
}

// Run executes the command and waits for it to exit, capturing stdout and
// stderr. A nonzero exit is reported as a [ProcessError] wrapping the
// underlying exec error.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (*ProcessResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.KillGrace

	err := cmd.Run()
	result := &ProcessResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return result, &ProcessError{Tool: name, Stderr: result.Stderr, Err: err}
	}
	return result, nil
}
