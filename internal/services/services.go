// package services wraps the external command-line tools the conversion
// core shells out to.
package services

import (
	"context"
	"fmt"
	"strings"
)

// ProcessResult captures the observable output of one external process
// invocation.
type ProcessResult struct {
	Stdout string
	Stderr string
}

// Runner executes an external command and waits for it to exit.
//
// The returned ProcessResult is non-nil whenever the process started,
// including on nonzero exit, so callers can inspect captured output.
// Cancelling ctx must terminate the child process.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (*ProcessResult, error)
}

// Prober fetches a resource's metadata without downloading media.
type Prober interface {
	Probe(ctx context.Context, url string) (title, duration string, err error)
}

// Downloader runs one full extraction attempt with a prepared argument list.
type Downloader interface {
	Download(ctx context.Context, args []string) (*ProcessResult, error)
}

// ProcessError wraps a failed external process invocation, preserving the
// captured stderr for classification. The raw text never reaches API
// responses; it is logged and matched against the classification table only.
type ProcessError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, msg)
}

func (e *ProcessError) Unwrap() error { return e.Err }
