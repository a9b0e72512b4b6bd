// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
)

// MockRunner is a test double for [services.Runner] that replays scripted
// results, one per invocation, and records the commands it saw.
type MockRunner struct {
	Results []RunResult
	Calls   []RunCall
}

// RunResult is one scripted process outcome.
type RunResult struct {
	Result *services.ProcessResult
	Err    error
}

// RunCall records one invocation of Run.
type RunCall struct {
	Name string
	Args []string
}

func (m *MockRunner) Run(ctx context.Context, name string, args []string) (*services.ProcessResult, error) {
	m.Calls = append(m.Calls, RunCall{Name: name, Args: append([]string(nil), args...)})
	if len(m.Calls) > len(m.Results) {
		return nil, errors.New("mock runner: unscripted call")
	}
	r := m.Results[len(m.Calls)-1]
	return r.Result, r.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
