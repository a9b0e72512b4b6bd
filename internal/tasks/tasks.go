// package tasks implements background maintenance operations for the
// conversion service.
//
// The core abstraction is Janitor, which periodically sweeps the temp
// directory for orphaned conversion artifacts. Orphans happen when the
// process dies between producing a file and its scheduled deletion, or when
// the downloader leaves partial files behind after a kill.
package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// sweepPrefix matches the conversion core's temp file naming.
const sweepPrefix = "audio_"

// SweepResult reports one pass over the temp directory.
type SweepResult struct {
	Scanned    int   // files inspected
	Removed    int   // stale files deleted
	FreedBytes int64 // total size of deleted files
	Failed     int   // deletions that errored
}

// Janitor periodically removes conversion artifacts older than the TTL from
// the temp directory. In-flight conversions are protected by the TTL: a file
// younger than the TTL is never touched, and the TTL is far larger than the
// overall conversion deadline.
type Janitor struct {
	dir      string
	interval time.Duration
	ttl      time.Duration
	logger   *log.Logger
}

// NewJanitor creates a Janitor for the given temp directory.
func NewJanitor(dir string, interval, ttl time.Duration, logger *log.Logger) *Janitor {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Janitor{dir: dir, interval: interval, ttl: ttl, logger: logger}
}

// Run sweeps immediately, then on every interval tick until ctx is
// cancelled. Intended to be started in its own goroutine alongside the HTTP
// server.
func (j *Janitor) Run(ctx context.Context) {
	j.logger.Info("janitor started", "dir", j.dir, "interval", j.interval, "ttl", j.ttl)

	j.sweepAndLog()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor stopped")
			return
		case <-ticker.C:
			j.sweepAndLog()
		}
	}
}

func (j *Janitor) sweepAndLog() {
	result, err := j.Sweep()
	if err != nil {
		j.logger.Warn("sweep failed", "error", err)
		return
	}
	if result.Removed > 0 || result.Failed > 0 {
		j.logger.Info("sweep complete",
			"scanned", result.Scanned,
			"removed", result.Removed,
			"freed_bytes", result.FreedBytes,
			"failed", result.Failed,
		)
	}
}

// Sweep performs a single pass, removing files with the conversion naming
// prefix whose modification time is older than the TTL. Files that do not
// carry the prefix are left alone regardless of age.
func (j *Janitor) Sweep() (*SweepResult, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &SweepResult{}, nil
		}
		return nil, err
	}

	cutoff := time.Now().Add(-j.ttl)
	result := &SweepResult{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), sweepPrefix) {
			continue
		}
		result.Scanned++

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				result.Failed++
				j.logger.Warn("failed to remove stale file", "path", path, "error", err)
			}
			continue
		}

		result.Removed++
		result.FreedBytes += info.Size()
		j.logger.Debug("removed stale file", "path", path, "age", time.Since(info.ModTime()).Round(time.Second))
	}

	return result, nil
}
