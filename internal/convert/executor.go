package convert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// destinationRe recognizes the downloader's own "Destination" progress lines,
// the only place a human-readable output name appears on stdout.
var destinationRe = regexp.MustCompile(`(?m)^\[(?:download|ExtractAudio)\] Destination: (.+)$`)

// Executor attempts extraction with an ordered strategy list, stopping at
// the first success. Strategies run strictly sequentially; at most one child
// process is alive at a time.
type Executor struct {
	downloader     services.Downloader
	attemptTimeout time.Duration
	logger         *log.Logger
}

// NewExecutor creates an Executor. attemptTimeout bounds each individual
// strategy; the caller's context carries the overall deadline, which always
// dominates.
func NewExecutor(downloader services.Downloader, attemptTimeout time.Duration, logger *log.Logger) *Executor {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Executor{downloader: downloader, attemptTimeout: attemptTimeout, logger: logger}
}

// ExecResult reports a successful extraction attempt.
type ExecResult struct {
	Title    string // scraped from stdout, may be empty
	Strategy string // name of the winning strategy
	Attempts int    // number of strategies tried, including the winner
}

// Run executes strategies in order until one succeeds or a terminal
// condition is reached.
//
// A blocked classification does not stop the sequence — a later strategy's
// different simulated client may still get through — but once every strategy
// has failed, a request that saw blocking reports [shared.ErrBlocked] rather
// than the generic [shared.ErrExhausted].
func (e *Executor) Run(ctx context.Context, sm *stateMachine, strategies []Strategy) (*ExecResult, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies configured", shared.ErrInternal)
	}

	blocked := false

	for i, strategy := range strategies {
		if ctx.Err() != nil {
			return nil, budgetError(ctx)
		}
		if err := sm.transition(StateAttempting); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInternal, err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
		result, err := e.downloader.Download(attemptCtx, strategy.Args)
		cancel()

		if err == nil {
			title := scrapeTitle(result.Stdout)
			e.logger.Info("strategy succeeded", "strategy", strategy.Name, "attempt", i+1, "title", title)
			return &ExecResult{Title: title, Strategy: strategy.Name, Attempts: i + 1}, nil
		}

		// The overall deadline dominates the per-attempt timeout.
		if ctx.Err() != nil {
			return nil, budgetError(ctx)
		}

		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			e.logger.Warn("strategy timed out, trying next", "strategy", strategy.Name, "attempt", i+1)
			continue
		}

		var perr *services.ProcessError
		if !errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %v", shared.ErrInternal, err)
		}
		if errors.Is(perr.Err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrToolNotFound, perr.Tool)
		}

		class := Classify(perr.Stderr)
		e.logger.Warn("strategy failed", "strategy", strategy.Name, "attempt", i+1, "classification", class.String(), "stderr", truncate(perr.Stderr, 400))

		switch class {
		case ClassUnavailable:
			return nil, fmt.Errorf("%w: reported by strategy %s", shared.ErrUnavailable, strategy.Name)
		case ClassBlocked:
			blocked = true
		}
	}

	if blocked {
		return nil, fmt.Errorf("%w: host is blocking download requests", shared.ErrBlocked)
	}
	return nil, fmt.Errorf("%w: %d strategies attempted", shared.ErrExhausted, len(strategies))
}

// budgetError translates an expired request context into the right terminal
// error: deadline means the overall timeout fired, cancellation means the
// client went away.
func budgetError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return shared.ErrOverallTimeout
	}
	return ctx.Err()
}

// scrapeTitle recovers a human-readable name from the downloader's stdout.
// Returns "" when no Destination line was printed; callers substitute a
// generic name downstream.
func scrapeTitle(stdout string) string {
	matches := destinationRe.FindAllStringSubmatch(stdout, -1)
	if len(matches) == 0 {
		return ""
	}
	path := strings.TrimSpace(matches[len(matches)-1][1])
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
