package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// tempFilePrefix namespaces this service's files inside the shared temp
// directory. The per-request token follows the prefix.
const tempFilePrefix = "audio_"

// Orchestrator owns the end-to-end lifecycle of one conversion request: the
// overall deadline, the fail-fast probe, delegation to the strategy
// executor, output discovery, and cleanup scheduling. Exactly one terminal
// outcome is produced per request.
type Orchestrator struct {
	prober   services.Prober
	executor *Executor
	cfg      shared.ConverterConfig
	logger   *log.Logger
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(prober services.Prober, executor *Executor, cfg shared.ConverterConfig, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Orchestrator{prober: prober, executor: executor, cfg: cfg, logger: logger}
}

// Convert runs one conversion to completion. On success the returned
// Outcome owns the produced file; the caller must call Cleanup or Discard
// after serving it. All failures surface as wrapped sentinel errors from
// internal/shared, never raw process output.
func (o *Orchestrator) Convert(ctx context.Context, req *models.ConvertRequest) (*Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.TotalTimeout())
	defer cancel()

	if err := os.MkdirAll(o.cfg.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create temp directory: %v", shared.ErrInternal, err)
	}

	token := shared.GenerateToken()
	logger := o.logger.With("token", token)
	sm := newStateMachine()

	title, _, err := o.probe(ctx, req.URL)
	if err != nil {
		sm.transition(StateFailed)
		logger.Warn("probe rejected request", "url", req.URL, "error", err)
		return nil, err
	}
	logger.Info("probe succeeded", "url", req.URL, "title", title, "quality", req.Quality)

	outputTemplate := filepath.Join(o.cfg.TempDir, tempFilePrefix+token+".%(ext)s")
	strategies := BuildStrategies(req, outputTemplate, o.cfg.FfmpegPath)

	result, err := o.executor.Run(ctx, sm, strategies)
	if err != nil {
		sm.transition(StateFailed)
		return nil, err
	}

	filePath, err := findOutput(o.cfg.TempDir, tempFilePrefix+token)
	if err != nil {
		sm.transition(StateFailed)
		logger.Error("output discovery failed after reported success", "error", err)
		return nil, err
	}

	if err := sm.transition(StateSucceeded); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}

	if title == "" {
		title = result.Title
	}

	logger.Info("conversion complete", "strategy", result.Strategy, "attempts", result.Attempts, "file", filePath)

	return NewOutcome(filePath, title, o.cfg.CleanupGrace(), logger), nil
}

// Info runs the metadata probe alone, for lightweight previews that must
// not trigger a download.
func (o *Orchestrator) Info(ctx context.Context, url string) (*models.VideoInfo, error) {
	title, duration, err := o.probe(ctx, url)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "Unknown Title"
	}
	if duration == "" {
		duration = "Unknown Duration"
	}
	return &models.VideoInfo{Title: title, Duration: duration}, nil
}

// probe issues the metadata-only call under its own sub-deadline and maps
// failures into the error taxonomy: probe timeout is reported distinctly
// from an inaccessible resource.
func (o *Orchestrator) probe(ctx context.Context, url string) (string, string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, o.cfg.ProbeTimeout())
	defer cancel()

	title, duration, err := o.prober.Probe(probeCtx, url)
	if err == nil {
		return title, duration, nil
	}

	if ctx.Err() != nil {
		return "", "", budgetError(ctx)
	}
	if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
		return "", "", shared.ErrProbeTimeout
	}

	var perr *services.ProcessError
	if errors.As(err, &perr) {
		o.logger.Warn("probe process failed", "url", url, "stderr", truncate(perr.Stderr, 400))
		if Classify(perr.Stderr) == ClassBlocked {
			return "", "", fmt.Errorf("%w: metadata request rejected", shared.ErrBlocked)
		}
		return "", "", fmt.Errorf("%w: resource inaccessible", shared.ErrUnavailable)
	}

	return "", "", fmt.Errorf("%w: %v", shared.ErrInternal, err)
}

// findOutput locates the single file the transcoder produced for this
// request. The exact extension is the transcoder's choice, so discovery is
// by token prefix, with "exactly one match" as an explicit post-condition.
func findOutput(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read temp directory: %v", shared.ErrInternal, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: conversion completed but file not found", shared.ErrInternal)
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", fmt.Errorf("%w: %d files match token %s", shared.ErrInternal, len(matches), prefix)
	}
}
