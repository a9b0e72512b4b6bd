package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/formatter"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/urfave/cli/v3"
)

// Convert downloads one video and saves the MP3 into the output directory.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	config := r.resolveConfig(cmd.String("config"))

	req, err := models.ParseConvertRequest(cmd.StringArg("url"), cmd.String("quality"))
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	conv := r.resolveConverter(config)

	r.logger.Info("starting conversion", "url", req.URL, "quality", req.Quality)
	started := time.Now()

	outcome, err := conv.Convert(ctx, req)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	size := int64(0)
	if stat, err := os.Stat(outcome.FilePath); err == nil {
		size = stat.Size()
	}

	dest := filepath.Join(outputDir, outcome.Filename)
	if err := os.Rename(outcome.FilePath, dest); err != nil {
		outcome.Discard()
		return fmt.Errorf("failed to move converted file: %w", err)
	}

	summary := &formatter.ConversionSummary{
		Title:     outcome.Title,
		FilePath:  dest,
		SizeBytes: size,
		Quality:   req.Quality,
		Elapsed:   time.Since(started),
	}

	if cmd.Bool("json") {
		data, err := formatter.SummaryToJSON(summary)
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		return r.writePlain("%s\n", data)
	}

	return r.writePlain("%s", formatter.SummaryToText(summary))
}

// Info prints the title and duration for a video without downloading it.
func (r *Runner) Info(ctx context.Context, cmd *cli.Command) error {
	config := r.resolveConfig(cmd.String("config"))

	req, err := models.ParseConvertRequest(cmd.StringArg("url"), "")
	if err != nil {
		return err
	}

	conv := r.resolveConverter(config)

	info, err := conv.Info(ctx, req.URL)
	if err != nil {
		return fmt.Errorf("failed to get video information: %w", err)
	}

	if cmd.Bool("json") {
		data, err := formatter.InfoToJSON(info)
		if err != nil {
			return fmt.Errorf("failed to render info: %w", err)
		}
		return r.writePlain("%s\n", data)
	}

	return r.writePlain("%s", formatter.InfoToText(info))
}
