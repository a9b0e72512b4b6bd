package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for converting videos.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.resolveConfig(cmd.String("config"))

	outputDir := cmd.String("output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ecotube-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	conv := r.resolveConverter(config)

	model := ui.NewModel(ctx, conv, outputDir)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
