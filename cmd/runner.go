package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/convert"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	"github.com/urfave/cli/v3"
)

// converter abstracts the conversion pipeline so command actions can be
// tested without spawning external processes. [convert.Orchestrator]
// satisfies it.
type converter interface {
	Convert(ctx context.Context, req *models.ConvertRequest) (*convert.Outcome, error)
	Info(ctx context.Context, url string) (*models.VideoInfo, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	converter  converter
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Converter  converter
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		converter:  opts.Converter,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, used when a command needs log
// output redirected away from the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, convertCommand, infoCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig loads the config file at path when it exists, falling
// back to the runner's current config.
func (r *Runner) resolveConfig(path string) *shared.Config {
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using current settings", "path", path, "error", err)
		return r.config
	}
	r.config = config
	r.configPath = path
	return config
}

// resolveConverter returns the injected converter when one was provided,
// otherwise it wires the external-process pipeline from config.
func (r *Runner) resolveConverter(config *shared.Config) converter {
	if r.converter != nil {
		return r.converter
	}

	var headers *shared.RequestHeaders
	if config.Converter.HeadersPath != "" {
		h, err := shared.ParseCurlFile(config.Converter.HeadersPath)
		if err != nil {
			r.logger.Warn("failed to parse headers file", "path", config.Converter.HeadersPath, "error", err)
		} else {
			headers = h
			r.logger.Info("loaded request headers", "path", config.Converter.HeadersPath, "count", len(headers.Headers))
		}
	}

	procRunner := services.NewExecRunner(config.Converter.KillGrace())
	ytdlp := services.NewYTDLP(procRunner, config.Converter.YtdlpPath, headers, r.logger)
	executor := convert.NewExecutor(ytdlp, config.Converter.AttemptTimeout(), r.logger)
	return convert.NewOrchestrator(ytdlp, executor, config.Converter, r.logger)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
