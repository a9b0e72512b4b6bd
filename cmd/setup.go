package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupHeaders configures download request headers from a browser cURL
// command. The raw command is validated and saved so the converter can
// load it on startup.
func (r *Runner) SetupHeaders(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	outputPath := cmd.String("output")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for request headers")

	var raw []byte
	var headers *shared.RequestHeaders
	var err error

	if curlFile != "" {
		raw, err = os.ReadFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to read cURL file: %w", err)
		}
		headers, err = shared.ParseCurlCommand(raw)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		raw = []byte(curlCmd)
		headers, err = shared.ParseCurlCommand(raw)
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	if len(headers.Headers) == 0 {
		return fmt.Errorf("%w: cURL command contains no headers", shared.ErrInvalidArgument)
	}

	if outputPath == "" {
		outputPath = "headers.curl"
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}

	r.logger.Info("headers file saved", "path", outputPath, "headers", len(headers.Headers))

	r.writePlain("✓ Request headers configured successfully\n")
	r.writePlain("Headers file saved to: %s\n", outputPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Update config.toml with: converter.headers_path = \"%s\"\n", outputPath)
	r.writePlain("2. Run 'ecotube info <url>' to test the headers\n")

	return nil
}
