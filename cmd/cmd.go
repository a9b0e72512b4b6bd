// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand runs the HTTP API server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the conversion HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// convertCommand handles one-shot conversions from the terminal.
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"dl"},
		Usage:   "Convert a YouTube video to MP3",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Usage:   "Audio bitrate (64k, 128k, 192k, 256k, 320k)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to save the MP3 file",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output result as JSON",
			},
		},
		Action: r.Convert,
	}
}

// infoCommand fetches video metadata without downloading.
func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Show title and duration for a YouTube video",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output result as JSON",
			},
		},
		Action: r.Info,
	}
}

// setupCommand handles setup operations for the database and request headers.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "headers",
				Usage: "Configure download request headers from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to file containing a cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for the headers file (default: headers.curl)",
					},
				},
				Action: r.SetupHeaders,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive conversions.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for converting videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to save converted files",
				Value:   ".",
			},
		},
		Action: r.TUI,
	}
}
