package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/repositories"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/server"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// Serve starts the HTTP API server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.resolveConfig(cmd.String("config"))

	host := config.Server.Host
	if flagHost := cmd.String("host"); flagHost != "" {
		host = flagHost
	}
	port := config.Server.Port
	if flagPort := cmd.Int("port"); flagPort != 0 {
		port = flagPort
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conv := r.resolveConverter(config)
	messages := repositories.NewMessageRepository(db)

	limiter := rate.NewLimiter(rate.Limit(config.Converter.RateLimitPerSecond), config.Converter.RateLimitBurst)

	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.RequestLogger(r.logger), server.RateLimit(limiter))
	router.Handler(server.NewConvertHandler(conv, r.logger))
	router.Handler(server.NewVideoInfoHandler(conv, r.logger))
	router.Handler(server.NewContactHandler(messages, r.logger))
	router.Handler(server.NewHealthHandler())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := tasks.NewJanitor(config.Converter.TempDir, config.Converter.JanitorInterval(), config.Converter.JanitorTTL(), r.logger)
	go janitor.Run(ctx)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		r.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	return nil
}
