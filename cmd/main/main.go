package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/bot"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/config"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/repository/sqlite"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/scraper"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/services/checker"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional .env for local runs; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}
	defer repo.Close()

	trackerBot, err := bot.NewBot(ctx, logger, cfg.Tg.Token, cfg.Tg.Timeout, repo, cfg.AlertInterval)
	if err != nil {
		// log.Fatalf skips deferred calls, so release the database first.
		repo.Close()
		log.Fatalf("Failed to init bot: %v", err)
	}

	extractor := scraper.NewScraper(logger, cfg.BaseURL)
	checkerSvc := checker.NewChecker(logger, extractor, repo, trackerBot, cfg.Categories, cfg.SizeFilter)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"categories", cfg.Categories, "size_filter", cfg.SizeFilter, "interval", cfg.CheckInterval)

	// Start the bot and the periodic checker in goroutines to allow main
	// to listen for signals.
	go trackerBot.Start()
	go checkerSvc.Run(ctx, cfg.CheckInterval)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Stop the bot gracefully.
	trackerBot.Stop()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
