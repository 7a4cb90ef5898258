package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/jwillems/mailintake/internal/config"
	"github.com/jwillems/mailintake/internal/customer"
	"github.com/jwillems/mailintake/internal/database"
	"github.com/jwillems/mailintake/internal/formatter"
	"github.com/jwillems/mailintake/internal/intake"
	"github.com/jwillems/mailintake/internal/mime"
	"github.com/jwillems/mailintake/internal/quote"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.eml> [file.eml ...]\n", os.Args[0])
		os.Exit(2)
	}
	logger.Info("starting email intake", "files", len(os.Args)-1)

	// Connect to database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create components
	preview := formatter.NewPreviewFormatter()
	hooks := database.NewRecordHooks(db, func(email *mime.ParsedEmail) {
		fmt.Println(preview.FormatEmail(email))
	})
	resolver := customer.NewResolver(database.NewKV(db))
	extractor := quote.NewExtractor(cfg.DefaultHourlyRate, cfg.QuoteNotesMax)

	orchestrator := intake.NewOrchestrator(intake.Config{
		Hooks:       hooks,
		Resolver:    resolver,
		Extractor:   extractor,
		Logger:      logger,
		UserID:      cfg.IntakeUser,
		TaskDueDays: cfg.TaskDueDays,
	})

	// Build the batch from the command line arguments
	files := make([]intake.InboundFile, 0, len(os.Args)-1)
	for _, path := range os.Args[1:] {
		files = append(files, intake.InboundFile{
			Name: path,
			Open: func(context.Context) ([]byte, error) {
				return os.ReadFile(path)
			},
		})
	}

	results := orchestrator.ProcessFiles(ctx, files)

	failed := 0
	for _, entry := range results {
		if entry.Status == intake.StatusError {
			failed++
		}
		logger.Info("result",
			"workflow", entry.Workflow,
			"status", entry.Status,
			"item_id", entry.WorkflowItemID,
			"message", entry.Message,
		)
	}

	logger.Info("intake complete", "processed", len(results), "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
