// Package cli provides common CLI initialization utilities shared by
// cmd/budgeteer and cmd/report-worker.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"budgeteer/internal/advisor"
	"budgeteer/internal/amqp"
	"budgeteer/internal/config"
	"budgeteer/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite initializes a SQLite repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	sqliteRepo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return sqliteRepo
}

// InitAMQP connects to the message broker. Returns the client or exits the
// process on failure.
func InitAMQP(logger *slog.Logger, cfg *config.Config) *amqp.Client {
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err, "url", cfg.AMQPURL)
		os.Exit(1)
	}
	return client
}

// InitEnricher builds the Gemini enricher when GEMINI_API_KEY is set.
// Returns nil when the key is absent; AI features then degrade gracefully.
func InitEnricher(ctx context.Context, logger *slog.Logger, cfg *config.Config) advisor.Enricher {
	if os.Getenv("GEMINI_API_KEY") == "" {
		logger.Info("AI enrichment disabled - no GEMINI_API_KEY provided")
		return nil
	}

	enricher, err := advisor.NewGeminiEnricher(ctx, cfg.EnrichmentModel)
	if err != nil {
		logger.Error("Failed to initialize Gemini enricher", "error", err, "model", cfg.EnrichmentModel)
		os.Exit(1)
	}
	logger.Info("Gemini enricher initialized", "model", cfg.EnrichmentModel)
	return enricher
}
