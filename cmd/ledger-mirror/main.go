// ledger-mirror consumes ledger-change messages and copies the primary
// ledger into a SQLite mirror, with a periodic full sync as a catch-up
// for anything missed while the worker was down.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledger/internal/amqp"
	"ledger/internal/config"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	"ledger/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New("ledger-mirror", applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	// Source is whatever the server persists to; target is the mirror.
	var source ledger.Persister
	switch cfg.Backend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open ledger database", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		source = repo
	default:
		source = storage.NewCSVRepository(cfg.CSVPath)
	}

	mirror, err := storage.NewSQLiteRepository(cfg.MirrorDBPath)
	if err != nil {
		logger.Error("Failed to open mirror database", "error", err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	defer mirror.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	sync := func(ctx context.Context) error {
		records, err := source.Load(ctx)
		if err != nil {
			return err
		}
		if err := mirror.Save(ctx, records); err != nil {
			return err
		}
		logger.InfoContext(ctx, "Mirror synced", "records", len(records))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up on startup before consuming.
	if err := sync(ctx); err != nil {
		logger.Error("Startup sync failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerChanges(ctx, func(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
			logger.InfoContext(ctx, "Processing ledger change",
				"operation", msg.Operation,
				"records", msg.Records)
			return sync(ctx)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := sync(ctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	logger.Info("Mirror worker started",
		"queue", cfg.AMQPQueue,
		"interval", cfg.MirrorInterval.String(),
		"mirror", cfg.MirrorDBPath)

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Mirror worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Mirror worker stopped gracefully")
}
