// Package backend assembles the ledger's persistence and eventing
// collaborators from configuration.
package backend

import (
	"fmt"

	"ledger/internal/amqp"
	"ledger/internal/config"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// Result bundles the persister selected by config, an optional change
// publisher and a cleanup function releasing whatever was opened.
type Result struct {
	Persister ledger.Persister
	Publisher ledger.Publisher
	Cleanup   func() error
}

// New builds the backend for the given configuration. An empty AMQP URL
// disables eventing; a failed AMQP dial is logged and skipped rather
// than fatal, matching the store's best-effort publishing contract.
func New(cfg *config.Config, logger *log.Logger) (*Result, error) {
	result := &Result{Cleanup: func() error { return nil }}

	switch cfg.Backend {
	case "csv":
		result.Persister = storage.NewCSVRepository(cfg.CSVPath)
		logger.Info("Initialized CSV backend", "path", cfg.CSVPath)
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		result.Persister = repo
		result.Cleanup = repo.Close
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without eventing", "error", err)
		} else {
			result.Publisher = client
			prev := result.Cleanup
			result.Cleanup = func() error {
				if err := client.Close(); err != nil {
					return err
				}
				return prev()
			}
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return result, nil
}
