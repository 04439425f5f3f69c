package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Persistence
	Backend      string // csv or sqlite
	CSVPath      string
	SQLiteDBPath string

	// AMQP (optional; empty URL disables eventing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets bulk import (optional)
	GoogleSpreadsheetID string

	// Allowed categories, in display order
	Categories []string

	// Mirror worker
	MirrorDBPath   string
	MirrorInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		Backend:      getEnv("LEDGER_BACKEND", "csv"),
		CSVPath:      getEnv("LEDGER_CSV_PATH", "./data/transactions.csv"),
		SQLiteDBPath: getEnv("LEDGER_SQLITE_PATH", "./data/ledger.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changes"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),

		Categories: getEnvList("LEDGER_CATEGORIES"),

		MirrorDBPath:   getEnv("MIRROR_SQLITE_PATH", "./data/ledger-mirror.db"),
		MirrorInterval: getEnvDuration("MIRROR_INTERVAL", 30*time.Second),
	}
}

// Validate checks the configuration and returns a single error listing
// every problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case "csv":
		if strings.TrimSpace(c.CSVPath) == "" {
			errs = append(errs, "LEDGER_CSV_PATH must not be empty for the csv backend")
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errs = append(errs, "LEDGER_SQLITE_PATH must not be empty for the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of [csv sqlite]", c.Backend))
	}

	if c.AMQPURL != "" {
		if strings.TrimSpace(c.AMQPExchange) == "" {
			errs = append(errs, "AMQP_EXCHANGE must not be empty when AMQP_URL is set")
		}
		if strings.TrimSpace(c.AMQPQueue) == "" {
			errs = append(errs, "AMQP_QUEUE must not be empty when AMQP_URL is set")
		}
	}

	if c.MirrorInterval <= 0 {
		errs = append(errs, fmt.Sprintf("invalid mirror interval %v: must be positive", c.MirrorInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
