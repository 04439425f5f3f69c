package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8081",
		Backend:        "csv",
		CSVPath:        "./data/transactions.csv",
		SQLiteDBPath:   "./data/ledger.db",
		AMQPExchange:   "ledger",
		AMQPQueue:      "ledger_changes",
		MirrorInterval: 30 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid csv backend",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid sqlite backend",
			mutate: func(c *Config) { c.Backend = "sqlite" },
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: "invalid port 'abc'",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "must be between 1 and 65535",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend = "postgres" },
			wantErr: "invalid backend 'postgres'",
		},
		{
			name:    "csv backend without path",
			mutate:  func(c *Config) { c.CSVPath = "  " },
			wantErr: "LEDGER_CSV_PATH",
		},
		{
			name:    "sqlite backend without path",
			mutate:  func(c *Config) { c.Backend = "sqlite"; c.SQLiteDBPath = "" },
			wantErr: "LEDGER_SQLITE_PATH",
		},
		{
			name:    "amqp url without queue",
			mutate:  func(c *Config) { c.AMQPURL = "amqp://localhost:5672/"; c.AMQPQueue = "" },
			wantErr: "AMQP_QUEUE",
		},
		{
			name:    "non-positive mirror interval",
			mutate:  func(c *Config) { c.MirrorInterval = 0 },
			wantErr: "mirror interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("port = %s, want 8081", cfg.Port)
	}
	if cfg.Backend != "csv" {
		t.Errorf("backend = %s, want csv", cfg.Backend)
	}
	if cfg.MirrorInterval != 30*time.Second {
		t.Errorf("mirror interval = %v, want 30s", cfg.MirrorInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("LEDGER_CATEGORIES", "Income, Expenses ,,Transfer")
	cfg := Load()
	want := []string{"Income", "Expenses", "Transfer"}
	if len(cfg.Categories) != len(want) {
		t.Fatalf("categories = %v, want %v", cfg.Categories, want)
	}
	for i := range want {
		if cfg.Categories[i] != want[i] {
			t.Fatalf("categories = %v, want %v", cfg.Categories, want)
		}
	}
}
