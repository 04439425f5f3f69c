package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"ledger/internal/core"
)

// SQLiteRepository persists the ledger in a SQLite database. It honors
// the same snapshot contract as the flat file: Save replaces the whole
// sequence, Load returns it in stored order. Amounts are stored as
// fixed-point text so nothing ever passes through binary floats.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the full sequence in position order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, category, debit, credit, balance
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			tx                           core.Transaction
			date, debit, credit, balance string
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &tx.Category, &debit, &credit, &balance); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", ErrPersistence, err)
		}
		if tx.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrPersistence, len(records), err)
		}
		if tx.Debit, err = core.ParseAmount(debit); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrPersistence, len(records), err)
		}
		if tx.Credit, err = core.ParseAmount(credit); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrPersistence, len(records), err)
		}
		if tx.Balance, err = decimal.NewFromString(strings.TrimSpace(balance)); err != nil {
			return nil, fmt.Errorf("%w: row %d: parse balance: %w", ErrPersistence, len(records), err)
		}
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %w", ErrPersistence, err)
	}
	return records, nil
}

// Save replaces the stored sequence with the given one inside a single
// database transaction.
func (r *SQLiteRepository) Save(ctx context.Context, records []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrPersistence, err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("%w: clear transactions: %w", ErrPersistence, err)
	}

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO transactions (position, id, date, description, category, debit, credit, balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", ErrPersistence, err)
	}
	defer stmt.Close()

	for i := range records {
		_, err := stmt.ExecContext(ctx,
			i,
			records[i].ID,
			records[i].Date.String(),
			records[i].Description,
			records[i].Category,
			core.FormatAmount(records[i].Debit),
			core.FormatAmount(records[i].Credit),
			core.FormatAmount(records[i].Balance),
		)
		if err != nil {
			return fmt.Errorf("%w: insert row %d: %w", ErrPersistence, i, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transactions: %w", ErrPersistence, err)
	}
	return nil
}
