// Package storage provides the persistence adapters for the ledger:
// a columnar flat file (the canonical backing store) and a SQLite
// database used both as a selectable backend and as the mirror target
// of the sync worker.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// ErrPersistence marks any I/O or parse failure of a persistence
// adapter. Callers match it with errors.Is to distinguish a
// mutated-but-unsaved ledger from a validation failure.
var ErrPersistence = errors.New("persistence failure")

// fileHeader is the fixed column order of the ledger file.
var fileHeader = []string{"Date", "Description", "Category", "Debit", "Credit", "Balance"}

// CSVRepository persists the ledger as a flat CSV file, one row per
// transaction, dates as YYYY-MM-DD and amounts with two fractional
// digits. Stable IDs are process-lifetime handles and are assigned
// fresh at load time, keeping the file format down to the original
// column set.
type CSVRepository struct {
	path string
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// Path returns the backing file location.
func (r *CSVRepository) Path() string { return r.path }

// Load reads the backing file. A missing file yields an empty sequence;
// unreadable or malformed content fails wholesale so existing data is
// never silently discarded.
func (r *CSVRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrPersistence, r.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrPersistence, r.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, r.path, err)
	}

	records := make([]core.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] {
		tx, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrPersistence, r.path, i+1, err)
		}
		records = append(records, tx)
	}
	return records, nil
}

// Save serializes the full sequence, overwriting prior content. The
// write goes to a temp file in the same directory followed by a rename,
// so a crash mid-write cannot corrupt the previous ledger.
func (r *CSVRepository) Save(ctx context.Context, records []core.Transaction) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(fileHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write header: %w", ErrPersistence, err)
	}
	for i := range records {
		row := []string{
			records[i].Date.String(),
			records[i].Description,
			records[i].Category,
			core.FormatAmount(records[i].Debit),
			core.FormatAmount(records[i].Credit),
			core.FormatAmount(records[i].Balance),
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write row %d: %w", ErrPersistence, i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %w", ErrPersistence, r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", ErrPersistence, err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrPersistence, r.path, err)
	}
	return nil
}

func checkHeader(header []string) error {
	if len(header) != len(fileHeader) {
		return fmt.Errorf("unexpected header %v", header)
	}
	for i, name := range fileHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("unexpected header %v", header)
		}
	}
	return nil
}

func parseRow(row []string) (core.Transaction, error) {
	if len(row) != len(fileHeader) {
		return core.Transaction{}, fmt.Errorf("expected %d columns, got %d", len(fileHeader), len(row))
	}
	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.Transaction{}, err
	}
	debit, err := core.ParseAmount(row[3])
	if err != nil {
		return core.Transaction{}, err
	}
	credit, err := core.ParseAmount(row[4])
	if err != nil {
		return core.Transaction{}, err
	}
	// Balance may legitimately be negative; it is re-derived after load
	// anyway, the parse only guards against corrupt content.
	balance, err := decimal.NewFromString(strings.TrimSpace(row[5]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse balance %q: %w", row[5], err)
	}
	return core.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: row[1],
		Category:    row[2],
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
	}, nil
}
