package core

import (
	"fmt"
	"strings"
)

// RequiredColumns is the column set a bulk-loaded table must provide.
// A balance column is accepted and ignored; balances are always
// recomputed.
var RequiredColumns = []string{"date", "description", "category", "debit", "credit"}

// ValidationKind discriminates bulk-table validation failures.
type ValidationKind string

const (
	MissingColumns ValidationKind = "missing_columns"
	BadDate        ValidationKind = "bad_date"
	BadNumber      ValidationKind = "bad_number"
)

// Table is a column-named collection of string cells, the shape of any
// bulk-load input (file upload, spreadsheet range).
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ValidationError reports why a bulk table was rejected. Row is the
// zero-based data row index for BadDate and BadNumber.
type ValidationError struct {
	Kind    ValidationKind
	Columns []string
	Row     int
	Column  string
	cause   error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingColumns:
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
	case BadDate:
		return fmt.Sprintf("row %d: unparseable date", e.Row)
	case BadNumber:
		return fmt.Sprintf("row %d: column %s is not a non-negative number", e.Row, e.Column)
	default:
		return "table validation failed"
	}
}

func (e *ValidationError) Unwrap() error { return e.cause }

// ValidateTable checks a bulk table against the required schema and
// converts it into drafts, preserving row order. Checks run in this
// order: required columns present, every date parseable, debit and
// credit coercible to non-negative decimals. Any failure rejects the
// whole table; rows are never dropped silently. Pure function, no side
// effects.
func ValidateTable(t Table) ([]Draft, error) {
	cols := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: MissingColumns, Columns: missing}
	}

	cell := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	drafts := make([]Draft, 0, len(t.Rows))
	for i, row := range t.Rows {
		date, err := ParseDate(cell(row, "date"))
		if err != nil {
			return nil, &ValidationError{Kind: BadDate, Row: i, cause: err}
		}
		debit, err := ParseAmount(cell(row, "debit"))
		if err != nil {
			return nil, &ValidationError{Kind: BadNumber, Row: i, Column: "debit", cause: err}
		}
		credit, err := ParseAmount(cell(row, "credit"))
		if err != nil {
			return nil, &ValidationError{Kind: BadNumber, Row: i, Column: "credit", cause: err}
		}
		drafts = append(drafts, Draft{
			Date:        date,
			Description: strings.TrimSpace(cell(row, "description")),
			Category:    strings.TrimSpace(cell(row, "category")),
			Debit:       debit,
			Credit:      credit,
		})
	}
	return drafts, nil
}
