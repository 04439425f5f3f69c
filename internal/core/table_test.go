package core

import (
	"errors"
	"testing"
)

func validTable() Table {
	return Table{
		Columns: []string{"Date", "Description", "Category", "Debit", "Credit"},
		Rows: [][]string{
			{"2024-01-01", "Paycheck", "Income", "0", "1000"},
			{"2024-01-02", "Rent", "Expenses", "200", "0"},
		},
	}
}

func TestValidateTable(t *testing.T) {
	drafts, err := ValidateTable(validTable())
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Description != "Paycheck" || FormatAmount(drafts[0].Credit) != "1000.00" {
		t.Fatalf("unexpected first draft %+v", drafts[0])
	}
	if drafts[1].Date.String() != "2024-01-02" || FormatAmount(drafts[1].Debit) != "200.00" {
		t.Fatalf("unexpected second draft %+v", drafts[1])
	}
}

func TestValidateTableMissingColumns(t *testing.T) {
	tbl := Table{
		Columns: []string{"Date", "Description", "Debit", "Credit"},
		Rows:    [][]string{{"2024-01-01", "Paycheck", "0", "1000"}},
	}
	_, err := ValidateTable(tbl)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Kind != MissingColumns {
		t.Fatalf("kind = %s, want %s", vErr.Kind, MissingColumns)
	}
	if len(vErr.Columns) != 1 || vErr.Columns[0] != "category" {
		t.Fatalf("columns = %v, want [category]", vErr.Columns)
	}
}

func TestValidateTableBadDate(t *testing.T) {
	tbl := validTable()
	tbl.Rows[1][0] = "02/01/2024"

	_, err := ValidateTable(tbl)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Kind != BadDate {
		t.Fatalf("expected BadDate, got %v", err)
	}
	if vErr.Row != 1 {
		t.Fatalf("row = %d, want 1", vErr.Row)
	}
}

func TestValidateTableBadNumber(t *testing.T) {
	tbl := validTable()
	tbl.Rows[0][3] = "lots"

	_, err := ValidateTable(tbl)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Kind != BadNumber {
		t.Fatalf("expected BadNumber, got %v", err)
	}
	if vErr.Row != 0 || vErr.Column != "debit" {
		t.Fatalf("got row %d column %s, want row 0 column debit", vErr.Row, vErr.Column)
	}

	tbl = validTable()
	tbl.Rows[1][4] = "-5"
	_, err = ValidateTable(tbl)
	if !errors.As(err, &vErr) || vErr.Kind != BadNumber || vErr.Column != "credit" {
		t.Fatalf("expected BadNumber on credit, got %v", err)
	}
}

func TestValidateTableHeaderFlexibility(t *testing.T) {
	// Headers match case-insensitively, column order is free, and a
	// balance column is accepted but ignored.
	tbl := Table{
		Columns: []string{"credit", "DEBIT", "category", "description", "date", "Balance"},
		Rows: [][]string{
			{"1000", "0", "Income", "Paycheck", "2024-01-01", "999999"},
		},
	}
	drafts, err := ValidateTable(tbl)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if FormatAmount(drafts[0].Credit) != "1000.00" || drafts[0].Category != "Income" {
		t.Fatalf("unexpected draft %+v", drafts[0])
	}
}

func TestValidateTableShortRow(t *testing.T) {
	// A row shorter than the header reads missing cells as empty; an
	// empty date is still a BadDate rejection.
	tbl := Table{
		Columns: []string{"date", "description", "category", "debit", "credit"},
		Rows:    [][]string{{"2024-01-01"}},
	}
	_, err := ValidateTable(tbl)
	var vErr *ValidationError
	if err != nil {
		t.Fatalf("short row with valid date should pass schema checks, got %v", err)
	}

	tbl.Rows = [][]string{{}}
	_, err = ValidateTable(tbl)
	if !errors.As(err, &vErr) || vErr.Kind != BadDate {
		t.Fatalf("expected BadDate for empty row, got %v", err)
	}
}
