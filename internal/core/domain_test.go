package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-01-15" {
		t.Fatalf("round trip mismatch: %s", d)
	}

	for _, bad := range []string{"", "15/01/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrBadDate) {
			t.Errorf("ParseDate(%q) = %v, want ErrBadDate", bad, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 3, 7)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-07"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %s != %s", back, d)
	}
}

func TestCategorySet(t *testing.T) {
	set := NewCategorySet(nil)
	for _, name := range DefaultCategories {
		if !set.Contains(name) {
			t.Errorf("default set should contain %q", name)
		}
	}
	if set.Contains("Groceries") {
		t.Error("default set should not contain Groceries")
	}

	custom := NewCategorySet([]string{" Rent ", "Rent", "", "Food"})
	if got := custom.Names(); len(got) != 2 || got[0] != "Rent" || got[1] != "Food" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestDraftValidate(t *testing.T) {
	cats := NewCategorySet(nil)
	good := Draft{
		Date:        NewDate(2024, 1, 1),
		Description: "Paycheck",
		Category:    "Income",
		Debit:       decimal.Zero,
		Credit:      amt("1000"),
	}
	if err := good.Validate(cats); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}

	cases := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"zero date", Draft{Description: "a", Category: "Income", Credit: amt("1")}, ErrBadDate},
		{"empty description", Draft{Date: NewDate(2024, 1, 1), Description: "  ", Category: "Income", Credit: amt("1")}, ErrEmptyDescription},
		{"long description", Draft{Date: NewDate(2024, 1, 1), Description: string(long), Category: "Income", Credit: amt("1")}, ErrDescriptionTooLong},
		{"unknown category", Draft{Date: NewDate(2024, 1, 1), Description: "a", Category: "Groceries", Credit: amt("1")}, ErrUnknownCategory},
		{"negative debit", Draft{Date: NewDate(2024, 1, 1), Description: "a", Category: "Income", Debit: amt("-1")}, ErrNegativeAmount},
		{"both zero", Draft{Date: NewDate(2024, 1, 1), Description: "a", Category: "Income"}, ErrAmountConflict},
		{"both positive", Draft{Date: NewDate(2024, 1, 1), Description: "a", Category: "Income", Debit: amt("1"), Credit: amt("1")}, ErrAmountConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate(cats)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("%v should match ErrInvalidRecord", err)
			}
		})
	}
}

func TestDraftTransaction(t *testing.T) {
	d := Draft{
		Date:        NewDate(2024, 1, 1),
		Description: "  Paycheck  ",
		Category:    "Income",
		Credit:      amt("1000"),
	}
	a, b := d.Transaction(), d.Transaction()
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Description != "Paycheck" {
		t.Fatalf("description not trimmed: %q", a.Description)
	}
	if !a.Balance.IsZero() {
		t.Fatalf("balance must stay zero until recalculation, got %s", a.Balance)
	}
}
