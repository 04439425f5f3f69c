package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used on the wire and in the
// ledger file.
const DateFormat = "2006-01-02"

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []string{"Income", "Expenses", "Transfer", "Investment", "Other"}

var (
	// ErrInvalidRecord is the parent of every draft field error, so
	// callers can match the whole family with errors.Is.
	ErrInvalidRecord = errors.New("invalid record")

	ErrBadDate            = fmt.Errorf("%w: unparseable date", ErrInvalidRecord)
	ErrEmptyDescription   = fmt.Errorf("%w: empty description", ErrInvalidRecord)
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long (max 200 characters)", ErrInvalidRecord)
	ErrUnknownCategory    = fmt.Errorf("%w: unknown category", ErrInvalidRecord)
	ErrNegativeAmount     = fmt.Errorf("%w: negative amount", ErrInvalidRecord)
	ErrAmountConflict     = fmt.Errorf("%w: exactly one of debit and credit must be positive", ErrInvalidRecord)
)

type (
	// Date is a calendar date with day precision.
	Date struct {
		time.Time
	}

	// Draft is a caller-supplied transaction candidate. It carries no
	// identifier and no balance; both are assigned by the engine.
	Draft struct {
		Date        Date
		Description string
		Category    string
		Debit       decimal.Decimal
		Credit      decimal.Decimal
	}

	// Transaction is a finalized ledger entry. Balance is derived by
	// the running recalculation and is never trusted from input.
	Transaction struct {
		ID          string
		Date        Date
		Description string
		Category    string
		Debit       decimal.Decimal
		Credit      decimal.Decimal
		Balance     decimal.Decimal
	}

	// Summary aggregates the whole ledger.
	Summary struct {
		TotalDebit     decimal.Decimal
		TotalCredit    decimal.Decimal
		CurrentBalance decimal.Decimal
	}

	// CategorySet is the configured set of allowed categories.
	CategorySet struct {
		names []string
		index map[string]struct{}
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return Date{Time: t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NewCategorySet builds a set from the given names, dropping blanks and
// duplicates while preserving order. An empty input falls back to
// DefaultCategories.
func NewCategorySet(names []string) CategorySet {
	if len(names) == 0 {
		names = DefaultCategories
	}
	set := CategorySet{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := set.index[n]; ok {
			continue
		}
		set.index[n] = struct{}{}
		set.names = append(set.names, n)
	}
	return set
}

// Contains reports whether name is an allowed category.
func (cs CategorySet) Contains(name string) bool {
	_, ok := cs.index[name]
	return ok
}

// Names returns the allowed categories in configuration order.
func (cs CategorySet) Names() []string {
	return append([]string(nil), cs.names...)
}

// Validate checks the draft's field constraints: a parseable date, a
// non-empty description, a known category, and exactly one positive
// amount with the other exactly zero.
func (d Draft) Validate(categories CategorySet) error {
	if d.Date.IsZero() {
		return ErrBadDate
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !categories.Contains(d.Category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	if d.Debit.IsNegative() || d.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	if d.Debit.IsPositive() == d.Credit.IsPositive() {
		return ErrAmountConflict
	}
	return nil
}

// Transaction finalizes the draft with a fresh stable identifier. The
// balance is zero until the next recalculation.
func (d Draft) Transaction() Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        d.Date,
		Description: strings.TrimSpace(d.Description),
		Category:    d.Category,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// Equal reports field-for-field equality after decimal normalization.
// The stable ID is a process-lifetime handle and is not compared.
func (t Transaction) Equal(other Transaction) bool {
	return t.Date.Equal(other.Date.Time) &&
		t.Description == other.Description &&
		t.Category == other.Category &&
		t.Debit.Equal(other.Debit) &&
		t.Credit.Equal(other.Credit) &&
		t.Balance.Equal(other.Balance)
}
