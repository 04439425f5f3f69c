// Package core holds the ledger's domain types: transaction records,
// decimal money handling, balance recalculation and bulk-table
// validation.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into a non-negative amount,
// rounded half-up to two fractional digits. It accepts both dot (12.34)
// and comma (12,34) separators; an empty string parses as zero.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,34")  -> 12.34
//	ParseAmount("12.345") -> 12.35
//	ParseAmount("")       -> 0
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, ErrNegativeAmount)
	}
	return d.Round(2), nil
}

// FormatAmount renders an amount with exactly two fractional digits,
// the fixed-point form used in the ledger file and the API.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
