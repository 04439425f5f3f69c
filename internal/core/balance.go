package core

import "github.com/shopspring/decimal"

// Recalculate derives the running balance for every record in store
// order: a single forward pass accumulating credit minus debit. It is
// idempotent, so recalculating an already-consistent sequence changes
// nothing. Order is insertion order, not date order.
func Recalculate(records []Transaction) {
	acc := decimal.Zero
	for i := range records {
		acc = acc.Add(records[i].Credit).Sub(records[i].Debit)
		records[i].Balance = acc
	}
}

// Summarize totals debits and credits over all records; the current
// balance is the last record's balance, or zero for an empty ledger.
func Summarize(records []Transaction) Summary {
	s := Summary{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i := range records {
		s.TotalDebit = s.TotalDebit.Add(records[i].Debit)
		s.TotalCredit = s.TotalCredit.Add(records[i].Credit)
	}
	if n := len(records); n > 0 {
		s.CurrentBalance = records[n-1].Balance
	} else {
		s.CurrentBalance = decimal.Zero
	}
	return s
}
