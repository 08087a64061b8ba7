package models

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary is an immutable snapshot of every currency balance kept in the
// ledger at a point in time.
//
// A zero decimal.Decimal{} stored under a currency is treated as a missing
// amount and reads back as zero.
type LedgerSummary struct {
	lastUpdateTime  time.Time
	currencyBalance map[string]decimal.Decimal
}

// NewLedgerSummary copies balances, so the caller may keep mutating its map.
func NewLedgerSummary(balances map[string]decimal.Decimal, lastUpdateTime time.Time) LedgerSummary {
	copied := make(map[string]decimal.Decimal, len(balances))
	maps.Copy(copied, balances)

	return LedgerSummary{
		lastUpdateTime:  lastUpdateTime,
		currencyBalance: copied,
	}
}

func (s LedgerSummary) LastUpdateTime() time.Time {
	return s.lastUpdateTime
}

// AmountForCurrency returns the balance held in currency, or zero when the
// summary has no amount for it.
func (s LedgerSummary) AmountForCurrency(currency string) decimal.Decimal {
	amount, ok := s.currencyBalance[currency]
	if !ok || amount.IsZero() {
		return decimal.Zero
	}
	return amount
}

// NonZeroEntries returns a new map holding only the currencies whose amount
// differs from zero.
func (s LedgerSummary) NonZeroEntries() map[string]decimal.Decimal {
	entries := make(map[string]decimal.Decimal, len(s.currencyBalance))
	for currency, amount := range s.currencyBalance {
		if !amount.IsZero() {
			entries[currency] = amount
		}
	}
	return entries
}

// Currencies lists the currencies with a non-zero balance in ascending order.
func (s LedgerSummary) Currencies() []string {
	return slices.Sorted(maps.Keys(s.NonZeroEntries()))
}
