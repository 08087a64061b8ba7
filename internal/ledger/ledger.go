package ledger

import (
	"context" // request-scoped cancellation passed down to the store
	"errors"
	"fmt"
	"sync" // guards the balances shared between the reader and the scheduler
	"time"

	interfaces "github.com/sheikh-saqib/payment-tracker/internal/interfaces" // interface PaymentStore
	"github.com/sheikh-saqib/payment-tracker/internal/models"                // domain models: Payment, LedgerSummary
	"github.com/shopspring/decimal"
)

var ErrMissingPaymentID = errors.New("payment id is required")

// Ledger keeps a running balance per currency on top of a payment store.
type Ledger struct {
	store interfaces.PaymentStore // any storage implementation, memory today

	mu             sync.Mutex                 // protects balances and lastUpdateTime
	balances       map[string]decimal.Decimal // currency code -> running balance
	lastUpdateTime time.Time                  // when the balances last changed
}

// NewLedger is a constructor function that creates a new Ledger instance.
// Until the first payment arrives the ledger reports its creation time as the
// last update.
func NewLedger(store interfaces.PaymentStore) *Ledger {
	return &Ledger{
		store:          store,
		balances:       make(map[string]decimal.Decimal),
		lastUpdateTime: time.Now(),
	}
}

// RecordPayment validates the payment, saves it and applies its amount to the
// currency balance. A payment whose ID was already recorded is ignored.
func (l *Ledger) RecordPayment(ctx context.Context, p models.Payment) error {
	// Basic validation, the same rules ParsePayment applies
	if p.ID == "" {
		return ErrMissingPaymentID
	}
	if !models.ValidCurrency(p.Currency) {
		return fmt.Errorf("%w: %q", models.ErrInvalidCurrency, p.Currency)
	}
	if p.Amount.IsZero() {
		return models.ErrInvalidAmount
	}

	// Saving and applying the balance happen under one lock so a snapshot
	// never sees a stored payment without its amount.
	l.mu.Lock()
	defer l.mu.Unlock()

	// Idempotency check
	exists, err := l.store.PaymentExists(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("check payment %s: %w", p.ID, err)
	}
	if exists {
		return nil
	}

	// If saving fails, return the error immediately and leave the balance alone
	if err := l.store.SavePayment(ctx, p); err != nil {
		return fmt.Errorf("save payment %s: %w", p.ID, err)
	}

	l.balances[p.Currency] = l.balances[p.Currency].Add(p.Amount) // missing currency starts at zero
	l.lastUpdateTime = p.CreatedAt
	return nil
}

// Summary takes a snapshot of every balance, stamped with the creation time of
// the last recorded payment.
func (l *Ledger) Summary() models.LedgerSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	return models.NewLedgerSummary(l.balances, l.lastUpdateTime) // the summary copies the map
}

// Payments returns the recorded payment history in the order it was recorded.
func (l *Ledger) Payments(ctx context.Context) ([]models.Payment, error) {
	payments, err := l.store.GetPayments(ctx)
	if err != nil {
		return []models.Payment{}, err
	}
	return payments, nil
}
