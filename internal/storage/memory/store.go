package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	interfaces "github.com/sheikh-saqib/payment-tracker/internal/interfaces" // interface PaymentStore
	"github.com/sheikh-saqib/payment-tracker/internal/models"                // domain models: Payment
)

// MemoryPaymentStore is an in-memory implementation of interfaces.PaymentStore.
// Payments are kept in insertion order and the store is safe for concurrent use.
type MemoryPaymentStore struct {
	mu       sync.Mutex          // protects payments and ids
	payments []models.Payment    // every saved payment, oldest first
	ids      map[string]struct{} // payment IDs already saved
}

// NewMemoryPaymentStore creates and returns a new MemoryPaymentStore instance
func NewMemoryPaymentStore() *MemoryPaymentStore {
	return &MemoryPaymentStore{
		payments: make([]models.Payment, 0),
		ids:      make(map[string]struct{}),
	}
}

// SavePayment appends the payment. It always succeeds in memory.
func (m *MemoryPaymentStore) SavePayment(ctx context.Context, payment models.Payment) error {
	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	m.payments = append(m.payments, payment)
	m.ids[payment.ID] = struct{}{}
	return nil
}

func (m *MemoryPaymentStore) PaymentExists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.ids[id]
	return exists, nil
}

// GetPayments returns a copy of every stored payment so callers can't modify
// internal state.
func (m *MemoryPaymentStore) GetPayments(ctx context.Context) ([]models.Payment, error) {
	m.mu.Lock()         // lock to prevent concurrent modification while reading
	defer m.mu.Unlock() // unlock automatically at the end

	copied := make([]models.Payment, len(m.payments))
	copy(copied, m.payments)
	return copied, nil
}

// Compile-time check: ensure MemoryPaymentStore implements PaymentStore interface
var _ interfaces.PaymentStore = (*MemoryPaymentStore)(nil)
