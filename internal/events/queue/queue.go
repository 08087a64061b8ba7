package queue

import (
	"context"
	"errors"
	"sync"

	interfaces "github.com/sheikh-saqib/payment-tracker/internal/interfaces"
	"github.com/sheikh-saqib/payment-tracker/internal/models"
)

// ErrClosed is returned once the queue has been closed (and, for Take, drained).
var ErrClosed = errors.New("summary queue closed")

// Queue is a bounded FIFO of ledger summaries backed by a channel. Any number
// of producers may Publish; it is meant to be drained by a single consumer.
type Queue struct {
	items  chan models.LedgerSummary
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex // held for reading while sending, for writing while closing
	closed bool
}

func New(capacity int) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue{
		items: make(chan models.LedgerSummary, capacity),
		done:  make(chan struct{}),
	}
}

// Publish enqueues summary, blocking while the queue is full.
func (q *Queue) Publish(ctx context.Context, summary models.LedgerSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}

	select {
	case q.items <- summary:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrClosed
	}
}

// Take blocks until a summary is available, ctx is done or the queue is closed
// and empty.
func (q *Queue) Take(ctx context.Context) (models.LedgerSummary, error) {
	if err := ctx.Err(); err != nil {
		return models.LedgerSummary{}, err
	}

	select {
	case summary, ok := <-q.items:
		if !ok {
			return models.LedgerSummary{}, ErrClosed
		}
		return summary, nil
	case <-ctx.Done():
		return models.LedgerSummary{}, ctx.Err()
	}
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Close stops accepting new summaries. Summaries already queued can still be
// taken. Close is safe to call more than once.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)

		q.mu.Lock()
		defer q.mu.Unlock()
		q.closed = true
		close(q.items)
	})
}

var _ interfaces.SummaryPublisher = (*Queue)(nil)
