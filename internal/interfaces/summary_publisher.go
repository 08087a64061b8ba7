package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payment-tracker/internal/models"
)

// SummaryPublisher hands ledger snapshots over to whoever reports them.
type SummaryPublisher interface {
	Publish(ctx context.Context, summary models.LedgerSummary) error
}
