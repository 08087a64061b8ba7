package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payment-tracker/internal/models"
)

type PaymentStore interface {
	SavePayment(ctx context.Context, payment models.Payment) error
	PaymentExists(ctx context.Context, id string) (bool, error)
	GetPayments(ctx context.Context) ([]models.Payment, error)
}
