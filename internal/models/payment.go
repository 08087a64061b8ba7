package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidFormat   = errors.New("payment must look like \"<CURRENCY> <AMOUNT>\"")
	ErrInvalidCurrency = errors.New("currency must be a three letter upper-case code")
	ErrInvalidAmount   = errors.New("amount must be a non-zero decimal number")
)

// Payment represents a single change of one currency balance.
type Payment struct {
	ID        string          // unique identifier
	Currency  string          // ISO-like three letter code, e.g. USD
	Amount    decimal.Decimal // positive or negative
	CreatedAt time.Time
}

// NewPayment validates currency and amount and stamps a fresh ID.
func NewPayment(currency string, amount decimal.Decimal, createdAt time.Time) (Payment, error) {
	if !ValidCurrency(currency) {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	if amount.IsZero() {
		return Payment{}, ErrInvalidAmount
	}

	return Payment{
		ID:        uuid.New().String(),
		Currency:  currency,
		Amount:    amount,
		CreatedAt: createdAt,
	}, nil
}

// ParsePayment reads a "<CURRENCY> <AMOUNT>" line such as "USD -100.50".
func ParsePayment(line string, now time.Time) (Payment, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidFormat, line)
	}

	amount, err := decimal.NewFromString(fields[1])
	if err != nil {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidAmount, fields[1])
	}

	return NewPayment(fields[0], amount, now)
}

func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
