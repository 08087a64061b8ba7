package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayment(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		line     string
		currency string
		amount   string
		wantErr  error
	}{
		{"positive", "USD 1000", "USD", "1000", nil},
		{"negative with decimals", "HKD -100.25", "HKD", "-100.25", nil},
		{"surrounding whitespace", "  GBP   12.5 ", "GBP", "12.5", nil},
		{"missing amount", "USD", "", "", ErrInvalidFormat},
		{"extra field", "USD 10 20", "", "", ErrInvalidFormat},
		{"empty", "", "", "", ErrInvalidFormat},
		{"lower-case currency", "usd 10", "", "", ErrInvalidCurrency},
		{"long currency", "USDT 10", "", "", ErrInvalidCurrency},
		{"digits in currency", "U5D 10", "", "", ErrInvalidCurrency},
		{"not a number", "USD ten", "", "", ErrInvalidAmount},
		{"zero", "USD 0.00", "", "", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePayment(tt.line, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.currency, p.Currency)
			assert.Equal(t, tt.amount, p.Amount.String())
			assert.Equal(t, now, p.CreatedAt)
			_, err = uuid.Parse(p.ID)
			assert.NoError(t, err)
		})
	}
}

func TestNewPayment_UniqueIDs(t *testing.T) {
	a, err := ParsePayment("USD 1", time.Now())
	require.NoError(t, err)
	b, err := ParsePayment("USD 1", time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
