package printer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sheikh-saqib/payment-tracker/internal/events/queue"
	"github.com/sheikh-saqib/payment-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updated = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func exampleSummary() models.LedgerSummary {
	return models.NewLedgerSummary(map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("100.50"),
		"EUR": decimal.Zero,
		"GBP": {},
	}, updated)
}

func runUntilDrained(t *testing.T, verbose bool, summaries ...models.LedgerSummary) string {
	t.Helper()

	q := queue.New(len(summaries))
	for _, s := range summaries {
		require.NoError(t, q.Publish(context.Background(), s))
	}
	q.Close()

	var out bytes.Buffer
	require.NoError(t, NewStreamPrinter(q, &out, verbose).Run(context.Background()))
	return out.String()
}

func TestStreamPrinter_PlainOutput(t *testing.T) {
	got := runUntilDrained(t, false, exampleSummary())

	assert.Equal(t, "USD 100.50\n", got)
}

func TestStreamPrinter_VerboseOutput(t *testing.T) {
	got := runUntilDrained(t, true, exampleSummary())

	want := "\n" +
		"========== Ledger summary ==========\n" +
		"\n" +
		"Last update: 2026-03-14 09:26:53\n" +
		"------------------------------------\n" +
		"USD 100.50\n" +
		"------------------------------------\n" +
		"\n" +
		"Enter new payment entry or type \"quit\" to stop the application:\n"
	assert.Equal(t, want, got)
}

func TestStreamPrinter_SortsCurrencies(t *testing.T) {
	s := models.NewLedgerSummary(map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(900),
		"HKD": decimal.NewFromInt(300),
		"RMB": decimal.Zero,
		"CZK": decimal.RequireFromString("-12.30"),
	}, updated)

	got := runUntilDrained(t, false, s)

	assert.Equal(t, "CZK -12.30\nHKD 300\nUSD 900\n", got)
}

func TestStreamPrinter_PreservesOrder(t *testing.T) {
	summaries := make([]models.LedgerSummary, 3)
	for i := range summaries {
		summaries[i] = models.NewLedgerSummary(map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(int64(i + 1)),
		}, updated)
	}

	got := runUntilDrained(t, false, summaries...)

	assert.Equal(t, "USD 1\nUSD 2\nUSD 3\n", got)
}

func TestStreamPrinter_EmptySummaryVerbose(t *testing.T) {
	got := runUntilDrained(t, true, models.NewLedgerSummary(nil, updated))

	assert.Contains(t, got, "Last update: 2026-03-14 09:26:53\n------------------------------------\n------------------------------------\n")
}

func TestStreamPrinter_CancelledBeforeAnySummary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewStreamPrinter(queue.New(1), &out, true).Run(ctx)

	assert.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestStreamPrinter_StopsWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := queue.New(1)
	var out bytes.Buffer
	printer := NewStreamPrinter(q, &out, true)

	done := make(chan error, 1)
	go func() {
		done <- printer.Run(ctx)
	}()

	require.NoError(t, q.Publish(ctx, exampleSummary()))
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("printer did not stop after cancellation")
	}

	// The snapshot taken before the cancel is printed with its prompt; the
	// stopping iteration adds nothing.
	assert.Equal(t, printer.Render(exampleSummary())+verbosePrompt, out.String())
	assert.Equal(t, 1, strings.Count(out.String(), verbosePrompt))
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errDiskFull
}

func TestStreamPrinter_WriteError(t *testing.T) {
	q := queue.New(1)
	require.NoError(t, q.Publish(context.Background(), exampleSummary()))

	err := NewStreamPrinter(q, failingWriter{}, false).Run(context.Background())

	assert.ErrorIs(t, err, errDiskFull)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100.50", "100.50"},
		{"100", "100"},
		{"-0.10", "-0.10"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}
