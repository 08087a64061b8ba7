package printer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sheikh-saqib/payment-tracker/internal/events/queue"
	"github.com/sheikh-saqib/payment-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const (
	verboseHeader = "\n========== Ledger summary ==========\n\nLast update: %s %s\n------------------------------------\n"
	verboseFooter = "------------------------------------\n\n"
	verbosePrompt = "Enter new payment entry or type \"quit\" to stop the application:\n"

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// SummaryQueue is the consuming side of the ledger summary FIFO.
type SummaryQueue interface {
	Take(ctx context.Context) (models.LedgerSummary, error)
}

type Option func(*StreamPrinter)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *StreamPrinter) {
		p.log = logger
	}
}

// StreamPrinter renders ledger summaries taken from a queue onto a text
// stream. Run it in exactly one goroutine per queue.
type StreamPrinter struct {
	queue   SummaryQueue
	out     *bufio.Writer
	verbose bool
	log     zerolog.Logger
}

func NewStreamPrinter(q SummaryQueue, out io.Writer, verbose bool, opts ...Option) *StreamPrinter {
	p := &StreamPrinter{
		queue:   q,
		out:     bufio.NewWriter(out),
		verbose: verbose,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run prints every summary taken from the queue until ctx is cancelled or the
// queue is closed, both of which end the loop with a nil error. Only a failed
// write is reported.
func (p *StreamPrinter) Run(ctx context.Context) error {
	p.log.Debug().Bool("verbose", p.verbose).Msg("ledger summary printer started")

	for {
		summary, err := p.queue.Take(ctx)
		if err != nil {
			if isStop(err) {
				p.log.Debug().Err(err).Msg("ledger summary printer stopped")
				return nil
			}
			return fmt.Errorf("take ledger summary: %w", err)
		}

		output := p.Render(summary)
		if p.verbose {
			output += verbosePrompt
		}
		// Snapshot and prompt go out in a single write.
		if err := p.write(output); err != nil {
			return err
		}
	}
}

// Render formats summary completely in memory: the optional verbose header,
// one "<currency> <amount>" line per non-zero balance ordered by currency and
// the optional verbose footer.
func (p *StreamPrinter) Render(summary models.LedgerSummary) string {
	var b strings.Builder

	if p.verbose {
		updated := summary.LastUpdateTime()
		fmt.Fprintf(&b, verboseHeader, updated.Format(dateLayout), updated.Format(timeLayout))
	}

	entries := summary.NonZeroEntries()
	for _, currency := range summary.Currencies() {
		fmt.Fprintf(&b, "%s %s\n", currency, FormatAmount(entries[currency]))
	}

	if p.verbose {
		b.WriteString(verboseFooter)
	}
	return b.String()
}

func (p *StreamPrinter) write(s string) error {
	if _, err := p.out.WriteString(s); err != nil {
		p.log.Error().Err(err).Msg("failed to write ledger summary")
		return fmt.Errorf("write ledger summary: %w", err)
	}
	if err := p.out.Flush(); err != nil {
		p.log.Error().Err(err).Msg("failed to flush ledger summary")
		return fmt.Errorf("flush ledger summary: %w", err)
	}
	return nil
}

// FormatAmount prints amount keeping the scale it was entered with, so
// "100.50" stays "100.50".
func FormatAmount(amount decimal.Decimal) string {
	if exp := amount.Exponent(); exp < 0 {
		return amount.StringFixed(-exp)
	}
	return amount.String()
}

func isStop(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, queue.ErrClosed)
}
