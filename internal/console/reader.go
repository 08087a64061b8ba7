package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheikh-saqib/payment-tracker/internal/models"
)

const quitCommand = "quit"

// ErrQuit is returned by Run when the user asks to stop the application.
var ErrQuit = errors.New("quit requested")

// PaymentRecorder applies payments to the ledger.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, p models.Payment) error
}

type Option func(*Reader)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reader) {
		r.log = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reader) {
		r.now = now
	}
}

// Reader turns "<CURRENCY> <AMOUNT>" lines into recorded payments.
type Reader struct {
	in       io.Reader
	recorder PaymentRecorder
	out      io.Writer // user facing feedback on rejected lines
	now      func() time.Time
	log      zerolog.Logger
}

func NewReader(in io.Reader, recorder PaymentRecorder, out io.Writer, opts ...Option) *Reader {
	r := &Reader{
		in:       in,
		recorder: recorder,
		out:      out,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run records payments read from the input until it is exhausted, the user
// types "quit" or ctx is cancelled. Malformed lines are reported to the user
// and skipped.
func (r *Reader) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	// Reads from a terminal can't be interrupted; the goroutine exits with the
	// process when ctx wins.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read payments: %w", err)
					}
				default:
				}
				r.log.Debug().Msg("payment input exhausted")
				return nil
			}
			if err := r.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (r *Reader) handleLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.EqualFold(line, quitCommand) {
		return ErrQuit
	}

	p, err := models.ParsePayment(line, r.now())
	if err != nil {
		r.log.Warn().Err(err).Str("line", line).Msg("rejected payment")
		fmt.Fprintf(r.out, "Invalid payment %q: %v\n", line, err)
		return nil
	}

	if err := r.recorder.RecordPayment(ctx, p); err != nil {
		return fmt.Errorf("record payment %q: %w", line, err)
	}
	r.log.Debug().Str("currency", p.Currency).Str("amount", p.Amount.String()).Msg("payment recorded")
	return nil
}

// LoadFile records every payment listed in the file at path. Unlike Run it
// fails on the first malformed line and reports its line number.
func (r *Reader) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open payments file: %w", err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p, err := models.ParsePayment(line, r.now())
		if err != nil {
			return count, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := r.recorder.RecordPayment(ctx, p); err != nil {
			return count, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read payments file: %w", err)
	}

	r.log.Info().Str("path", path).Int("payments", count).Msg("payments file loaded")
	return count, nil
}
