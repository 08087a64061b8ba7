package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sheikh-saqib/payment-tracker/internal/config"
	"github.com/sheikh-saqib/payment-tracker/internal/console"
	"github.com/sheikh-saqib/payment-tracker/internal/events/queue"
	"github.com/sheikh-saqib/payment-tracker/internal/ledger"
	"github.com/sheikh-saqib/payment-tracker/internal/printer"
	"github.com/sheikh-saqib/payment-tracker/internal/scheduler"
	"github.com/sheikh-saqib/payment-tracker/internal/storage/memory"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg)

	// An explicit argument wins over TRACKER_INPUT_FILE
	if len(os.Args) > 1 {
		cfg.InputFile = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stdout belongs to the summary printer; rejected input is reported on stderr.
	app := newTracker(cfg, os.Stdin, os.Stdout, os.Stderr)

	if cfg.InputFile != "" {
		if _, err := app.reader.LoadFile(ctx, cfg.InputFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load payments file")
		}
	}

	if err := app.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Payment tracker failed")
	}

	payments, err := app.ledger.Payments(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read payment history")
	}
	log.Info().Int("payments", len(payments)).Msg("Payment tracker stopped")
}

// tracker holds the wired components of the application.
type tracker struct {
	ledger      *ledger.Ledger
	summaries   *queue.Queue
	reader      *console.Reader
	snapshotter *scheduler.Snapshotter
	printer     *printer.StreamPrinter
}

// newTracker wires the components. Summaries are printed to out and nothing
// else writes there; feedback on rejected input goes to feedback.
func newTracker(cfg *config.Config, in io.Reader, out, feedback io.Writer) *tracker {
	ledgerService := ledger.NewLedger(memory.NewMemoryPaymentStore())
	summaries := queue.New(cfg.QueueSize)

	return &tracker{
		ledger:    ledgerService,
		summaries: summaries,
		reader: console.NewReader(in, ledgerService, feedback,
			console.WithLogger(log.With().Str("component", "console").Logger())),
		snapshotter: scheduler.NewSnapshotter(ledgerService, summaries, cfg.PrintInterval,
			scheduler.WithLogger(log.With().Str("component", "scheduler").Logger())),
		printer: printer.NewStreamPrinter(summaries, out, cfg.Verbose,
			printer.WithLogger(log.With().Str("component", "printer").Logger())),
	}
}

// run keeps the printer, the periodic snapshots and the console reader going
// until the reader finishes, a signal arrives or one of them fails.
func (t *tracker) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer t.summaries.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return t.printer.Run(gctx)
	})

	// Show the starting balances and the prompt straight away
	if err := t.snapshotter.PublishNow(gctx); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		return t.snapshotter.Run(gctx)
	})

	g.Go(func() error {
		defer cancel()
		err := t.reader.Run(gctx)
		if errors.Is(err, console.ErrQuit) {
			log.Info().Msg("Quit requested")
			return nil
		}
		return err
	})

	return g.Wait()
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
