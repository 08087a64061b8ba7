package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	interfaces "github.com/sheikh-saqib/payment-tracker/internal/interfaces"
	"github.com/sheikh-saqib/payment-tracker/internal/models"
)

// SummarySource produces the current ledger snapshot.
type SummarySource interface {
	Summary() models.LedgerSummary
}

type Option func(*Snapshotter)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Snapshotter) {
		s.log = logger
	}
}

// Snapshotter periodically publishes a snapshot of the ledger.
type Snapshotter struct {
	source    SummarySource
	publisher interfaces.SummaryPublisher
	interval  time.Duration
	log       zerolog.Logger
}

func NewSnapshotter(source SummarySource, publisher interfaces.SummaryPublisher, interval time.Duration, opts ...Option) *Snapshotter {
	s := &Snapshotter{
		source:    source,
		publisher: publisher,
		interval:  interval,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run publishes a snapshot every interval until ctx is cancelled.
func (s *Snapshotter) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %s", s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.PublishNow(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// PublishNow takes a snapshot and publishes it right away.
func (s *Snapshotter) PublishNow(ctx context.Context) error {
	summary := s.source.Summary()
	if err := s.publisher.Publish(ctx, summary); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.log.Error().Err(err).Msg("failed to publish ledger summary")
		return fmt.Errorf("publish ledger summary: %w", err)
	}

	s.log.Debug().
		Int("currencies", len(summary.NonZeroEntries())).
		Time("last_update", summary.LastUpdateTime()).
		Msg("ledger summary published")
	return nil
}
