package outbox

import (
	"context"
	"math"
	"time"

	"toyblox/internal/models"

	"github.com/rs/zerolog"
)

// Store is the outbox table as seen by the relay.
type Store interface {
	FetchDue(ctx context.Context, now time.Time, limit int) ([]models.OutboxEvent, error)
	Claim(ctx context.Context, e *models.OutboxEvent, leaseUntil time.Time) (bool, error)
	MarkSent(ctx context.Context, id string, at time.Time, lastError string) error
	MarkFailed(ctx context.Context, id string, attempts int, next time.Time, lastError string) error
	CountPending(ctx context.Context) (int64, error)
}

// Runner polls the outbox and publishes due events. An event is claimed by
// moving its next attempt forward by Lease before it is published, so a
// second relay skips it and a crashed relay's event becomes due again.
type Runner struct {
	Log   zerolog.Logger
	Store Store

	Publisher Publisher

	PollInterval   time.Duration
	BatchSize      int
	MaxAttempts    int
	BackoffMax     time.Duration
	Lease          time.Duration
	PublishTimeout time.Duration

	Now func() time.Time
}

func (r *Runner) Run(ctx context.Context) {
	t := time.NewTicker(r.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Log.Info().Msg("outbox runner stopped")
			return
		case <-t.C:
			if err := r.Tick(ctx); err != nil {
				r.Log.Error().Err(err).Msg("outbox tick failed")
			}
		}
	}
}

// Tick relays one batch of due events.
func (r *Runner) Tick(ctx context.Context) error {
	_ = r.updatePending(ctx)

	batch, err := r.Store.FetchDue(ctx, r.now(), r.batchSize())
	if err != nil {
		return err
	}

	for i := range batch {
		e := &batch[i]
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if r.MaxAttempts > 0 && e.Attempts >= r.MaxAttempts {
			if err := r.Store.MarkSent(ctx, e.ID, r.now(), "max attempts reached"); err != nil {
				return err
			}
			DroppedTotal.Inc()
			r.Log.Warn().Str("id", e.ID).Int("attempts", e.Attempts).Msg("outbox drop (max attempts), marked sent")
			continue
		}

		ok, err := r.Store.Claim(ctx, e, r.now().Add(r.lease()).Truncate(time.Millisecond))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		pubCtx, cancel := context.WithTimeout(ctx, r.publishTimeout())
		err = r.Publisher.Publish(pubCtx, *e)
		cancel()

		if err == nil {
			SentTotal.Inc()
			if err := r.Store.MarkSent(ctx, e.ID, r.now(), ""); err != nil {
				return err
			}
			r.Log.Debug().Str("id", e.ID).Str("type", e.EventType).Msg("outbox event published")
			continue
		}

		PublishErrorsTotal.Inc()
		attempts := e.Attempts + 1
		next := r.now().Add(backoff(attempts, r.BackoffMax)).Truncate(time.Millisecond)
		if err2 := r.Store.MarkFailed(ctx, e.ID, attempts, next, err.Error()); err2 != nil {
			return err2
		}
		r.Log.Error().Err(err).Str("id", e.ID).Str("type", e.EventType).Int("attempts", attempts).Time("next", next).Msg("publish failed -> retry scheduled")
	}
	return nil
}

func (r *Runner) updatePending(ctx context.Context) error {
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	n, err := r.Store.CountPending(ctx2)
	if err != nil {
		return err
	}
	Pending.Set(float64(n))
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *Runner) batchSize() int {
	if r.BatchSize <= 0 {
		return 50
	}
	return r.BatchSize
}

func (r *Runner) lease() time.Duration {
	if r.Lease <= 0 {
		return time.Minute
	}
	return r.Lease
}

func (r *Runner) publishTimeout() time.Duration {
	if r.PublishTimeout <= 0 {
		return 30 * time.Second
	}
	return r.PublishTimeout
}

func backoff(attempt int, max time.Duration) time.Duration {
	sec := math.Pow(2, float64(attempt))
	d := time.Duration(sec) * time.Second
	if d > max {
		return max
	}
	if d < time.Second {
		return time.Second
	}
	return d
}
