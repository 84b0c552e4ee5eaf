// Package poll provides polling loops for code that works with cancellation
// tokens. The token itself never notifies anyone; these helpers run the poll
// loop that cooperative code would otherwise write by hand.
package poll

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cschleiden/go-cancel"
)

// Every runs fn once per interval until the token is canceled, fn returns an
// error, or ctx is done. The token is checked before every run, so fn never
// executes on a canceled token. It returns cancel.Canceled once the token
// reports cancellation, fn's error if fn fails first, or ctx.Err() if the
// context ends the loop.
func Every(ctx context.Context, t *cancel.Token, interval time.Duration, fn func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := t.Check(); err != nil {
			return err
		}

		if err := fn(); err != nil {
			return err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// UntilCanceled blocks until the token reports cancellation, polling
// IsCanceled on an exponential backoff schedule. It returns nil once the
// token is canceled, or ctx.Err() if ctx is done first. It is meant for a
// supervising party that wants to observe cancellation without busy-looping;
// the token gains no wakeup machinery, the loop simply runs here instead of
// at the call site.
func UntilCanceled(ctx context.Context, t *cancel.Token, opts ...Option) error {
	options := applyOptions(opts...)

	b := backoff.ExponentialBackOff{
		InitialInterval:     options.InitialInterval,
		MaxInterval:         options.MaxInterval,
		Multiplier:          1.5,
		RandomizationFactor: 0.5,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               options.Clock,
	}
	b.Reset()

	ticker := backoff.NewTicker(&b)
	defer ticker.Stop()

	for {
		if t.IsCanceled() {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
