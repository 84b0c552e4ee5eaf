package poll

import (
	"time"

	"github.com/benbjohnson/clock"
)

type Options struct {
	// InitialInterval is the delay before the first repoll.
	InitialInterval time.Duration

	// MaxInterval caps the delay between polls.
	MaxInterval time.Duration

	// Clock is the time source for the backoff schedule.
	Clock clock.Clock
}

var DefaultOptions = Options{
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Second,
	Clock:           clock.New(),
}

type Option func(o *Options)

func WithInitialInterval(d time.Duration) Option {
	return func(o *Options) {
		o.InitialInterval = d
	}
}

func WithMaxInterval(d time.Duration) Option {
	return func(o *Options) {
		o.MaxInterval = d
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

func applyOptions(opts ...Option) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	return options
}
