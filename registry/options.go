package registry

import (
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type Options struct {
	// Capacity limits the number of registrations. When the limit is reached,
	// the least recently registered entry is evicted and its token canceled.
	// Zero means no limit.
	Capacity uint64

	// TTL is how long a registration may stay before it is considered
	// abandoned, evicted, and its token canceled. Zero means registrations
	// never expire. Expiry requires Start to be running.
	TTL time.Duration

	Logger *slog.Logger
}

var DefaultOptions = Options{
	Capacity: 0,
	TTL:      ttlcache.NoTTL,
	Logger:   slog.Default(),
}

type Option func(o *Options)

func WithCapacity(n uint64) Option {
	return func(o *Options) {
		o.Capacity = n
	}
}

func WithTTL(d time.Duration) Option {
	return func(o *Options) {
		o.TTL = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func applyOptions(opts ...Option) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return options
}
