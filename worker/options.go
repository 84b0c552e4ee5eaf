package worker

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	im "github.com/cschleiden/go-cancel/internal/metrics"
	"github.com/cschleiden/go-cancel/metrics"
)

type Options struct {
	// Name identifies the group in logs, spans, and metric tags.
	Name string

	// MaxParallel limits the number of tasks running at the same time. Zero
	// means no limit.
	MaxParallel int

	Logger *slog.Logger

	Metrics metrics.Client

	TracerProvider trace.TracerProvider
}

var DefaultOptions = Options{
	Name:           "default",
	Logger:         slog.Default(),
	Metrics:        im.NewNoopMetricsClient(),
	TracerProvider: trace.NewNoopTracerProvider(),
}

type Option func(o *Options)

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

func WithMaxParallel(n int) Option {
	return func(o *Options) {
		o.MaxParallel = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetrics(client metrics.Client) Option {
	return func(o *Options) {
		o.Metrics = client
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		o.TracerProvider = tp
	}
}

func ApplyOptions(opts ...Option) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return options
}
