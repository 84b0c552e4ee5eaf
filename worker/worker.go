// Package worker runs groups of goroutines that share one cancellation
// token. The group never interrupts its tasks; it cancels the shared token
// and relies on tasks polling it.
package worker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cschleiden/go-cancel"
	"github.com/cschleiden/go-cancel/internal/metrickeys"
	im "github.com/cschleiden/go-cancel/internal/metrics"
	"github.com/cschleiden/go-cancel/log"
	"github.com/cschleiden/go-cancel/metrics"
)

// TracerName is the name of the tracer spans for tasks are created with.
const TracerName = "go-cancel"

// Func is a task run by a Group. It receives the group's shared token and is
// expected to poll it and return once the token reports cancellation,
// typically by returning the error from Token.Check.
type Func func(t *cancel.Token) error

// Group runs tasks as goroutines that share a single cancellation token. The
// first task that fails cancels the token, so sibling tasks observe
// cancellation on their next poll. A Group must not be reused after Wait.
type Group struct {
	token *cancel.Token

	eg errgroup.Group

	name    string
	logger  *slog.Logger
	metrics metrics.Client
	tracer  trace.Tracer
}

// New creates a group around the given token. Pass nil to let the group
// create its own token.
func New(t *cancel.Token, opts ...Option) *Group {
	options := ApplyOptions(opts...)

	if t == nil {
		t = cancel.New()
	}

	g := &Group{
		token:   t,
		name:    options.Name,
		logger:  options.Logger.With(slog.String(log.GroupNameKey, options.Name)),
		metrics: options.Metrics.WithTags(metrics.Tags{metrickeys.Group: options.Name}),
		tracer:  options.TracerProvider.Tracer(TracerName),
	}

	if options.MaxParallel > 0 {
		g.eg.SetLimit(options.MaxParallel)
	}

	return g
}

// Go runs fn in a new goroutine. If fn returns an error other than
// cancel.Canceled, or panics, the group's token is canceled. A panic is
// recovered and returned from Wait as a *PanicError.
func (g *Group) Go(fn Func) {
	taskID := uuid.NewString()

	g.eg.Go(func() error {
		_, span := g.tracer.Start(context.Background(), "Task", trace.WithAttributes(
			attribute.String(log.GroupNameKey, g.name),
			attribute.String(log.TaskIDKey, taskID),
		))
		defer span.End()

		g.metrics.Counter(metrickeys.TasksStarted, metrics.Tags{}, 1)
		g.logger.Debug("Starting task", slog.String(log.TaskIDKey, taskID))

		err := g.run(fn)

		switch {
		case err == nil:
			g.metrics.Counter(metrickeys.TasksCompleted, metrics.Tags{}, 1)

		case errors.Is(err, cancel.Canceled):
			// Cooperative exit, not a failure.
			g.metrics.Counter(metrickeys.TasksCanceled, metrics.Tags{}, 1)
			g.logger.Debug("Task canceled", slog.String(log.TaskIDKey, taskID))

		default:
			g.token.Cancel()

			var pe *PanicError
			if errors.As(err, &pe) {
				g.metrics.Counter(metrickeys.TasksPanicked, metrics.Tags{}, 1)
			}
			g.metrics.Counter(metrickeys.TasksFailed, metrics.Tags{}, 1)

			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			g.logger.Error("Task failed", slog.String(log.TaskIDKey, taskID), slog.Any("error", err))
		}

		return err
	})
}

func (g *Group) run(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	return fn(g.token)
}

// Cancel cancels the shared token. Tasks keep running until they observe the
// token on their next poll and return.
func (g *Group) Cancel() {
	g.token.Cancel()
}

// Token returns the token shared by all tasks of the group.
func (g *Group) Token() *cancel.Token {
	return g.token
}

// Wait blocks until all tasks started with Go have returned. It returns the
// first non-nil error, including cancel.Canceled if tasks exited by honoring
// the token.
func (g *Group) Wait() error {
	timer := im.NewTimer(g.metrics, metrickeys.GroupWait, metrics.Tags{})
	defer timer.Stop()

	return g.eg.Wait()
}
