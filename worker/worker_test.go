package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/cschleiden/go-cancel"
	"github.com/cschleiden/go-cancel/internal/metrickeys"
	"github.com/cschleiden/go-cancel/metrics"
)

func TestGroup_AllTasksComplete(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(nil)

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		g.Go(func(token *cancel.Token) error {
			ran.Add(1)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, int32(3), ran.Load())
	require.False(t, g.Token().WasCanceled())
}

func TestGroup_SharesProvidedToken(t *testing.T) {
	token := cancel.New()
	g := New(token)

	require.Same(t, token, g.Token())

	g.Go(func(tk *cancel.Token) error {
		require.Same(t, token, tk)
		return nil
	})

	require.NoError(t, g.Wait())
}

func TestGroup_FirstErrorCancelsSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(nil)

	errBoom := errors.New("boom")

	// Polls until the failing task cancels the shared token.
	observed := make(chan struct{})
	g.Go(func(token *cancel.Token) error {
		for !token.IsCanceled() {
			time.Sleep(time.Millisecond)
		}
		close(observed)
		return nil
	})

	g.Go(func(token *cancel.Token) error {
		return errBoom
	})

	err := g.Wait()
	require.ErrorIs(t, err, errBoom)

	<-observed
	require.True(t, g.Token().WasCanceled())
}

func TestGroup_CancelStopsPollingTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(nil)

	for i := 0; i < 2; i++ {
		g.Go(func(token *cancel.Token) error {
			for {
				if err := token.Check(); err != nil {
					return err
				}
				time.Sleep(time.Millisecond)
			}
		})
	}

	g.Cancel()

	require.ErrorIs(t, g.Wait(), cancel.Canceled)
}

func TestGroup_PanicBecomesError(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(nil)

	g.Go(func(token *cancel.Token) error {
		panic("kaboom")
	})

	err := g.Wait()

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "kaboom", pe.Value())
	require.Contains(t, pe.Error(), "kaboom")
	require.NotEmpty(t, pe.Stacktrace())

	require.True(t, g.Token().WasCanceled())
}

func TestGroup_MaxParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := New(nil, WithMaxParallel(1))

	var running, maxRunning atomic.Int32
	for i := 0; i < 4; i++ {
		g.Go(func(token *cancel.Token) error {
			n := running.Add(1)
			defer running.Add(-1)

			for {
				m := maxRunning.Load()
				if n <= m || maxRunning.CompareAndSwap(m, n) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, int32(1), maxRunning.Load())
}

func TestGroup_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	g := New(nil, WithName("traced"), WithTracerProvider(tp))

	errBoom := errors.New("boom")

	g.Go(func(token *cancel.Token) error {
		return nil
	})
	g.Go(func(token *cancel.Token) error {
		return errBoom
	})

	require.ErrorIs(t, g.Wait(), errBoom)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	var failed int
	for _, span := range spans {
		require.Equal(t, "Task", span.Name)

		if span.Status.Code == codes.Error {
			failed++
			require.Equal(t, "boom", span.Status.Description)
			require.NotEmpty(t, span.Events)
		}
	}

	require.Equal(t, 1, failed)
}

type recordingMetricsClient struct {
	mu       sync.Mutex
	counters map[string]float64
}

func (c *recordingMetricsClient) Counter(name string, tags metrics.Tags, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[name] += value
}

func (c *recordingMetricsClient) Timing(name string, tags metrics.Tags, duration time.Duration) {
}

func (c *recordingMetricsClient) WithTags(tags metrics.Tags) metrics.Client {
	return c
}

func TestGroup_Metrics(t *testing.T) {
	mc := &recordingMetricsClient{counters: map[string]float64{}}

	g := New(nil, WithMetrics(mc))

	g.Go(func(token *cancel.Token) error {
		return nil
	})
	g.Go(func(token *cancel.Token) error {
		return errors.New("boom")
	})

	require.Error(t, g.Wait())

	mc.mu.Lock()
	defer mc.mu.Unlock()
	require.Equal(t, float64(2), mc.counters[metrickeys.TasksStarted])
	require.Equal(t, float64(1), mc.counters[metrickeys.TasksCompleted])
	require.Equal(t, float64(1), mc.counters[metrickeys.TasksFailed])
}
