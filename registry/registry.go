// Package registry keeps track of cancellation tokens for in-flight
// operations, keyed by ID. It lets a layer that did not start an operation,
// such as an HTTP handler or admin tooling, cancel it later by ID.
package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/cschleiden/go-cancel"
	"github.com/cschleiden/go-cancel/log"
)

// Registry is a concurrency-safe map of operation ID to token. Entries can be
// given a TTL; when an entry expires or is pushed out by the capacity limit,
// its token is canceled so the abandoned operation stops itself.
type Registry struct {
	c *ttlcache.Cache[string, *cancel.Token]

	logger *slog.Logger
}

// New creates a registry. Without options entries neither expire nor count
// against a capacity limit; see WithTTL and WithCapacity.
func New(opts ...Option) *Registry {
	options := applyOptions(opts...)

	cacheOpts := []ttlcache.Option[string, *cancel.Token]{
		ttlcache.WithTTL[string, *cancel.Token](options.TTL),
		ttlcache.WithDisableTouchOnHit[string, *cancel.Token](),
	}

	if options.Capacity > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[string, *cancel.Token](options.Capacity))
	}

	c := ttlcache.New(cacheOpts...)

	r := &Registry{
		c:      c,
		logger: options.Logger,
	}

	c.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, i *ttlcache.Item[string, *cancel.Token]) {
		// Explicit removals via Remove, Cancel, or CancelAll also end up
		// here; only evictions the registry decided on cancel the token.
		if reason == ttlcache.EvictionReasonDeleted {
			return
		}

		i.Value().Cancel()

		r.logger.Debug("Canceled evicted operation",
			slog.String(log.OperationIDKey, i.Key()),
			slog.String(log.EvictionReasonKey, evictionReason(reason)),
		)
	})

	return r
}

// Add registers the token under a fresh ID and returns the ID.
func (r *Registry) Add(t *cancel.Token) string {
	id := uuid.NewString()
	r.Register(id, t)

	return id
}

// Register registers the token under the given ID. Registering a second token
// under the same ID replaces the first one without canceling it.
func (r *Registry) Register(id string, t *cancel.Token) {
	r.c.Set(id, t, ttlcache.DefaultTTL)
}

// Get returns the token registered under the given ID.
func (r *Registry) Get(id string) (*cancel.Token, bool) {
	i := r.c.Get(id)
	if i == nil {
		return nil, false
	}

	return i.Value(), true
}

// Cancel cancels the token registered under the given ID and removes the
// registration. It reports whether the ID was registered.
func (r *Registry) Cancel(id string) bool {
	i := r.c.Get(id)
	if i == nil {
		return false
	}

	i.Value().Cancel()
	r.c.Delete(id)

	r.logger.Debug("Canceled operation", slog.String(log.OperationIDKey, id))

	return true
}

// Remove removes the registration without canceling the token. Call this when
// an operation finished normally.
func (r *Registry) Remove(id string) {
	r.c.Delete(id)
}

// CancelAll cancels every registered token and clears the registry. Each
// registration is canceled independently; tokens registered while CancelAll
// runs may be missed.
func (r *Registry) CancelAll() {
	for _, i := range r.c.Items() {
		i.Value().Cancel()
	}

	r.c.DeleteAll()

	r.logger.Debug("Canceled all operations")
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return r.c.Len()
}

// Start runs TTL eviction until ctx is done. Without it entries with a TTL
// are only evicted lazily when accessed.
func (r *Registry) Start(ctx context.Context) {
	go r.c.Start()

	<-ctx.Done()

	r.c.Stop()
}

func evictionReason(reason ttlcache.EvictionReason) string {
	switch reason {
	case ttlcache.EvictionReasonExpired:
		return "expired"
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	default:
		return "deleted"
	}
}
