package metrics

import "time"

type Tags map[string]string

// Client receives the metrics this library emits. Implement it to forward
// them to your metrics system of choice; by default they are discarded.
type Client interface {
	Counter(name string, tags Tags, value float64)

	Timing(name string, tags Tags, duration time.Duration)

	// WithTags returns a client instance that adds the given tags to every metric
	WithTags(tags Tags) Client
}
