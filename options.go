package cancel

import "github.com/benbjohnson/clock"

// Option configures a token at construction time.
type Option func(t *Token)

// WithClock sets the clock used to compute and evaluate the token's deadline.
// It defaults to the wall clock; pass a clock.Mock in tests to drive deadline
// expiry without sleeping.
func WithClock(c clock.Clock) Option {
	return func(t *Token) {
		t.clock = c
	}
}
