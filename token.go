// Package cancel provides a Token for cooperatively signaling that an
// operation should stop, either because a holder asked for cancellation or
// because a deadline passed.
//
// Cancellation is cooperative: the code performing the operation has to poll
// the token at reasonable intervals and stop itself once the token reports
// cancellation. Nothing is interrupted forcibly, and the token offers no
// wakeup channel; see the poll package for ready-made polling loops.
//
//	func process(token *cancel.Token) error {
//		for {
//			if err := token.Check(); err != nil {
//				return err
//			}
//
//			// process the next piece of work
//		}
//	}
//
//	func run() error {
//		token := cancel.WithTimeout(10 * time.Second)
//		return process(token)
//	}
package cancel

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Token tracks whether an operation should stop. It holds a cancellation flag
// and an optional deadline fixed at construction. The zero value is a valid
// token without a deadline.
//
// A token is shared by pointer between the party performing an operation and
// the parties that may cancel it. All methods are safe for concurrent use;
// once a token is canceled it stays canceled, there is no way back.
type Token struct {
	canceled atomic.Bool

	// Immutable after construction.
	deadline    time.Time
	hasDeadline bool
	clock       clock.Clock
}

// New returns a token without a deadline. It reports cancellation only once
// Cancel has been called.
func New(opts ...Option) *Token {
	return newToken(opts)
}

// WithTimeout returns a token whose deadline is d from now, computed once at
// construction time. The token reports cancellation once Cancel has been
// called, or once a deadline-checking query runs after the deadline passed.
// A non-positive d yields a deadline that is already due.
func WithTimeout(d time.Duration, opts ...Option) *Token {
	t := newToken(opts)
	t.deadline = t.clock.Now().Add(d)
	t.hasDeadline = true
	return t
}

// WithDeadline returns a token with the given deadline. The token reports
// cancellation once Cancel has been called, or once a deadline-checking query
// runs after the deadline passed.
func WithDeadline(at time.Time, opts ...Option) *Token {
	t := newToken(opts)
	t.deadline = at
	t.hasDeadline = true
	return t
}

func newToken(opts []Option) *Token {
	t := &Token{
		clock: clock.New(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Cancel marks the token as canceled. It is idempotent and safe to call from
// any number of goroutines at once, including restricted contexts such as the
// goroutine draining an os/signal channel: it performs a single atomic store,
// does not allocate, does not block, and cannot fail.
func (t *Token) Cancel() {
	t.canceled.Store(true)
}

// WasCanceled reports whether the token is marked as canceled, without
// evaluating the deadline. It is meant for code that initiated an operation
// and wants to inspect the outcome afterwards. The code performing the
// operation should use IsCanceled or Check instead, which also detect
// deadline expiry.
func (t *Token) WasCanceled() bool {
	return t.canceled.Load()
}

// IsCanceled reports whether the operation guarded by the token should stop.
// If a deadline is set and the clock has moved past it, the token is marked
// as canceled as a side effect, so every later query takes the fast path.
// Before the deadline a call costs an atomic load plus one clock reading.
func (t *Token) IsCanceled() bool {
	if t.canceled.Load() {
		return true
	}

	if t.hasDeadline && t.clock.Now().After(t.deadline) {
		t.canceled.Store(true)
		return true
	}

	return false
}

// Check returns Canceled if the token is canceled and nil otherwise. Like
// IsCanceled it latches deadline expiry; the two can never disagree. Check is
// the entry point for propagating cancellation as an error:
//
//	if err := token.Check(); err != nil {
//		return err
//	}
func (t *Token) Check() error {
	if t.IsCanceled() {
		return Canceled
	}

	return nil
}

// Deadline returns the token's deadline and whether one is set.
func (t *Token) Deadline() (time.Time, bool) {
	return t.deadline, t.hasDeadline
}
