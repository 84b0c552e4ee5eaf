package worker

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// PanicError is returned from Group.Wait when a task panicked. It carries the
// recovered value and the stack trace of the panicking goroutine.
type PanicError struct {
	value      any
	stacktrace string
}

var _ error = (*PanicError)(nil)

func newPanicError(value any) *PanicError {
	return &PanicError{
		value:      value,
		stacktrace: string(goerrors.New(value).Stack()),
	}
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", pe.value)
}

// Value returns the value the task panicked with.
func (pe *PanicError) Value() any {
	return pe.value
}

// Stacktrace returns the stack of the panicking goroutine.
func (pe *PanicError) Stacktrace() string {
	return pe.stacktrace
}
