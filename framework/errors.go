package framework

import (
	"errors"
	"fmt"
)

// ErrTestFailed is the aggregate error returned by Failures.Err when at least one
// test failed.
var ErrTestFailed = errors.New("Test failed.")

var errTestAborted = errors.New("test panicked with a nil value or exited without returning")

// AssertionError is produced by Registry.Assert when its condition is false.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

// CallbackError is any test failure that did not come from Registry.Assert: either an
// error returned by the test callback or a panic inside it.
type CallbackError struct {
	// Err is the returned error, or the panic value if it was an error.
	Err error

	// Panic is the recovered value, or nil if the callback returned an error.
	Panic interface{}

	// Stack is the stack trace at the time of the panic, if any.
	Stack []byte
}

func (e *CallbackError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("unexpected panic in test: %+v", e.Panic)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// IsAssertion reports whether err is, or wraps, an *AssertionError.
func IsAssertion(err error) bool {
	var a *AssertionError
	return errors.As(err, &a)
}
