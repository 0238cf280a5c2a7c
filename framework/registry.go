package framework

import (
	"fmt"
	"runtime/debug"
)

// TestFunc is a test callback. It receives the run context that was passed to Run.
//
// A test fails if it returns a non-nil error, if it calls Registry.Assert with a false
// condition, or if it panics.
type TestFunc func(runContext interface{}) error

// TestCase is a single registered test.
type TestCase struct {
	Name     string
	Callback TestFunc
}

// Registry holds an ordered list of tests and runs them against a run context.
//
// A Registry is owned by one session and is not safe for concurrent use.
type Registry struct {
	tests  []TestCase
	output Logger
	host   Host
}

// NewRegistry creates an empty Registry. Log output, including the RUN/PASS/FAILED
// lines produced by Run, is written to output; Exit is delegated to host. Either may
// be nil.
func NewRegistry(output Logger, host Host) *Registry {
	if output == nil {
		output = NullLogger()
	}
	if host == nil {
		host = NullHost()
	}
	return &Registry{
		tests:  []TestCase{},
		output: output,
		host:   host,
	}
}

// Register adds a test. Names are not validated and do not need to be unique.
func (r *Registry) Register(name string, callback TestFunc) {
	r.tests = append(r.tests, TestCase{Name: name, Callback: callback})
}

// Assert fails the current test with an *AssertionError carrying message if condition
// is false.
//
// Like require.FailNow, it does not return when it fails, so it must only be called
// from the goroutine that is running the test.
func (r *Registry) Assert(condition bool, message string) {
	if !condition {
		panic(&AssertionError{Message: message})
	}
}

// Log writes a message to the output.
func (r *Registry) Log(message string) {
	r.output.Printf("%s", message)
}

// Exit asks the host to terminate the current session.
func (r *Registry) Exit() {
	r.host.Exit()
}

// Tests returns a copy of the registered tests in registration order.
func (r *Registry) Tests() []TestCase {
	return append([]TestCase(nil), r.tests...)
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	return len(r.tests)
}

// Run executes every registered test in order, passing runContext to each one, and
// returns the failures in the same order. A failed test never prevents the following
// tests from running. The returned list is empty, not nil, if everything passed.
//
// Each test runs on a goroutine of its own, but Run waits for it to finish before
// starting the next one, so tests never run concurrently. A test that panics with a
// nil value or exits its goroutine without returning is counted as failed.
//
// Tests registered while Run is in progress are not executed until the next call.
func (r *Registry) Run(runContext interface{}) Failures {
	failures := Failures{}
	for _, tc := range r.Tests() {
		r.Log("RUN: " + tc.Name)
		if err := runTest(tc, runContext); err != nil {
			r.Log("FAILED: " + tc.Name)
			r.Log(err.Error())
			failures = append(failures, TestFailure{Name: tc.Name, Err: err})
			continue
		}
		r.Log("PASS: " + tc.Name)
	}
	return failures
}

// runTest calls the test on its own goroutine and waits for it, so that a callback
// which calls runtime.Goexit (for instance require.FailNow on a *testing.T) fails the
// test instead of ending the run.
func runTest(tc TestCase, runContext interface{}) error {
	done := make(chan error, 1)
	go func() {
		var err error
		completed := false
		defer func() {
			if p := recover(); p != nil {
				err = failureFromPanic(p)
			} else if !completed {
				err = &CallbackError{Err: errTestAborted, Stack: debug.Stack()}
			}
			done <- err
		}()
		err = callTest(tc, runContext)
		completed = true
	}()
	return <-done
}

func callTest(tc TestCase, runContext interface{}) error {
	if tc.Callback == nil {
		return &CallbackError{Err: fmt.Errorf("test %q has no callback", tc.Name)}
	}
	if cbErr := tc.Callback(runContext); cbErr != nil {
		if a, ok := cbErr.(*AssertionError); ok {
			return a
		}
		return &CallbackError{Err: cbErr}
	}
	return nil
}

func failureFromPanic(p interface{}) error {
	switch v := p.(type) {
	case *AssertionError:
		return v
	case error:
		return &CallbackError{Err: v, Panic: p, Stack: debug.Stack()}
	default:
		return &CallbackError{Panic: p, Stack: debug.Stack()}
	}
}
