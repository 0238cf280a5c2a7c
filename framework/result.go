package framework

import (
	"fmt"
)

// TestFailure records a failed test and the error that failed it.
type TestFailure struct {
	Name string
	Err  error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.Name, f.Err)
}

func (f TestFailure) Unwrap() error {
	return f.Err
}

// Failures is the ordered list of failures returned by Registry.Run.
type Failures []TestFailure

// OK returns true if no test failed.
func (f Failures) OK() bool {
	return len(f) == 0
}

// Err returns nil if no test failed, or ErrTestFailed otherwise. The details of each
// failure have already been written to the registry's output by then.
func (f Failures) Err() error {
	if f.OK() {
		return nil
	}
	return ErrTestFailed
}

// Names returns the names of the failed tests.
func (f Failures) Names() []string {
	ret := make([]string, 0, len(f))
	for _, tf := range f {
		ret = append(ret, tf.Name)
	}
	return ret
}

// Messages returns the error text of each failure.
func (f Failures) Messages() []string {
	ret := make([]string, 0, len(f))
	for _, tf := range f {
		ret = append(ret, tf.Err.Error())
	}
	return ret
}
