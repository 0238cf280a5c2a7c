package player

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T used by RunTests.
type TestingT interface {
	require.TestingT
	Logf(format string, args ...interface{})
}

type testingLogger struct {
	t TestingT
}

func (l testingLogger) Printf(message string, args ...interface{}) {
	l.t.Logf(message, args...)
}

// RunTests plays the request file at filePath as part of a Go test. The console output
// and failures of every failed step are logged to t, and t fails if any step failed.
func RunTests(t TestingT, filePath string, handlers map[string]Handler) Report {
	p, err := ParseFile(filePath, handlers, testingLogger{t})
	require.NoError(t, err)

	report, err := p.Play(context.Background())
	assert.NoError(t, err)

	if report.TestFailed() {
		for _, step := range report.Steps {
			if !step.Failed() {
				continue
			}
			t.Logf("console of %q:\n%s", step.Request.Title(), step.Output)
			for _, failure := range step.Failures {
				t.Logf("failure:\n%s", failure)
			}
		}
		assert.Fail(t, "at least one test failed")
	}
	return report
}
