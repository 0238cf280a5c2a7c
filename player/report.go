package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/http-client-tests/framework"
	"github.com/launchdarkly/http-client-tests/httpfile"

	"github.com/fatih/color"
)

// StepResult is the outcome of one request.
type StepResult struct {
	Request httpfile.Request
	// Status is the HTTP status of the response, or 0 if no response was received.
	Status int
	// Output is everything the registry logged, including RUN/PASS/FAILED lines.
	Output   framework.CapturedOutput
	Failures framework.Failures
	// Err is set if the response handler itself failed outside of any test. The player
	// also writes it to Output.
	Err error
}

// Failed returns true if a test failed or the response handler failed.
func (s StepResult) Failed() bool {
	return len(s.Failures) > 0 || s.Err != nil
}

// Report is the outcome of Player.Play.
type Report struct {
	Steps []StepResult
	// Exited is true if a response handler asked the player to stop.
	Exited bool
}

// TestFailed returns true if any step failed.
func (r Report) TestFailed() bool {
	for _, s := range r.Steps {
		if s.Failed() {
			return true
		}
	}
	return false
}

// Print writes a summary of each step to w, followed by the output of failed steps.
// A handler error is printed on its own only if the step has no output, since the
// player already logs it there.
func (r Report) Print(w io.Writer) {
	passed := color.New(color.FgGreen)
	failed := color.New(color.FgRed, color.Bold)

	for _, s := range r.Steps {
		title := s.Request.Title()
		if !s.Failed() {
			passed.Fprint(w, "PASS")
			fmt.Fprintf(w, " %s (%d)\n", title, s.Status)
			continue
		}
		failed.Fprint(w, "FAIL")
		fmt.Fprintf(w, " %s (%d)\n", title, s.Status)
		for _, line := range s.Output.Lines() {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if s.Err != nil && len(s.Output) == 0 {
			for _, line := range strings.Split(s.Err.Error(), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
	if r.Exited {
		fmt.Fprintln(w, "Stopped early by a response handler")
	}
}
