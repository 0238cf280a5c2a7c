package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/launchdarkly/http-client-tests/framework"
	"github.com/launchdarkly/http-client-tests/httpfile"
	"github.com/launchdarkly/http-client-tests/pipes"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
)

// Handler is a response handler. It receives a fresh registry for the step and the
// response, and typically registers tests:
//
//	func checkStatus(client *framework.Registry, res *player.Response) {
//		client.Register("status is 200", func(interface{}) error {
//			client.Assert(res.Status == 200, "Response status is not 200")
//			return nil
//		})
//	}
//
// The registered tests are run after the handler returns.
type Handler func(client *framework.Registry, res *Response)

// Player performs the requests of a file in order.
type Player struct {
	// Dialer, if set, replaces the dialer of the default transport.
	Dialer pipes.DialerFunc

	// Client, if set, is used for all requests and Dialer is ignored.
	Client *http.Client

	requests    []httpfile.Request
	handlers    map[string]Handler
	debugLogger framework.Logger
}

// New creates a Player for already parsed requests. handlers maps the names used in
// "> name" lines to functions. debugLogger receives a line for every request and may
// be nil.
func New(requests []httpfile.Request, handlers map[string]Handler, debugLogger framework.Logger) *Player {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	hs := make(map[string]Handler, len(handlers))
	for name, h := range handlers {
		hs[name] = h
	}
	return &Player{
		requests:    requests,
		handlers:    hs,
		debugLogger: debugLogger,
	}
}

// ParseFile creates a Player for the request file at filePath.
func ParseFile(filePath string, handlers map[string]Handler, debugLogger framework.Logger) (*Player, error) {
	requests, err := httpfile.ParseFile(filePath)
	if err != nil {
		return nil, err
	}
	return New(requests, handlers, debugLogger), nil
}

// ParseString creates a Player for the contents of a request file.
func ParseString(data string, handlers map[string]Handler, debugLogger framework.Logger) (*Player, error) {
	requests, err := httpfile.ParseString(data)
	if err != nil {
		return nil, err
	}
	return New(requests, handlers, debugLogger), nil
}

// Requests returns the requests that will be played.
func (p *Player) Requests() []httpfile.Request {
	return append([]httpfile.Request(nil), p.requests...)
}

// Play performs every request in order and runs the tests of each response handler.
//
// Test failures do not stop the play; they are recorded in the report. A request that
// cannot be performed, or a response handler that is not defined, stops the play and
// returns an error along with the steps completed so far. A handler that calls Exit
// stops the play after its own tests have run.
func (p *Player) Play(ctx context.Context) (Report, error) {
	report := Report{}
	client := p.httpClient()
	for _, req := range p.requests {
		step, exited, err := p.playStep(ctx, client, req)
		if err != nil {
			return report, errors.Wrapf(err, "request %q", req.Title())
		}
		report.Steps = append(report.Steps, step)
		if exited {
			report.Exited = true
			break
		}
	}
	return report, nil
}

func (p *Player) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	cl := &http.Client{}
	if p.Dialer != nil {
		cl.Transport = &http.Transport{
			DialContext: p.Dialer,
		}
	}
	return cl
}

func (p *Player) playStep(ctx context.Context, client *http.Client, req httpfile.Request) (StepResult, bool, error) {
	step := StepResult{Request: req}

	var handler Handler
	if req.Handler != "" {
		handler = p.handlers[req.Handler]
		if handler == nil {
			return step, false, fmt.Errorf("response handler %q is not defined", req.Handler)
		}
	}

	res, err := p.do(ctx, client, req)
	if err != nil {
		return step, false, err
	}
	step.Status = res.Status
	p.debugLogger.Printf("Response status: %d", res.Status)

	if handler == nil {
		return step, false, nil
	}

	output := &framework.CapturingLogger{}
	exited := false
	registry := framework.NewRegistry(output, framework.HostFunc(func() { exited = true }))
	step.Err = callHandler(handler, registry, res)
	if step.Err == nil {
		step.Failures = registry.Run(res)
	} else {
		output.Printf("response handler failed: %s", step.Err)
	}
	step.Output = output.Output()
	return step, exited, nil
}

func (p *Player) do(ctx context.Context, client *http.Client, req httpfile.Request) (*Response, error) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request")
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	p.debugLogger.Printf("Sending request: %s", curlCommand(req))
	httpRes, err := client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer httpRes.Body.Close()
	data, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return &Response{
		Status: httpRes.StatusCode,
		Header: httpRes.Header,
		Body:   string(data),
	}, nil
}

// callHandler converts a panic in the handler, such as a failed Assert outside of any
// test, into an error.
func callHandler(handler Handler, registry *framework.Registry, res *Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("unexpected panic in response handler: %+v\n%s", r, string(debug.Stack()))
		}
	}()
	handler(registry, res)
	return nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand describes a request as an equivalent curl command line.
func curlCommand(req httpfile.Request) string {
	var b commandBuilder
	b.add("curl", "-X", req.Method)
	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range req.Header[name] {
			b.add("-H", name+": "+v)
		}
	}
	if req.Body != "" {
		b.add("--data-raw", req.Body)
	}
	b.add(req.URL)
	return b.String()
}
