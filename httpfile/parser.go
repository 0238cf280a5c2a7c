package httpfile

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	requestSeparator     = "###"
	responseHandlerStart = ">"
	scriptStart          = "{%"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

type section int

const (
	sectionNone section = iota // before the request line
	sectionHeaders
	sectionBody
	sectionDone // after the response handler
)

type parser struct {
	requests []Request
	current  *Request
	name     string
	section  section
	body     []string
}

// ParseFile parses the file at filePath.
func ParseFile(filePath string) ([]Request, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open request file")
	}
	defer f.Close()
	requests, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filePath)
	}
	return requests, nil
}

// ParseString parses the contents of a file.
func ParseString(data string) ([]Request, error) {
	return Parse(strings.NewReader(data))
}

// Parse reads all requests from r. Requests are returned in the order they appear.
func Parse(r io.Reader) ([]Request, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := p.line(lineNum, strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read request file")
	}
	p.finish()
	return p.requests, nil
}

func (p *parser) line(num int, text string) error {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, requestSeparator) {
		p.finish()
		p.name = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		return nil
	}

	if strings.HasPrefix(trimmed, responseHandlerStart) {
		return p.handler(num, strings.TrimSpace(strings.TrimPrefix(trimmed, responseHandlerStart)))
	}

	switch p.section {
	case sectionNone:
		if trimmed == "" || isComment(trimmed) {
			return nil
		}
		return p.requestLine(num, trimmed)

	case sectionHeaders:
		if trimmed == "" {
			p.section = sectionBody
			return nil
		}
		if isComment(trimmed) {
			return nil
		}
		colon := strings.Index(trimmed, ":")
		if colon <= 0 || strings.ContainsAny(strings.TrimSpace(trimmed[:colon]), " \t") {
			return &ParseError{Line: num, Msg: "malformed header: " + trimmed}
		}
		p.current.Header.Add(strings.TrimSpace(trimmed[:colon]), strings.TrimSpace(trimmed[colon+1:]))
		return nil

	case sectionBody:
		p.body = append(p.body, text)
		return nil

	default:
		if trimmed == "" || isComment(trimmed) {
			return nil
		}
		return &ParseError{Line: num, Msg: "unexpected content after response handler (request separator is missing)"}
	}
}

func (p *parser) requestLine(num int, text string) error {
	fields := strings.Fields(text)
	req := Request{
		Name:   p.name,
		Header: make(http.Header),
		Line:   num,
	}
	switch {
	case knownMethods[fields[0]]:
		if len(fields) < 2 {
			return &ParseError{Line: num, Msg: "URL is missing after " + fields[0]}
		}
		req.Method, req.URL = fields[0], fields[1]
		fields = fields[2:]
	case len(fields) == 1 || isHTTPVersion(fields[1]):
		req.Method, req.URL = http.MethodGet, fields[0]
		fields = fields[1:]
	default:
		return &ParseError{Line: num, Msg: "unknown method: " + fields[0]}
	}
	if len(fields) > 1 || (len(fields) == 1 && !isHTTPVersion(fields[0])) {
		return &ParseError{Line: num, Msg: "unexpected text after URL: " + strings.Join(fields, " ")}
	}
	p.current = &req
	p.section = sectionHeaders
	return nil
}

func (p *parser) handler(num int, value string) error {
	if p.current == nil {
		return &ParseError{Line: num, Msg: "response handler declared before request"}
	}
	if p.current.Handler != "" {
		return &ParseError{Line: num, Msg: "response handler is already declared for this request"}
	}
	if strings.HasPrefix(value, scriptStart) {
		return &ParseError{Line: num, Msg: "embedded scripts are not supported"}
	}
	if value == "" || strings.ContainsAny(value, " \t") {
		return &ParseError{Line: num, Msg: "invalid response handler name: " + value}
	}
	p.current.Handler = value
	p.section = sectionDone
	return nil
}

// finish stores the current request. Blank lines before and after the body are
// dropped; blank lines inside it are kept.
func (p *parser) finish() {
	if p.current != nil {
		for len(p.body) > 0 && strings.TrimSpace(p.body[0]) == "" {
			p.body = p.body[1:]
		}
		for len(p.body) > 0 && strings.TrimSpace(p.body[len(p.body)-1]) == "" {
			p.body = p.body[:len(p.body)-1]
		}
		p.current.Body = strings.Join(p.body, "\n")
		p.requests = append(p.requests, *p.current)
	}
	p.current = nil
	p.name = ""
	p.section = sectionNone
	p.body = nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

func isHTTPVersion(s string) bool {
	return strings.HasPrefix(s, "HTTP/")
}
