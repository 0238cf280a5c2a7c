package httpfile

import (
	"fmt"
	"net/http"
)

// Request is one request declared in a file.
type Request struct {
	// Name is the text after the "###" separator, or "" if there was none.
	Name   string
	Method string
	URL    string
	Header http.Header
	Body   string
	// Handler is the name of the response handler, or "" if none was declared.
	Handler string
	// Line is the 1-based line number of the request line.
	Line int
}

// Title returns the request name if there is one, or else the request line.
func (r Request) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Method + " " + r.URL
}

// ParseError describes a syntax problem in a file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
