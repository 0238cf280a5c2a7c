package player

import (
	"mime"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the run context passed to every test of a step.
type Response struct {
	Status int
	Header http.Header
	Body   string
}

// JSON parses the body as JSON. It returns a null value if the body is empty or is not
// valid JSON.
func (r *Response) JSON() ldvalue.Value {
	if r.Body == "" {
		return ldvalue.Null()
	}
	return ldvalue.Parse([]byte(r.Body))
}

// ContentType returns the media type of the response without parameters, or "" if
// the header is missing or malformed.
func (r *Response) ContentType() string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}
