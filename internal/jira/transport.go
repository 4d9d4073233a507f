package jira

import (
	"context"
	"encoding/json"
	"net/http"
)

// Transport issues authenticated GET requests against a Jira site.
// Paths are site-relative (e.g., "/rest/servicedeskapi/...").
type Transport interface {
	Get(ctx context.Context, path string, header http.Header) (*Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int    // HTTP status code
	StatusText string // Reason phrase (e.g., "Not Found")
	Body       []byte // Raw response body
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
