package fetch

import (
	"net/http"
	"strings"

	"github.com/alkaid-labs/fetch/form"
)

// Request describes one HTTP call. It is created per call and discarded
// after the call resolves.
type Request struct {
	Method string
	URL    string

	// Query parameters, flattened the same way form bodies are.
	Query map[string]any

	// Body is the structured payload. Encoded as multipart form when
	// AsForm is set, JSON otherwise.
	Body   any
	AsForm bool

	// Form is a prepared field list, sent as-is when non-nil. Takes
	// precedence over Body.
	Form []form.Field

	// Per-request header overrides, applied after the header table.
	Headers map[string]string

	// Binary skips response decoding and body-code interception.
	Binary bool
}

func isReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// normalize guarantees read requests carry a query container and write
// requests carry a body container, unless a prepared form is supplied.
func (r *Request) normalize() {
	r.Method = strings.ToUpper(r.Method)
	if isReadMethod(r.Method) {
		if r.Query == nil {
			r.Query = map[string]any{}
		}
		return
	}
	if r.Body == nil && r.Form == nil {
		if r.AsForm {
			r.Form = []form.Field{}
		} else {
			r.Body = map[string]any{}
		}
	}
}
