package fetch

import "fmt"

// APIError is synthesized when a decoded response body carries a code that
// is in the client's intercepted set. The call fails with the body's
// message even though the transport-level response was successful.
type APIError struct {
	Code    int64
	Message string
	Payload map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// StatusError is returned for non-2xx responses from the wrapped client.
// Body retains the raw payload; Message carries the server-supplied message
// when the body was decodable.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Status)
}

// TransportError wraps a network-level failure (connect, timeout, canceled
// context) produced by the underlying client.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
