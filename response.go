package fetch

import (
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// numberAPI decodes with json.Number so integers beyond float64's safe
// range keep their exact decimal representation.
var numberAPI = sonic.Config{UseNumber: true}.Froze()

// Response wraps the underlying client's response unchanged and adds the
// decoded body. Data is nil for binary requests; when the body is not
// valid JSON, Data holds the raw payload as a string.
type Response struct {
	*resty.Response

	Data any
}

// Into decodes the raw response body into v.
func (r *Response) Into(v any) error {
	return sonic.Unmarshal(r.Body(), v)
}

func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := numberAPI.Unmarshal(raw, &v); err != nil {
		// Malformed bodies fall back to the raw payload
		return string(raw)
	}
	return v
}
