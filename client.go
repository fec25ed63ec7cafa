package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alkaid-labs/fetch/form"
	"github.com/alkaid-labs/fetch/internal/id"
)

// Client wraps resty with an instance-scoped header table, token
// injection, precision-safe decoding, and body-code interception.
type Client struct {
	resty      *resty.Client
	limiter    *rate.Limiter
	headers    *headerTable
	token      func() string
	errorCodes map[int64]struct{}
	onResponse func(*Response)
	onError    func(error)
	logger     *zap.Logger
	requestIDs bool
	ids        *id.Generator
}

// New creates a client. Transport, retries, redirects, and TLS remain the
// wrapped client's responsibility; construction only passes configuration
// through to it.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL != "" {
		if _, err := url.Parse(cfg.baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	transport := cfg.transport
	if transport == nil {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = cfg.retryCount
		retryClient.RetryWaitMin = cfg.retryMin
		retryClient.RetryWaitMax = cfg.retryMax
		retryClient.Logger = nil
		transport = retryClient.HTTPClient.Transport
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.baseURL).
		SetTimeout(cfg.timeout).
		SetRetryCount(cfg.retryCount).
		SetRetryWaitTime(cfg.retryMin).
		SetRetryMaxWaitTime(cfg.retryMax).
		SetHeader("User-Agent", cfg.userAgent)
	restyClient.SetTransport(transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.rateLimit), int(cfg.rateLimit)+1)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	codes := make(map[int64]struct{}, len(cfg.errorCodes))
	for _, code := range cfg.errorCodes {
		codes[code] = struct{}{}
	}

	c := &Client{
		resty:      restyClient,
		limiter:    limiter,
		headers:    newHeaderTable(),
		token:      cfg.token,
		errorCodes: codes,
		onResponse: cfg.onResponse,
		onError:    cfg.onError,
		logger:     logger,
		requestIDs: cfg.requestIDs,
		ids:        id.NewGenerator(),
	}

	if len(cfg.headers) > 0 {
		seed := make(Headers, len(cfg.headers))
		for k, v := range cfg.headers {
			seed[k] = String(v)
		}
		c.SetGlobalHeaders(seed)
	}
	if len(cfg.scoped) > 0 {
		c.SetScopedHeaders(cfg.scoped)
	}

	return c, nil
}

// Request dispatches a call through the full pipeline: header merge, token
// injection, normalization, encoding, rate limiting, decoding, and
// body-code interception.
func (c *Client) Request(ctx context.Context, req Request) (*Response, error) {
	r, err := c.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dispatching request",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
	)

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, c.fail(&TransportError{URL: req.URL, Err: err})
	}
	if !resp.IsSuccess() {
		return nil, c.fail(statusError(resp))
	}

	out := &Response{Response: resp}
	if !req.Binary {
		out.Data = decodeBody(resp.Body())
		if err := c.intercept(out); err != nil {
			return nil, c.fail(err)
		}
	}

	if c.onResponse != nil {
		c.onResponse(out)
	}
	return out, nil
}

// Get issues a GET with flattened query parameters.
func (c *Client) Get(ctx context.Context, url string, params map[string]any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodGet, URL: url, Query: params})
}

// Post issues a POST with data encoded as a multipart form.
func (c *Client) Post(ctx context.Context, url string, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodPost, URL: url, Body: data, AsForm: true})
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodPost, URL: url, Body: data})
}

// ExportPost issues a form POST whose response is treated as binary: no
// decoding and no body-code interception.
func (c *Client) ExportPost(ctx context.Context, url string, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodPost, URL: url, Body: data, AsForm: true, Binary: true})
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, url string, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodPut, URL: url, Body: data})
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, url string, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodPatch, URL: url, Body: data})
}

// Delete issues a DELETE carrying both query parameters and a JSON body.
func (c *Client) Delete(ctx context.Context, url string, params map[string]any, data any) (*Response, error) {
	return c.Request(ctx, Request{Method: http.MethodDelete, URL: url, Query: params, Body: data})
}

// Download issues a form POST and streams the response to path. The
// partial file is removed on failure.
func (c *Client) Download(ctx context.Context, url string, data any, path string) error {
	req := Request{Method: http.MethodPost, URL: url, Body: data, AsForm: true, Binary: true}
	r, err := c.prepare(ctx, &req)
	if err != nil {
		return err
	}
	r.SetOutput(path)

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		os.Remove(path)
		return c.fail(&TransportError{URL: url, Err: err})
	}
	if !resp.IsSuccess() {
		os.Remove(path)
		return c.fail(&StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()})
	}
	return nil
}

// prepare runs the pre-dispatch pipeline steps and builds the underlying
// request.
func (c *Client) prepare(ctx context.Context, req *Request) (*resty.Request, error) {
	req.normalize()

	r := c.resty.R().SetContext(ctx)
	r.SetHeaders(c.headers.forMethod(req.Method))
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}

	// Token applies to this request only, never to the header table
	if c.token != nil {
		if token := c.token(); token != "" {
			r.SetHeader("Authorization", token)
		}
	}
	if c.requestIDs && r.Header.Get("X-Request-ID") == "" {
		r.SetHeader("X-Request-ID", c.ids.NewRequestID().String())
	}

	if len(req.Query) > 0 {
		r.SetQueryParams(form.Values(req.Query))
	}

	switch {
	case req.Form != nil:
		body, contentType, err := form.Build(req.Form)
		if err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
		r.SetHeader("Content-Type", contentType)
		r.SetBody(body.Bytes())
	case req.AsForm && !isReadMethod(req.Method):
		body, contentType, err := form.Build(form.Fields(req.Body))
		if err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
		r.SetHeader("Content-Type", contentType)
		r.SetBody(body.Bytes())
	case req.Body != nil && !isReadMethod(req.Method):
		payload, err := sonic.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(payload)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return r, nil
}

// intercept fails the call when the decoded body carries a configured
// code. An empty code set disables interception entirely.
func (c *Client) intercept(resp *Response) error {
	if len(c.errorCodes) == 0 {
		return nil
	}
	payload, ok := resp.Data.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := payload["code"]
	if !ok {
		return nil
	}
	code, ok := toCode(raw)
	if !ok {
		return nil
	}
	if _, hit := c.errorCodes[code]; !hit {
		return nil
	}

	message := "unknown error"
	if m, ok := payload["message"].(string); ok && m != "" {
		message = m
	}
	return &APIError{Code: code, Message: message, Payload: payload}
}

func (c *Client) fail(err error) error {
	c.logger.Warn("request failed", zap.Error(err))
	if c.onError != nil {
		c.onError(err)
	}
	return err
}

func statusError(resp *resty.Response) *StatusError {
	e := &StatusError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}
	if data, ok := decodeBody(resp.Body()).(map[string]any); ok {
		if msg, ok := data["message"].(string); ok {
			e.Message = msg
		}
	}
	return e
}

func toCode(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
