package fetch

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "fetch/1.0"
)

// clientConfig holds construction settings for the client.
type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	headers    map[string]string
	scoped     ScopedHeaders
	token      func() string
	errorCodes []int64
	onResponse func(*Response)
	onError    func(error)
	logger     *zap.Logger
	requestIDs bool
	retryCount int
	retryMin   time.Duration
	retryMax   time.Duration
	rateLimit  float64
	transport  http.RoundTripper
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		retryMin:  1 * time.Second,
		retryMax:  30 * time.Second,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the base URL prepended to relative request URLs.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithHeaders seeds the common header scope.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		c.headers = headers
	}
}

// WithHeaderScopes seeds per-verb header scopes.
func WithHeaderScopes(scoped ScopedHeaders) Option {
	return func(c *clientConfig) {
		c.scoped = scoped
	}
}

// WithTokenSource registers a token accessor invoked before each request.
// A non-empty result is set as the Authorization header on that request
// only and never persists to the header table.
func WithTokenSource(source func() string) Option {
	return func(c *clientConfig) {
		c.token = source
	}
}

// WithErrorCodes configures the intercepted body-code set. A response whose
// decoded body carries one of these codes fails with an *APIError. An empty
// or absent set disables interception.
func WithErrorCodes(codes ...int64) Option {
	return func(c *clientConfig) {
		c.errorCodes = codes
	}
}

// WithOnResponse registers an observer invoked with every non-intercepted
// response before it is returned.
func WithOnResponse(fn func(*Response)) Option {
	return func(c *clientConfig) {
		c.onResponse = fn
	}
}

// WithOnError registers an observer invoked with every transport or
// intercepted failure before it propagates.
func WithOnError(fn func(error)) Option {
	return func(c *clientConfig) {
		c.onError = fn
	}
}

// WithLogger sets the structured logger. Default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRequestIDs attaches a generated X-Request-ID header to every request
// that does not already carry one.
func WithRequestIDs() Option {
	return func(c *clientConfig) {
		c.requestIDs = true
	}
}

// WithRetryCount sets the retry count, passed through to the wrapped client.
func WithRetryCount(count int) Option {
	return func(c *clientConfig) {
		c.retryCount = count
	}
}

// WithRetryWait sets the retry backoff bounds, passed through to the
// wrapped client.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *clientConfig) {
		c.retryMin = min
		c.retryMax = max
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative means
// unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *clientConfig) {
		c.rateLimit = rps
	}
}

// WithTransport injects a custom transport, replacing the default
// retry-aware one.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.transport = rt
	}
}
