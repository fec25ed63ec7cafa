// Package metrics instruments the client's observer hooks with Prometheus
// collectors.
//
// A Recorder plugs straight into the client's construction options:
//
//	rec := metrics.New()
//	client, err := fetch.New(
//		fetch.WithOnResponse(rec.OnResponse),
//		fetch.WithOnError(rec.OnError),
//	)
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alkaid-labs/fetch"
)

// Recorder holds the client-side request metrics.
type Recorder struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	FailuresTotal   *prometheus.CounterVec
}

// New creates a recorder registered on the default registerer.
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a recorder registered on reg.
func NewWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_requests_total",
				Help: "Total number of completed HTTP requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fetch_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fetch_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_failures_total",
				Help: "Total number of failed HTTP requests by failure kind",
			},
			[]string{"kind"},
		),
	}
}

// OnResponse records one successful request.
func (r *Recorder) OnResponse(resp *fetch.Response) {
	method := resp.Request.Method
	r.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(resp.Time().Seconds())
	r.ResponseSize.WithLabelValues(method).Observe(float64(len(resp.Body())))
}

// OnError records one failure, labeled by error kind.
func (r *Recorder) OnError(err error) {
	r.FailuresTotal.WithLabelValues(kind(err)).Inc()
}

func kind(err error) string {
	var apiErr *fetch.APIError
	var statusErr *fetch.StatusError
	var transportErr *fetch.TransportError
	switch {
	case errors.As(err, &apiErr):
		return "api"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &transportErr):
		return "transport"
	}
	return "other"
}
