// This file contains the metrics middleware.

package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sableio/sable"
)

// defines prometheus metrics
var (
	promRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sable_pipeline_requests_total",
		Help: "total number of requests per operation and status",
	}, []string{"operation", "status"})

	promDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sable_pipeline_request_duration_seconds",
		Help:    "duration of the requests per operation",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation"})
)

func init() {
	sable.PromCollectors = append(sable.PromCollectors, promRequests, promDuration)
}

// Metrics returns a middleware recording the outcome and duration of every
// request.
func Metrics() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()

			resp, err := next.Handle(ctx, req)

			promDuration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())

			status := "error"
			if err == nil && resp != nil {
				status = strconv.Itoa(resp.Status)
			}

			promRequests.WithLabelValues(req.Operation, status).Inc()

			return resp, err
		})
	}
}
