// This file contains the request id and logging middlewares.

package pipeline

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// HeaderRequestID is the header carrying the request id.
const HeaderRequestID = "X-Request-Id"

// RequestID returns a middleware that assigns a unique id to every request
// that does not already carry one.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.Header.Get(HeaderRequestID) == "" {
				req.Header.Set(HeaderRequestID, xid.New().String())
			}

			return next.Handle(ctx, req)
		})
	}
}

// Logging returns a middleware that reports the outcome of every request to
// the given logger.
func Logging(logger zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()

			resp, err := next.Handle(ctx, req)

			evt := logger.Info()
			if err != nil {
				evt = logger.Err(err)
			}

			evt = evt.
				Str("operation", req.Operation).
				Str("requestID", req.Header.Get(HeaderRequestID)).
				Dur("duration", time.Since(start))

			if resp != nil {
				evt = evt.Int("status", resp.Status)
			}

			evt.Msg("request completed")

			return resp, err
		})
	}
}
