// This file contains the retry middleware. Transport errors and server
// failures are retried with the given backoff policy; client failures are
// returned immediately.

package pipeline

import (
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/xerrors"
)

// Retry returns a middleware retrying up to max times with an exponential
// backoff.
func Retry(max uint64) Middleware {
	return RetryWith(func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), max)
	})
}

// RetryWith returns a middleware retrying with the policy produced by the
// given factory. A fresh policy is created for every request.
func RetryWith(policy func() backoff.BackOff) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			var resp *Response

			attempt := func() error {
				var err error

				resp, err = next.Handle(ctx, req)
				if err != nil {
					return err
				}

				if resp.Status >= http.StatusInternalServerError {
					return xerrors.Errorf("server replied with status %d", resp.Status)
				}

				return nil
			}

			err := backoff.Retry(attempt, backoff.WithContext(policy(), ctx))
			if err != nil {
				return resp, xerrors.Errorf("request failed: %v", err)
			}

			return resp, nil
		})
	}
}
