// This file contains the tracing middleware.

package pipeline

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"golang.org/x/xerrors"

	"github.com/sableio/sable/internal/tracing"
)

// Trace returns a middleware opening one span per request on the tracer of
// the given service.
func Trace(service string) (Middleware, error) {
	tracer, err := tracing.GetTracer(service)
	if err != nil {
		return nil, xerrors.Errorf("couldn't get the tracer: %v", err)
	}

	mw := func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, tracer, req.Operation)
			defer span.Finish()

			span.SetTag(tracing.OperationTag, req.Operation)

			resp, err := next.Handle(ctx, req)
			if err != nil {
				ext.Error.Set(span, true)
			}

			return resp, err
		})
	}

	return mw, nil
}
