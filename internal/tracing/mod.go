// Package tracing maintains the catalog of opentracing tracers used by the
// request pipeline. One tracer is created per service name, configured from
// the jaeger environment variables, and cached for the lifetime of the
// process.
package tracing

import (
	"io"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	_ "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"golang.org/x/xerrors"
)

// OperationTag is the span tag carrying the name of the SDK operation.
const OperationTag = "operation"

type closableTracer struct {
	tracer opentracing.Tracer
	closer io.Closer
}

type catalog struct {
	sync.Mutex

	tracers map[string]closableTracer
}

var tracers = catalog{
	tracers: make(map[string]closableTracer),
}

// GetTracer returns the tracer of the given service, creating it from the
// jaeger environment configuration on first use.
func GetTracer(service string) (opentracing.Tracer, error) {
	tracers.Lock()
	defer tracers.Unlock()

	tc, ok := tracers.tracers[service]
	if ok {
		return tc.tracer, nil
	}

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, xerrors.Errorf("couldn't read the jaeger configuration: %v", err)
	}

	cfg.ServiceName = service

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, xerrors.Errorf("couldn't create the tracer: %v", err)
	}

	tracers.tracers[service] = closableTracer{
		tracer: tracer,
		closer: closer,
	}

	return tracer, nil
}

// CloseAll flushes and closes every cached tracer.
func CloseAll() error {
	tracers.Lock()
	defer tracers.Unlock()

	for service, tc := range tracers.tracers {
		err := tc.closer.Close()
		if err != nil {
			return xerrors.Errorf("couldn't close the tracer of '%s': %v", service, err)
		}

		delete(tracers.tracers, service)
	}

	return nil
}
