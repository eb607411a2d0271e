// Package pipeline implements the request/response pipeline driven by
// generated SDK clients. A pipeline wraps a transport handler with an
// ordered middleware chain; features bundle middlewares so that a client
// configuration can install them as one unit.
//
// The pipeline itself knows nothing about wire formats. The serde
// middleware binds a provider so that requests carrying a marshal closure
// are encoded before transmission and responses are decoded into the
// caller's unmarshal closure.
package pipeline

import (
	"context"
	"net/http"

	"golang.org/x/xerrors"

	"github.com/sableio/sable/serde"
	"github.com/sableio/sable/serde/charstream"
)

// Request is one outgoing operation call. The body is either provided
// directly or produced by the serde middleware from the marshal closure.
type Request struct {
	// Operation is the name of the SDK operation, used for logging, metrics
	// and tracing.
	Operation string

	Method string
	Path   string
	Header http.Header
	Body   []byte

	// Marshal produces the request payload when the serde middleware is
	// installed.
	Marshal func(serde.Serializer) error

	// Unmarshal consumes the response payload when the serde middleware is
	// installed.
	Unmarshal func(serde.Deserializer) error
}

// NewRequest returns a request for the given operation with an empty header.
func NewRequest(operation string) *Request {
	return &Request{
		Operation: operation,
		Method:    http.MethodPost,
		Header:    make(http.Header),
	}
}

// Response is the outcome of one operation call.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// HeaderList returns the values of a comma-separated list header, honoring
// quoted entries.
func (r *Response) HeaderList(name string) ([]string, error) {
	raw := r.Header.Get(name)
	if raw == "" {
		return nil, nil
	}

	values, err := charstream.SplitList(raw)
	if err != nil {
		return nil, xerrors.Errorf("couldn't split header '%s': %v", name, err)
	}

	return values, nil
}

// Handler processes one request. The transport at the bottom of the
// pipeline implements it, and every middleware wraps one.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function into a handler.
//
// - implements pipeline.Handler
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handle implements pipeline.Handler. It calls the function.
func (fn HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return fn(ctx, req)
}

// Middleware wraps a handler with additional behavior.
type Middleware func(Handler) Handler

// Feature bundles middlewares so that a client configuration installs them
// as one unit.
type Feature interface {
	Install(p *Pipeline) error
}

// Pipeline composes a middleware chain over a transport handler. The first
// middleware added is the outermost at call time.
type Pipeline struct {
	transport   Handler
	middlewares []Middleware
}

// New returns a pipeline over the given transport.
func New(transport Handler) *Pipeline {
	return &Pipeline{transport: transport}
}

// Use appends middlewares to the chain.
func (p *Pipeline) Use(mws ...Middleware) {
	p.middlewares = append(p.middlewares, mws...)
}

// Install installs a feature.
func (p *Pipeline) Install(f Feature) error {
	err := f.Install(p)
	if err != nil {
		return xerrors.Errorf("couldn't install the feature: %v", err)
	}

	return nil
}

// Handle implements pipeline.Handler. It runs the request through the
// middleware chain and the transport.
func (p *Pipeline) Handle(ctx context.Context, req *Request) (*Response, error) {
	handler := p.transport
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		handler = p.middlewares[i](handler)
	}

	return handler.Handle(ctx, req)
}
