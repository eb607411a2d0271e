package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/sableio/sable/serde"
	"github.com/sableio/sable/serde/json"
)

func TestPipeline_MiddlewareOrder(t *testing.T) {
	calls := []string{}

	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
				calls = append(calls, name)
				return next.Handle(ctx, req)
			})
		}
	}

	p := New(okTransport(nil))
	p.Use(tag("outer"), tag("inner"))

	_, err := p.Handle(context.Background(), NewRequest("op"))
	require.NoError(t, err)
	require.Equal(t, []string{"outer", "inner"}, calls)
}

func TestRequestID(t *testing.T) {
	var seen string

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		seen = req.Header.Get(HeaderRequestID)
		return &Response{Status: http.StatusOK, Header: make(http.Header)}, nil
	})

	p := New(transport)
	p.Use(RequestID())

	_, err := p.Handle(context.Background(), NewRequest("op"))
	require.NoError(t, err)
	require.NotEmpty(t, seen)

	// A caller-provided id is kept.
	req := NewRequest("op")
	req.Header.Set(HeaderRequestID, "fixed")

	_, err = p.Handle(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "fixed", seen)
}

func TestLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := zerolog.New(buf)

	p := New(okTransport(nil))
	p.Use(Logging(logger))

	_, err := p.Handle(context.Background(), NewRequest("ListThings"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"operation":"ListThings"`)
	require.Contains(t, buf.String(), `"status":200`)
}

func TestSerde_RoundTrip(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("name", serde.KindString)).
		Build()

	var sent []byte
	var contentType string

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		sent = req.Body
		contentType = req.Header.Get("Content-Type")

		return &Response{
			Status: http.StatusOK,
			Header: make(http.Header),
			Body:   []byte(`{"name":"sable"}`),
		}, nil
	})

	p := New(transport)
	p.Use(Serde(json.NewProvider()))

	req := NewRequest("GetThing")
	req.Marshal = func(ser serde.Serializer) error {
		st, err := ser.BeginStruct(obj)
		if err != nil {
			return err
		}
		if err := st.StringField(obj.Fields()[0], "query"); err != nil {
			return err
		}
		return st.EndStruct()
	}

	var name string
	req.Unmarshal = func(deser serde.Deserializer) error {
		it, err := deser.DeserializeStruct(obj)
		if err != nil {
			return err
		}

		for {
			index, err := it.FindNextFieldIndex()
			if err != nil {
				return err
			}

			switch index {
			case serde.ExhaustedIndex:
				return nil
			case 0:
				name, err = it.ReadString()
				if err != nil {
					return err
				}
			default:
				if err := it.SkipValue(); err != nil {
					return err
				}
			}
		}
	}

	resp, err := p.Handle(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, `{"name":"query"}`, string(sent))
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "sable", name)
}

func TestSerde_MarshalError(t *testing.T) {
	p := New(okTransport(nil))
	p.Use(Serde(json.NewProvider()))

	req := NewRequest("op")
	req.Marshal = func(serde.Serializer) error {
		return xerrors.New("oops")
	}

	_, err := p.Handle(context.Background(), req)
	require.EqualError(t, err, "couldn't serialize the request: oops")
}

func TestGzip(t *testing.T) {
	payload := []byte(`{"name":"sable"}`)

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		require.Equal(t, "gzip", req.Header.Get("Content-Encoding"))

		inflated, err := inflate(req.Body)
		require.NoError(t, err)
		require.Equal(t, payload, inflated)

		body, err := compress([]byte("pong"))
		require.NoError(t, err)

		header := make(http.Header)
		header.Set("Content-Encoding", "gzip")

		return &Response{Status: http.StatusOK, Header: header, Body: body}, nil
	})

	p := New(transport)
	p.Use(Gzip())

	req := NewRequest("op")
	req.Body = payload

	resp, err := p.Handle(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []byte("pong"), resp.Body)
	require.Empty(t, resp.Header.Get("Content-Encoding"))
}

func TestRetry_TransportError(t *testing.T) {
	failures := 2
	calls := 0

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		if calls <= failures {
			return nil, xerrors.New("connection reset")
		}

		return &Response{Status: http.StatusOK, Header: make(http.Header)}, nil
	})

	p := New(transport)
	p.Use(RetryWith(instantRetries(5)))

	resp, err := p.Handle(context.Background(), NewRequest("op"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, 3, calls)
}

func TestRetry_ServerStatus(t *testing.T) {
	calls := 0

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return &Response{Status: http.StatusServiceUnavailable, Header: make(http.Header)}, nil
	})

	p := New(transport)
	p.Use(RetryWith(instantRetries(2)))

	resp, err := p.Handle(context.Background(), NewRequest("op"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "server replied with status 503")
	require.Equal(t, 3, calls)

	// The last response is still returned for inspection.
	require.NotNil(t, resp)
	require.Equal(t, http.StatusServiceUnavailable, resp.Status)
}

func TestRetry_ClientStatusNotRetried(t *testing.T) {
	calls := 0

	transport := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		calls++
		return &Response{Status: http.StatusBadRequest, Header: make(http.Header)}, nil
	})

	p := New(transport)
	p.Use(RetryWith(instantRetries(5)))

	resp, err := p.Handle(context.Background(), NewRequest("op"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, 1, calls)
}

func TestMetrics(t *testing.T) {
	p := New(okTransport(nil))
	p.Use(Metrics())

	before := testutil.ToFloat64(promRequests.WithLabelValues("CountThings", "200"))

	_, err := p.Handle(context.Background(), NewRequest("CountThings"))
	require.NoError(t, err)

	after := testutil.ToFloat64(promRequests.WithLabelValues("CountThings", "200"))
	require.Equal(t, before+1, after)
}

func TestResponse_HeaderList(t *testing.T) {
	header := make(http.Header)
	header.Set("X-Tags", `a, "b, with comma", c`)

	resp := &Response{Status: http.StatusOK, Header: header}

	values, err := resp.HeaderList("X-Tags")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b, with comma", "c"}, values)

	values, err = resp.HeaderList("X-Missing")
	require.NoError(t, err)
	require.Nil(t, values)
}

func TestStandardFeature(t *testing.T) {
	transport := okTransport([]byte(`{"ok":true}`))

	p := New(transport)

	err := p.Install(NewStandardFeature(json.NewProvider(), 1))
	require.NoError(t, err)

	resp, err := p.Handle(context.Background(), NewRequest("op"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
}

// -----------------------------------------------------------------------------
// Utility functions

func okTransport(body []byte) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{
			Status: http.StatusOK,
			Header: make(http.Header),
			Body:   body,
		}, nil
	})
}

func instantRetries(max uint64) func() backoff.BackOff {
	return func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, max)
	}
}
