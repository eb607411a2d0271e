// This file contains the middleware compressing request bodies and
// transparently inflating compressed responses.

package pipeline

import (
	"bytes"
	"context"
	"io"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/xerrors"
)

// Gzip returns a middleware that compresses the request body and inflates
// responses carrying a gzip content encoding.
func Gzip() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if len(req.Body) > 0 {
				body, err := compress(req.Body)
				if err != nil {
					return nil, xerrors.Errorf("couldn't compress the request: %v", err)
				}

				req.Body = body
				req.Header.Set("Content-Encoding", "gzip")
			}

			resp, err := next.Handle(ctx, req)
			if err != nil {
				return nil, err
			}

			if resp.Header.Get("Content-Encoding") == "gzip" {
				body, err := inflate(resp.Body)
				if err != nil {
					return nil, xerrors.Errorf("couldn't inflate the response: %v", err)
				}

				resp.Body = body
				resp.Header.Del("Content-Encoding")
			}

			return resp, nil
		})
	}
}

func compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)

	w := gzip.NewWriter(buf)

	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	defer r.Close()

	return io.ReadAll(r)
}
