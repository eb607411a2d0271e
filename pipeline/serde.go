// This file contains the middleware binding a serde provider to the
// pipeline: requests carrying a marshal closure are encoded before
// transmission, responses are decoded into the unmarshal closure.

package pipeline

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/sableio/sable/serde"
)

// ContentType returns the MIME type of a format.
func ContentType(f serde.Format) string {
	switch f {
	case serde.FormatJSON:
		return "application/json"
	case serde.FormatXML:
		return "application/xml"
	case serde.FormatFormURL:
		return "application/x-www-form-urlencoded"
	case serde.FormatCBOR:
		return "application/cbor"
	default:
		return "application/octet-stream"
	}
}

// Serde returns a middleware bound to the given provider. The request body
// and content type are produced from the marshal closure, and the response
// body is fed to the unmarshal closure when one is set.
func Serde(provider serde.Provider) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.Marshal != nil {
				ser := provider.Serializer()

				err := req.Marshal(ser)
				if err != nil {
					return nil, xerrors.Errorf("couldn't serialize the request: %v", err)
				}

				body, err := ser.Bytes()
				if err != nil {
					return nil, xerrors.Errorf("couldn't serialize the request: %v", err)
				}

				req.Body = body
				req.Header.Set("Content-Type", ContentType(provider.GetFormat()))
			}

			resp, err := next.Handle(ctx, req)
			if err != nil {
				return nil, err
			}

			if req.Unmarshal != nil && len(resp.Body) > 0 {
				deser, err := provider.Deserializer(resp.Body)
				if err != nil {
					return nil, xerrors.Errorf("couldn't deserialize the response: %v", err)
				}

				err = req.Unmarshal(deser)
				if err != nil {
					return nil, xerrors.Errorf("couldn't deserialize the response: %v", err)
				}
			}

			return resp, nil
		})
	}
}
