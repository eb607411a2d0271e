// This file contains fakes around io.Reader used to exercise streaming
// paths.

package fake

import (
	"io"
)

// BadReader is a reader that fails on every call.
//
// - implements io.Reader
type BadReader struct{}

// Read implements io.Reader.
func (BadReader) Read([]byte) (int, error) {
	return 0, GetError()
}

// ChunkReader delivers the underlying data one byte per call, mimicking a
// streaming source that suspends between bytes.
//
// - implements io.Reader
type ChunkReader struct {
	Data []byte

	offset int
}

// NewChunkReader returns a reader over the given text.
func NewChunkReader(data string) *ChunkReader {
	return &ChunkReader{Data: []byte(data)}
}

// Read implements io.Reader.
func (r *ChunkReader) Read(buf []byte) (int, error) {
	if r.offset >= len(r.Data) {
		return 0, io.EOF
	}

	if len(buf) == 0 {
		return 0, nil
	}

	buf[0] = r.Data[r.offset]
	r.offset++

	return 1, nil
}
