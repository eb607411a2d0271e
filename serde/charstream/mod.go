// Package charstream provides the peek/consume primitive that backs the
// hand-written parsers of the runtime, like the header list splitters.
//
// The stream wraps any io.Reader: reading from a streaming source simply
// blocks the calling goroutine in the single fill point, every combinator
// above it is synchronous logic.
package charstream

import (
	"bufio"
	"io"
	"strings"

	"github.com/sableio/sable/serde"
	"golang.org/x/xerrors"
)

// EOS is the rune returned by Peek and Next when the stream is exhausted.
const EOS rune = -1

// CharStream is a character cursor over a reader. One instance is owned
// exclusively by the parser that created it.
type CharStream struct {
	reader  *bufio.Reader
	peeked  rune
	hasPeek bool
}

// New returns a stream over the given reader.
func New(r io.Reader) *CharStream {
	return &CharStream{
		reader: bufio.NewReader(r),
	}
}

// FromString returns a stream over an in-memory text.
func FromString(s string) *CharStream {
	return New(strings.NewReader(s))
}

// Peek returns the next character without consuming it, or EOS when the
// stream is exhausted.
func (cs *CharStream) Peek() (rune, error) {
	if cs.hasPeek {
		return cs.peeked, nil
	}

	r, err := cs.fill()
	if err != nil {
		return EOS, err
	}

	if r != EOS {
		cs.peeked = r
		cs.hasPeek = true
	}

	return r, nil
}

// Next returns and consumes the next character, or EOS when the stream is
// exhausted.
func (cs *CharStream) Next() (rune, error) {
	if cs.hasPeek {
		cs.hasPeek = false
		return cs.peeked, nil
	}

	return cs.fill()
}

// NextOrErr returns and consumes the next character, failing with an
// unexpected-end-of-stream decode error naming what the caller expected.
func (cs *CharStream) NextOrErr(expected string) (rune, error) {
	r, err := cs.Next()
	if err != nil {
		return EOS, err
	}

	if r == EOS {
		return EOS, serde.NewUnexpectedEOS(expected)
	}

	return r, nil
}

// Consume advances past the expected character. When the next character
// differs it fails with a decode error naming both characters, unless the
// consumption is optional in which case nothing is consumed.
func (cs *CharStream) Consume(expected rune, optional bool) error {
	r, err := cs.Peek()
	if err != nil {
		return err
	}

	if r != expected {
		if optional {
			return nil
		}

		found := "end of stream"
		if r != EOS {
			found = "'" + string(r) + "'"
		}

		return serde.NewDecodeError("'"+string(expected)+"'", found)
	}

	_, err = cs.Next()

	return err
}

// ReadUntil accumulates characters until the predicate matches the next
// unconsumed character, which is left on the stream. It fails when the
// stream ends before a match.
func (cs *CharStream) ReadUntil(pred func(rune) bool) (string, error) {
	sb := strings.Builder{}

	for {
		r, err := cs.Peek()
		if err != nil {
			return "", err
		}

		if r == EOS {
			return "", serde.NewUnexpectedEOS("a delimiter before the end of stream")
		}

		if pred(r) {
			return sb.String(), nil
		}

		sb.WriteRune(r)

		_, err = cs.Next()
		if err != nil {
			return "", err
		}
	}
}

// fill is the only operation touching the underlying reader. It blocks until
// a character is available or the source is exhausted.
func (cs *CharStream) fill() (rune, error) {
	r, _, err := cs.reader.ReadRune()
	if err == io.EOF {
		return EOS, nil
	}

	if err != nil {
		return EOS, xerrors.Errorf("couldn't read from the source: %v", err)
	}

	return r, nil
}
