package charstream

import (
	"testing"

	"github.com/sableio/sable/internal/testing/fake"
	"github.com/sableio/sable/serde"
	"github.com/stretchr/testify/require"
)

func TestCharStream_Peek(t *testing.T) {
	cs := FromString("ab")

	r, err := cs.Peek()
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	// Peeking again does not advance.
	r, err = cs.Peek()
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	_, err = cs.Next()
	require.NoError(t, err)
	_, err = cs.Next()
	require.NoError(t, err)

	r, err = cs.Peek()
	require.NoError(t, err)
	require.Equal(t, EOS, r)
}

func TestCharStream_Next(t *testing.T) {
	cs := FromString("ab")

	r, err := cs.Next()
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	r, err = cs.Next()
	require.NoError(t, err)
	require.Equal(t, 'b', r)

	r, err = cs.Next()
	require.NoError(t, err)
	require.Equal(t, EOS, r)

	cs = New(fake.BadReader{})

	_, err = cs.Next()
	require.EqualError(t, err, "couldn't read from the source: fake error")
}

func TestCharStream_NextOrErr(t *testing.T) {
	cs := FromString("a")

	r, err := cs.NextOrErr("a letter")
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	_, err = cs.NextOrErr("a letter")
	require.EqualError(t, err, "decoding failed: expected a letter, found end of stream")
	require.True(t, serde.IsDecodeError(err))
}

func TestCharStream_Consume(t *testing.T) {
	cs := FromString("a,b")

	err := cs.Consume('a', false)
	require.NoError(t, err)

	err = cs.Consume('x', true)
	require.NoError(t, err)

	err = cs.Consume('x', false)
	require.EqualError(t, err, "decoding failed: expected 'x', found ','")

	err = cs.Consume(',', false)
	require.NoError(t, err)
	err = cs.Consume('b', false)
	require.NoError(t, err)

	err = cs.Consume('c', false)
	require.EqualError(t, err, "decoding failed: expected 'c', found end of stream")
}

func TestCharStream_ReadUntil(t *testing.T) {
	cs := FromString("1234,56")

	text, err := cs.ReadUntil(func(r rune) bool { return r == ',' })
	require.NoError(t, err)
	require.Equal(t, "1234", text)

	// The delimiter is left on the stream.
	r, err := cs.Peek()
	require.NoError(t, err)
	require.Equal(t, ',', r)

	_, err = cs.Next()
	require.NoError(t, err)

	_, err = cs.ReadUntil(func(r rune) bool { return r == ',' })
	require.Error(t, err)
	require.True(t, serde.IsDecodeError(err))
}

func TestCharStream_Streaming(t *testing.T) {
	// One byte per read, as delivered by a streaming source.
	cs := New(fake.NewChunkReader("hello,world"))

	text, err := cs.ReadUntil(func(r rune) bool { return r == ',' })
	require.NoError(t, err)
	require.Equal(t, "hello", text)

	err = cs.Consume(',', false)
	require.NoError(t, err)

	sb := []rune{}
	for {
		r, err := cs.Next()
		require.NoError(t, err)

		if r == EOS {
			break
		}

		sb = append(sb, r)
	}

	require.Equal(t, "world", string(sb))
}
