package serde

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestDecodeError_Error(t *testing.T) {
	err := NewDecodeError("integer", "token '}'")
	require.EqualError(t, err, "decoding failed: expected integer, found token '}'")

	require.True(t, IsDecodeError(err))
	require.False(t, IsConfigError(err))
}

func TestDecodeError_Wrapped(t *testing.T) {
	err := xerrors.Errorf("couldn't read field: %w", NewUnexpectedEOS("string"))

	require.True(t, IsDecodeError(err))
	require.Contains(t, err.Error(), "end of stream")
}

func TestConfigError_Error(t *testing.T) {
	err := NewConfigError("field '%s' registered twice", "x")
	require.EqualError(t, err, "unexpected configuration: field 'x' registered twice")

	require.True(t, IsConfigError(err))
	require.False(t, IsDecodeError(err))
}
