package serde

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapDocument_Get(t *testing.T) {
	doc := MapDocument{
		{Key: "name", Value: StringDocument("sable")},
		{Key: "count", Value: NumberDocument(3)},
		{Key: "ok", Value: BoolDocument(true)},
		{Key: "none", Value: NullDocument{}},
	}

	value, found := doc.Get("count")
	require.True(t, found)
	require.Equal(t, NumberDocument(3), value)

	_, found = doc.Get("missing")
	require.False(t, found)
}

func TestMapDocument_Order(t *testing.T) {
	doc := MapDocument{
		{Key: "b", Value: NumberDocument(2)},
		{Key: "a", Value: NumberDocument(1)},
	}

	require.Equal(t, "b", doc[0].Key)
	require.Equal(t, "a", doc[1].Key)
}
