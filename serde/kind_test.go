package serde

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialKind_String(t *testing.T) {
	names := map[SerialKind]string{
		KindUnit:      "Unit",
		KindBoolean:   "Boolean",
		KindByte:      "Byte",
		KindShort:     "Short",
		KindChar:      "Char",
		KindInteger:   "Integer",
		KindLong:      "Long",
		KindFloat:     "Float",
		KindDouble:    "Double",
		KindString:    "String",
		KindBlob:      "Blob",
		KindTimestamp: "Timestamp",
		KindBigNumber: "BigNumber",
		KindDocument:  "Document",
		KindList:      "List",
		KindMap:       "Map",
		KindStruct:    "Struct",
	}

	for kind, name := range names {
		require.Equal(t, name, kind.String())
	}

	require.Equal(t, "Unknown", SerialKind(-1).String())
}
