package serde

// SerialKind is the closed set of shapes a field can have on the wire. It is
// used purely for dispatch and validation and a value never changes after
// the descriptor holding it is built.
type SerialKind int

const (
	// KindUnit is a presence-only field carrying no value.
	KindUnit SerialKind = iota

	// KindBoolean is a boolean field.
	KindBoolean

	// KindByte is a signed 8-bit integer field.
	KindByte

	// KindShort is a signed 16-bit integer field.
	KindShort

	// KindChar is a single character field.
	KindChar

	// KindInteger is a signed 32-bit integer field.
	KindInteger

	// KindLong is a signed 64-bit integer field.
	KindLong

	// KindFloat is a 32-bit floating point field.
	KindFloat

	// KindDouble is a 64-bit floating point field.
	KindDouble

	// KindString is a text field.
	KindString

	// KindBlob is an opaque binary field.
	KindBlob

	// KindTimestamp is a point-in-time field.
	KindTimestamp

	// KindBigNumber is an arbitrary-precision number field.
	KindBigNumber

	// KindDocument is a schema-less nested value.
	KindDocument

	// KindList is an ordered collection of elements.
	KindList

	// KindMap is a collection of key/value entries.
	KindMap

	// KindStruct is a structured type with named members.
	KindStruct
)

// String implements fmt.Stringer. It returns the name of the kind.
func (k SerialKind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindBoolean:
		return "Boolean"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindChar:
		return "Char"
	case KindInteger:
		return "Integer"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindBlob:
		return "Blob"
	case KindTimestamp:
		return "Timestamp"
	case KindBigNumber:
		return "BigNumber"
	case KindDocument:
		return "Document"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}
