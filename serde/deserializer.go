package serde

import (
	"math/big"
	"time"
)

// Sentinels returned by FieldIterator.FindNextFieldIndex.
const (
	// ExhaustedIndex signals that the aggregate holds no further member. It
	// is the clean termination of the iteration, not an error.
	ExhaustedIndex = -1

	// UnknownFieldIndex signals a member present in the payload but not
	// declared in the object descriptor. The caller must consume it with
	// SkipValue before iterating further; anything else corrupts the
	// position of the cursor for the rest of the parse.
	UnknownFieldIndex = -2
)

// PrimitiveDeserializer reads a single scalar value at the current position
// of the cursor. A read fails with a decode error when the token cannot be
// coerced to the requested shape.
type PrimitiveDeserializer interface {
	ReadBool() (bool, error)
	ReadByte() (int8, error)
	ReadShort() (int16, error)
	ReadChar() (rune, error)
	ReadInt() (int32, error)
	ReadLong() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	ReadString() (string, error)
	ReadBlob() ([]byte, error)
	ReadTimestamp(format TimestampFormatKind) (time.Time, error)
	ReadBigNumber() (*big.Float, error)
	ReadDocument() (Document, error)

	// ReadNull consumes an explicit null value.
	ReadNull() error

	// NextIsNull reports whether the next value is an explicit null,
	// without consuming it.
	NextIsNull() (bool, error)
}

// Deserializer is the entry point driven by generated deserialization code.
// One instance consumes exactly one payload, opening the root aggregate with
// the matching method below. The iterators it returns allow recursing into
// nested aggregates through their embedded Deserializer.
type Deserializer interface {
	// DeserializeStruct positions the cursor on the structured value at the
	// current position and returns the iterator over its members.
	DeserializeStruct(d SdkObjectDescriptor) (FieldIterator, error)

	// DeserializeList positions the cursor on the list at the current
	// position and returns the iterator over its elements.
	DeserializeList(d SdkFieldDescriptor) (ElementIterator, error)

	// DeserializeMap positions the cursor on the map at the current
	// position and returns the iterator over its entries.
	DeserializeMap(d SdkFieldDescriptor) (EntryIterator, error)
}

// FieldIterator walks the members of one structured value in the order the
// payload carries them, which is not necessarily the declaration order. The
// caller loops on FindNextFieldIndex and dispatches on the returned index,
// reading the value with exactly one typed read or one recursion.
type FieldIterator interface {
	PrimitiveDeserializer
	Deserializer

	// FindNextFieldIndex returns the declared index of the next member,
	// UnknownFieldIndex for a member absent from the descriptor, or
	// ExhaustedIndex once every member was consumed.
	FindNextFieldIndex() (int, error)

	// SkipValue discards the value at the current position, recursing
	// through nested aggregates, and leaves the cursor on the next member.
	// It only fails on malformed data, never on well-formed unknown
	// structures.
	SkipValue() error
}

// ElementIterator walks the elements of one list in payload order.
type ElementIterator interface {
	PrimitiveDeserializer
	Deserializer

	// HasNextElement returns true while an element remains to be read.
	HasNextElement() (bool, error)
}

// EntryIterator walks the entries of one map in payload order. Key must be
// called before reading the corresponding value.
type EntryIterator interface {
	PrimitiveDeserializer
	Deserializer

	// HasNextEntry returns true while an entry remains to be read.
	HasNextEntry() (bool, error)

	// Key returns the key of the pending entry.
	Key() (string, error)
}
