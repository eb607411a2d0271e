package serde

import (
	"math/big"
	"time"
)

// PrimitiveSerializer writes a single scalar value at the current position
// of the output: the root of the payload, a list element or a map value. The
// timestamp writer takes the format explicitly since no descriptor is in
// scope at that position.
type PrimitiveSerializer interface {
	SerializeBool(v bool) error
	SerializeByte(v int8) error
	SerializeShort(v int16) error
	SerializeChar(v rune) error
	SerializeInt(v int32) error
	SerializeLong(v int64) error
	SerializeFloat(v float32) error
	SerializeDouble(v float64) error
	SerializeString(v string) error
	SerializeBlob(v []byte) error
	SerializeTimestamp(v time.Time, format TimestampFormatKind) error
	SerializeBigNumber(v *big.Float) error
	SerializeDocument(v Document) error
	SerializeNull() error
}

// Serializer is the entry point driven by generated serialization code. One
// instance accumulates exactly one payload: the caller opens the root
// aggregate, writes its members in the order it wants them on the wire, and
// finalizes with Bytes. An instance must not be reused afterwards.
type Serializer interface {
	PrimitiveSerializer

	// BeginStruct opens the root structured value. The caller must close it
	// with EndStruct before calling Bytes.
	BeginStruct(d SdkObjectDescriptor) (StructSerializer, error)

	// BeginList opens a root list named by the descriptor.
	BeginList(d SdkFieldDescriptor) (ListSerializer, error)

	// BeginMap opens a root map named by the descriptor.
	BeginMap(d SdkFieldDescriptor) (MapSerializer, error)

	// Bytes finalizes the payload and returns the encoded bytes. Writing
	// after Bytes fails.
	Bytes() ([]byte, error)
}

// StructSerializer writes the members of one structured value. Members are
// emitted strictly in call order, the contract the deserializer index
// dispatch is generated against.
type StructSerializer interface {
	BoolField(d SdkFieldDescriptor, v bool) error
	ByteField(d SdkFieldDescriptor, v int8) error
	ShortField(d SdkFieldDescriptor, v int16) error
	CharField(d SdkFieldDescriptor, v rune) error
	IntField(d SdkFieldDescriptor, v int32) error
	LongField(d SdkFieldDescriptor, v int64) error
	FloatField(d SdkFieldDescriptor, v float32) error
	DoubleField(d SdkFieldDescriptor, v float64) error
	StringField(d SdkFieldDescriptor, v string) error
	BlobField(d SdkFieldDescriptor, v []byte) error

	// TimestampField writes a timestamp using the TimestampFormat trait of
	// the descriptor, defaulting to epoch seconds.
	TimestampField(d SdkFieldDescriptor, v time.Time) error

	BigNumberField(d SdkFieldDescriptor, v *big.Float) error
	DocumentField(d SdkFieldDescriptor, v Document) error

	// StructField writes a nested structured member. The callback receives
	// the nested serializer; the begin/end pair is handled internally.
	StructField(d SdkFieldDescriptor, fn func(StructSerializer) error) error

	// ListField writes a nested list member.
	ListField(d SdkFieldDescriptor, fn func(ListSerializer) error) error

	// MapField writes a nested map member.
	MapField(d SdkFieldDescriptor, fn func(MapSerializer) error) error

	// NullField writes the format-appropriate null representation for the
	// member, which may be to omit it entirely.
	NullField(d SdkFieldDescriptor) error

	// EndStruct closes the structured value. Every BeginStruct or
	// StructField must be matched by exactly one EndStruct.
	EndStruct() error
}

// ListSerializer writes the elements of one list in call order. Scalars go
// through the embedded primitive writers, aggregates through the callbacks.
type ListSerializer interface {
	PrimitiveSerializer

	SerializeStruct(fn func(StructSerializer) error) error
	SerializeList(fn func(ListSerializer) error) error
	SerializeMap(fn func(MapSerializer) error) error

	// EndList closes the list.
	EndList() error
}

// MapSerializer writes the entries of one map. Key must be called before
// each value so that streaming formats can emit the pair in order.
type MapSerializer interface {
	PrimitiveSerializer

	// Key writes the key of the next entry.
	Key(k string) error

	SerializeStruct(fn func(StructSerializer) error) error
	SerializeList(fn func(ListSerializer) error) error
	SerializeMap(fn func(MapSerializer) error) error

	// EndMap closes the map.
	EndMap() error
}
