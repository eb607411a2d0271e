// This file contains the scoped writers for JSON aggregates: objects for
// structs and maps, arrays for lists. Each writer tracks the number of
// values written in its scope to place the separators; the order on the
// wire is exactly the call order.

package json

import (
	"encoding/base64"
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// structSerializer writes the members of one JSON object.
//
// - implements serde.StructSerializer
type structSerializer struct {
	ser   *serializer
	n     int
	ended bool
}

// BoolField implements serde.StructSerializer.
func (s *structSerializer) BoolField(d serde.SdkFieldDescriptor, v bool) error {
	return s.field(d, func() { s.ser.stream.WriteBool(v) })
}

// ByteField implements serde.StructSerializer.
func (s *structSerializer) ByteField(d serde.SdkFieldDescriptor, v int8) error {
	return s.field(d, func() { s.ser.stream.WriteInt8(v) })
}

// ShortField implements serde.StructSerializer.
func (s *structSerializer) ShortField(d serde.SdkFieldDescriptor, v int16) error {
	return s.field(d, func() { s.ser.stream.WriteInt16(v) })
}

// CharField implements serde.StructSerializer.
func (s *structSerializer) CharField(d serde.SdkFieldDescriptor, v rune) error {
	return s.field(d, func() { s.ser.stream.WriteString(string(v)) })
}

// IntField implements serde.StructSerializer.
func (s *structSerializer) IntField(d serde.SdkFieldDescriptor, v int32) error {
	return s.field(d, func() { s.ser.stream.WriteInt32(v) })
}

// LongField implements serde.StructSerializer.
func (s *structSerializer) LongField(d serde.SdkFieldDescriptor, v int64) error {
	return s.field(d, func() { s.ser.stream.WriteInt64(v) })
}

// FloatField implements serde.StructSerializer.
func (s *structSerializer) FloatField(d serde.SdkFieldDescriptor, v float32) error {
	return s.field(d, func() { s.ser.stream.WriteFloat32(v) })
}

// DoubleField implements serde.StructSerializer.
func (s *structSerializer) DoubleField(d serde.SdkFieldDescriptor, v float64) error {
	return s.field(d, func() { s.ser.stream.WriteFloat64(v) })
}

// StringField implements serde.StructSerializer.
func (s *structSerializer) StringField(d serde.SdkFieldDescriptor, v string) error {
	return s.field(d, func() { s.ser.stream.WriteString(v) })
}

// BlobField implements serde.StructSerializer.
func (s *structSerializer) BlobField(d serde.SdkFieldDescriptor, v []byte) error {
	return s.field(d, func() {
		s.ser.stream.WriteString(base64.StdEncoding.EncodeToString(v))
	})
}

// TimestampField implements serde.StructSerializer. It uses the timestamp
// format trait of the descriptor, defaulting to epoch seconds.
func (s *structSerializer) TimestampField(d serde.SdkFieldDescriptor, v time.Time) error {
	return s.field(d, func() { s.ser.writeTimestamp(v, timestampFormat(d)) })
}

// BigNumberField implements serde.StructSerializer.
func (s *structSerializer) BigNumberField(d serde.SdkFieldDescriptor, v *big.Float) error {
	return s.field(d, func() { s.ser.stream.WriteRaw(v.Text('g', -1)) })
}

// DocumentField implements serde.StructSerializer.
func (s *structSerializer) DocumentField(d serde.SdkFieldDescriptor, v serde.Document) error {
	return s.field(d, func() { s.ser.writeDocument(v) })
}

// StructField implements serde.StructSerializer. The nested begin/end pair
// is handled internally, the callback must not close the nested serializer.
func (s *structSerializer) StructField(d serde.SdkFieldDescriptor,
	fn func(serde.StructSerializer) error) error {

	err := s.name(d)
	if err != nil {
		return err
	}

	return s.ser.runStruct(fn)
}

// ListField implements serde.StructSerializer.
func (s *structSerializer) ListField(d serde.SdkFieldDescriptor,
	fn func(serde.ListSerializer) error) error {

	err := s.name(d)
	if err != nil {
		return err
	}

	return s.ser.runList(fn)
}

// MapField implements serde.StructSerializer.
func (s *structSerializer) MapField(d serde.SdkFieldDescriptor,
	fn func(serde.MapSerializer) error) error {

	err := s.name(d)
	if err != nil {
		return err
	}

	return s.ser.runMap(fn)
}

// NullField implements serde.StructSerializer. The JSON policy is to write
// an explicit null member.
func (s *structSerializer) NullField(d serde.SdkFieldDescriptor) error {
	return s.field(d, func() { s.ser.stream.WriteNil() })
}

// EndStruct implements serde.StructSerializer.
func (s *structSerializer) EndStruct() error {
	if s.ended {
		return serde.NewConfigError("struct already closed")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	s.ser.stream.WriteObjectEnd()
	s.ser.depth--
	s.ended = true

	return nil
}

func (s *structSerializer) field(d serde.SdkFieldDescriptor, write func()) error {
	err := s.name(d)
	if err != nil {
		return err
	}

	write()

	return nil
}

func (s *structSerializer) name(d serde.SdkFieldDescriptor) error {
	if s.ended {
		return serde.NewConfigError("struct already closed")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	if s.n > 0 {
		s.ser.stream.WriteMore()
	}

	s.ser.stream.WriteObjectField(wireName(d))
	s.n++

	return nil
}

func timestampFormat(d serde.SdkFieldDescriptor) serde.TimestampFormatKind {
	if t, found := d.FindTrait(serde.TraitTimestampFormat); found {
		return t.(serde.TimestampFormat).Format
	}

	return serde.TimestampEpochSeconds
}
