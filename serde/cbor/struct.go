// This file contains the scoped writer for CBOR structs. The writer
// accumulates the encoded members and emits the definite-length map at
// closing time, once the member count is known.

package cbor

import (
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// structSerializer writes the members of one struct.
//
// - implements serde.StructSerializer
type structSerializer struct {
	ser   *serializer
	emit  func([]byte)
	buf   []byte
	count int
	ended bool
}

// BoolField implements serde.StructSerializer.
func (s *structSerializer) BoolField(d serde.SdkFieldDescriptor, v bool) error {
	return s.field(d, v)
}

// ByteField implements serde.StructSerializer.
func (s *structSerializer) ByteField(d serde.SdkFieldDescriptor, v int8) error {
	return s.field(d, int64(v))
}

// ShortField implements serde.StructSerializer.
func (s *structSerializer) ShortField(d serde.SdkFieldDescriptor, v int16) error {
	return s.field(d, int64(v))
}

// CharField implements serde.StructSerializer.
func (s *structSerializer) CharField(d serde.SdkFieldDescriptor, v rune) error {
	return s.field(d, string(v))
}

// IntField implements serde.StructSerializer.
func (s *structSerializer) IntField(d serde.SdkFieldDescriptor, v int32) error {
	return s.field(d, int64(v))
}

// LongField implements serde.StructSerializer.
func (s *structSerializer) LongField(d serde.SdkFieldDescriptor, v int64) error {
	return s.field(d, v)
}

// FloatField implements serde.StructSerializer.
func (s *structSerializer) FloatField(d serde.SdkFieldDescriptor, v float32) error {
	return s.field(d, v)
}

// DoubleField implements serde.StructSerializer.
func (s *structSerializer) DoubleField(d serde.SdkFieldDescriptor, v float64) error {
	return s.field(d, v)
}

// StringField implements serde.StructSerializer.
func (s *structSerializer) StringField(d serde.SdkFieldDescriptor, v string) error {
	return s.field(d, v)
}

// BlobField implements serde.StructSerializer.
func (s *structSerializer) BlobField(d serde.SdkFieldDescriptor, v []byte) error {
	return s.field(d, v)
}

// TimestampField implements serde.StructSerializer.
func (s *structSerializer) TimestampField(d serde.SdkFieldDescriptor, v time.Time) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeTimestamp(v, timestampFormat(d))
	if err != nil {
		return err
	}

	return s.add(d, enc)
}

// BigNumberField implements serde.StructSerializer.
func (s *structSerializer) BigNumberField(d serde.SdkFieldDescriptor, v *big.Float) error {
	return s.field(d, v.Text('g', -1))
}

// DocumentField implements serde.StructSerializer.
func (s *structSerializer) DocumentField(d serde.SdkFieldDescriptor, v serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeDocument(v)
	if err != nil {
		return err
	}

	return s.add(d, enc)
}

// StructField implements serde.StructSerializer.
func (s *structSerializer) StructField(d serde.SdkFieldDescriptor,
	fn func(serde.StructSerializer) error) error {

	err := s.check()
	if err != nil {
		return err
	}

	name, err := encodeScalar(d.SerialName())
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, emit: s.nestedSink(name)}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndStruct()
}

// ListField implements serde.StructSerializer.
func (s *structSerializer) ListField(d serde.SdkFieldDescriptor,
	fn func(serde.ListSerializer) error) error {

	err := s.check()
	if err != nil {
		return err
	}

	name, err := encodeScalar(d.SerialName())
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, emit: s.nestedSink(name)}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndList()
}

// MapField implements serde.StructSerializer.
func (s *structSerializer) MapField(d serde.SdkFieldDescriptor,
	fn func(serde.MapSerializer) error) error {

	err := s.check()
	if err != nil {
		return err
	}

	name, err := encodeScalar(d.SerialName())
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &mapSerializer{ser: s.ser, emit: s.nestedSink(name)}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// NullField implements serde.StructSerializer. The member is written with an
// explicit null value.
func (s *structSerializer) NullField(d serde.SdkFieldDescriptor) error {
	err := s.check()
	if err != nil {
		return err
	}

	return s.add(d, []byte{nullByte})
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

	s.ser.depth--
	s.ended = true

	s.emit(append(header(majorMap, s.count), s.buf...))

	return nil
}

func (s *structSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("struct already closed")
	}

	return s.ser.check()
}

func (s *structSerializer) field(d serde.SdkFieldDescriptor, v interface{}) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeScalar(v)
	if err != nil {
		return err
	}

	return s.add(d, enc)
}

func (s *structSerializer) add(d serde.SdkFieldDescriptor, enc []byte) error {
	name, err := encodeScalar(d.SerialName())
	if err != nil {
		return err
	}

	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, enc...)
	s.count++

	return nil
}

// nestedSink returns the emit callback of a nested aggregate, recording the
// finished encoding as the value of the named member.
func (s *structSerializer) nestedSink(name []byte) func([]byte) {
	return func(enc []byte) {
		s.buf = append(s.buf, name...)
		s.buf = append(s.buf, enc...)
		s.count++
	}
}
