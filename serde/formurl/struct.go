// This file contains the scoped writer for form-url structs. Each member is
// one pair keyed by the dotted path of the member.

package formurl

import (
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// structSerializer writes the members of one struct under a path prefix.
// The root struct has an empty prefix.
//
// - implements serde.StructSerializer
type structSerializer struct {
	ser    *serializer
	prefix string
	ended  bool
}

// BoolField implements serde.StructSerializer.
func (s *structSerializer) BoolField(d serde.SdkFieldDescriptor, v bool) error {
	return s.scalar(d, boolText(v))
}

// ByteField implements serde.StructSerializer.
func (s *structSerializer) ByteField(d serde.SdkFieldDescriptor, v int8) error {
	return s.scalar(d, intText(int64(v)))
}

// ShortField implements serde.StructSerializer.
func (s *structSerializer) ShortField(d serde.SdkFieldDescriptor, v int16) error {
	return s.scalar(d, intText(int64(v)))
}

// CharField implements serde.StructSerializer.
func (s *structSerializer) CharField(d serde.SdkFieldDescriptor, v rune) error {
	return s.scalar(d, string(v))
}

// IntField implements serde.StructSerializer.
func (s *structSerializer) IntField(d serde.SdkFieldDescriptor, v int32) error {
	return s.scalar(d, intText(int64(v)))
}

// LongField implements serde.StructSerializer.
func (s *structSerializer) LongField(d serde.SdkFieldDescriptor, v int64) error {
	return s.scalar(d, intText(v))
}

// FloatField implements serde.StructSerializer.
func (s *structSerializer) FloatField(d serde.SdkFieldDescriptor, v float32) error {
	return s.scalar(d, floatText(float64(v), 32))
}

// DoubleField implements serde.StructSerializer.
func (s *structSerializer) DoubleField(d serde.SdkFieldDescriptor, v float64) error {
	return s.scalar(d, floatText(v, 64))
}

// StringField implements serde.StructSerializer.
func (s *structSerializer) StringField(d serde.SdkFieldDescriptor, v string) error {
	return s.scalar(d, v)
}

// BlobField implements serde.StructSerializer.
func (s *structSerializer) BlobField(d serde.SdkFieldDescriptor, v []byte) error {
	return s.scalar(d, blobText(v))
}

// TimestampField implements serde.StructSerializer.
func (s *structSerializer) TimestampField(d serde.SdkFieldDescriptor, v time.Time) error {
	format := serde.TimestampEpochSeconds
	if t, found := d.FindTrait(serde.TraitTimestampFormat); found {
		format = t.(serde.TimestampFormat).Format
	}

	return s.scalar(d, serde.FormatTimestamp(v, format))
}

// BigNumberField implements serde.StructSerializer.
func (s *structSerializer) BigNumberField(d serde.SdkFieldDescriptor, v *big.Float) error {
	return s.scalar(d, v.Text('g', -1))
}

// DocumentField implements serde.StructSerializer. Schema-less values have
// no dotted-path representation.
func (s *structSerializer) DocumentField(d serde.SdkFieldDescriptor, v serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	return serde.NewConfigError("the form-url format cannot write a document")
}

// StructField implements serde.StructSerializer.
func (s *structSerializer) StructField(d serde.SdkFieldDescriptor,
	fn func(serde.StructSerializer) error) error {

	err := s.check()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, prefix: join(s.prefix, d.SerialName())}

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

	prefix := join(s.prefix, d.SerialName())
	if !d.HasTrait(serde.TraitXMLFlattened) {
		prefix = join(prefix, memberSegment(d))
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, prefix: prefix}

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

	key, value := entryNames(d)

	prefix := join(s.prefix, d.SerialName())
	if !d.HasTrait(serde.TraitXMLFlattened) {
		prefix = join(prefix, "entry")
	}

	s.ser.depth++

	nested := &mapSerializer{
		ser:       s.ser,
		prefix:    prefix,
		keyName:   key,
		valueName: value,
	}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// NullField implements serde.StructSerializer. The form-url policy is to
// omit the member.
func (s *structSerializer) NullField(d serde.SdkFieldDescriptor) error {
	return s.check()
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

	return nil
}

func (s *structSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("struct already closed")
	}

	return s.ser.check()
}

func (s *structSerializer) scalar(d serde.SdkFieldDescriptor, text string) error {
	err := s.check()
	if err != nil {
		return err
	}

	s.ser.add(join(s.prefix, d.SerialName()), text)

	return nil
}
