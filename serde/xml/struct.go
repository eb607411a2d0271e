// This file contains the scoped writers for XML aggregates. Scalar members
// become text-only child elements, members with the attribute trait land in
// the start tag of the enclosing element whatever their call position.

package xml

import (
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// structSerializer writes the members of one element.
//
// - implements serde.StructSerializer
type structSerializer struct {
	ser   *serializer
	node  *node
	ended bool
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
	return s.scalar(d, serde.FormatTimestamp(v, timestampFormat(d)))
}

// BigNumberField implements serde.StructSerializer.
func (s *structSerializer) BigNumberField(d serde.SdkFieldDescriptor, v *big.Float) error {
	return s.scalar(d, v.Text('g', -1))
}

// DocumentField implements serde.StructSerializer.
func (s *structSerializer) DocumentField(d serde.SdkFieldDescriptor, v serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	child := s.node.child(d.SerialName())
	applyNamespace(child, d)
	documentInto(child, v)

	return nil
}

// StructField implements serde.StructSerializer.
func (s *structSerializer) StructField(d serde.SdkFieldDescriptor,
	fn func(serde.StructSerializer) error) error {

	err := s.check()
	if err != nil {
		return err
	}

	child := s.node.child(d.SerialName())
	applyNamespace(child, d)
	s.ser.depth++

	nested := &structSerializer{ser: s.ser, node: child}

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

	var nested *listSerializer

	if d.HasTrait(serde.TraitXMLFlattened) {
		nested = &listSerializer{ser: s.ser, parent: s.node, itemName: d.SerialName()}
	} else {
		container := s.node.child(d.SerialName())
		applyNamespace(container, d)

		nested = &listSerializer{ser: s.ser, parent: container, itemName: memberName(d)}
	}

	s.ser.depth++

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

	key, value := mapNames(d)

	var nested *mapSerializer

	if d.HasTrait(serde.TraitXMLFlattened) {
		nested = &mapSerializer{
			ser:       s.ser,
			parent:    s.node,
			entryName: d.SerialName(),
			keyName:   key,
			valueName: value,
		}
	} else {
		container := s.node.child(d.SerialName())
		applyNamespace(container, d)

		nested = &mapSerializer{
			ser:       s.ser,
			parent:    container,
			entryName: "entry",
			keyName:   key,
			valueName: value,
		}
	}

	s.ser.depth++

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// NullField implements serde.StructSerializer. The XML policy is to omit the
// member.
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

	if d.HasTrait(serde.TraitXMLAttribute) {
		s.node.setAttr(d.SerialName(), text)
		return nil
	}

	child := s.node.child(d.SerialName())
	applyNamespace(child, d)
	child.text = text

	return nil
}
