// This file contains the scoped writers for form-url lists and maps. Items
// and entries are addressed by a 1-based position appended to the prefix.

package formurl

import (
	"math/big"
	"strconv"
	"time"

	"github.com/sableio/sable/serde"
)

// listSerializer writes the items of one list under a path prefix.
//
// - implements serde.ListSerializer
type listSerializer struct {
	ser    *serializer
	prefix string
	n      int
	ended  bool
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBool(v bool) error { return s.item(boolText(v)) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeByte(v int8) error { return s.item(intText(int64(v))) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeShort(v int16) error { return s.item(intText(int64(v))) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeChar(v rune) error { return s.item(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeInt(v int32) error { return s.item(intText(int64(v))) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeLong(v int64) error { return s.item(intText(v)) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeFloat(v float32) error {
	return s.item(floatText(float64(v), 32))
}

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDouble(v float64) error {
	return s.item(floatText(v, 64))
}

// SerializeString implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeString(v string) error { return s.item(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBlob(v []byte) error { return s.item(blobText(v)) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.item(serde.FormatTimestamp(v, format))
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBigNumber(v *big.Float) error {
	return s.item(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDocument(serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	return serde.NewConfigError("the form-url format cannot write a document")
}

// SerializeNull implements serde.PrimitiveSerializer. A null item is an
// empty value.
func (s *listSerializer) SerializeNull() error { return s.item("") }

// SerializeStruct implements serde.ListSerializer.
func (s *listSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, prefix: base}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndStruct()
}

// SerializeList implements serde.ListSerializer.
func (s *listSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, prefix: join(base, "member")}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndList()
}

// SerializeMap implements serde.ListSerializer.
func (s *listSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &mapSerializer{
		ser:       s.ser,
		prefix:    join(base, "entry"),
		keyName:   "key",
		valueName: "value",
	}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// EndList implements serde.ListSerializer. An empty list is emitted as a
// single pair with an empty value, so that the member is present on the
// wire.
func (s *listSerializer) EndList() error {
	if s.ended {
		return serde.NewConfigError("list already closed")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	if s.n == 0 {
		s.ser.add(s.prefix, "")
	}

	s.ser.depth--
	s.ended = true

	return nil
}

func (s *listSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("list already closed")
	}

	return s.ser.check()
}

func (s *listSerializer) item(text string) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.add(base, text)

	return nil
}

// take allocates the path of the next item.
func (s *listSerializer) take() (string, error) {
	err := s.check()
	if err != nil {
		return "", err
	}

	s.n++

	return join(s.prefix, strconv.Itoa(s.n)), nil
}

// mapSerializer writes the entries of one map under a path prefix, each
// entry holding a key and a value pair.
//
// - implements serde.MapSerializer
type mapSerializer struct {
	ser       *serializer
	prefix    string
	keyName   string
	valueName string
	key       string
	n         int
	pending   bool
	ended     bool
}

// Key implements serde.MapSerializer.
func (s *mapSerializer) Key(k string) error {
	err := s.check()
	if err != nil {
		return err
	}

	if s.pending {
		return serde.NewConfigError("key '%s' written while a value is pending", k)
	}

	s.key = k
	s.pending = true

	return nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBool(v bool) error { return s.value(boolText(v)) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeByte(v int8) error { return s.value(intText(int64(v))) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeShort(v int16) error { return s.value(intText(int64(v))) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeChar(v rune) error { return s.value(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeInt(v int32) error { return s.value(intText(int64(v))) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeLong(v int64) error { return s.value(intText(v)) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeFloat(v float32) error {
	return s.value(floatText(float64(v), 32))
}

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDouble(v float64) error {
	return s.value(floatText(v, 64))
}

// SerializeString implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeString(v string) error { return s.value(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBlob(v []byte) error { return s.value(blobText(v)) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.value(serde.FormatTimestamp(v, format))
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBigNumber(v *big.Float) error {
	return s.value(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDocument(serde.Document) error {
	_, err := s.take()
	if err != nil {
		return err
	}

	return serde.NewConfigError("the form-url format cannot write a document")
}

// SerializeNull implements serde.PrimitiveSerializer. A null value is an
// empty value pair.
func (s *mapSerializer) SerializeNull() error { return s.value("") }

// SerializeStruct implements serde.MapSerializer.
func (s *mapSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, prefix: join(base, s.valueName)}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndStruct()
}

// SerializeList implements serde.MapSerializer.
func (s *mapSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, prefix: join(join(base, s.valueName), "member")}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndList()
}

// SerializeMap implements serde.MapSerializer.
func (s *mapSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &mapSerializer{
		ser:       s.ser,
		prefix:    join(join(base, s.valueName), "entry"),
		keyName:   "key",
		valueName: "value",
	}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// EndMap implements serde.MapSerializer.
func (s *mapSerializer) EndMap() error {
	if s.ended {
		return serde.NewConfigError("map already closed")
	}

	if s.pending {
		return serde.NewConfigError("map closed with a pending key")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	s.ser.depth--
	s.ended = true

	return nil
}

func (s *mapSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("map already closed")
	}

	return s.ser.check()
}

func (s *mapSerializer) value(text string) error {
	base, err := s.take()
	if err != nil {
		return err
	}

	s.ser.add(join(base, s.valueName), text)

	return nil
}

// take consumes the pending key and allocates the path of the next entry,
// emitting the key pair.
func (s *mapSerializer) take() (string, error) {
	err := s.check()
	if err != nil {
		return "", err
	}

	if !s.pending {
		return "", serde.NewConfigError("map value written before its key")
	}

	s.pending = false
	s.n++

	base := join(s.prefix, strconv.Itoa(s.n))
	s.ser.add(join(base, s.keyName), s.key)

	return base, nil
}
