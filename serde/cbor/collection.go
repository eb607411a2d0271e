// This file contains the scoped writers for CBOR lists and maps.

package cbor

import (
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// listSerializer writes the items of one definite-length array.
//
// - implements serde.ListSerializer
type listSerializer struct {
	ser   *serializer
	emit  func([]byte)
	buf   []byte
	count int
	ended bool
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBool(v bool) error { return s.item(v) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeByte(v int8) error { return s.item(int64(v)) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeShort(v int16) error { return s.item(int64(v)) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeChar(v rune) error { return s.item(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeInt(v int32) error { return s.item(int64(v)) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeLong(v int64) error { return s.item(v) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeFloat(v float32) error { return s.item(v) }

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDouble(v float64) error { return s.item(v) }

// SerializeString implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeString(v string) error { return s.item(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBlob(v []byte) error { return s.item(v) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeTimestamp(v, format)
	if err != nil {
		return err
	}

	s.add(enc)

	return nil
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBigNumber(v *big.Float) error {
	return s.item(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDocument(v serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeDocument(v)
	if err != nil {
		return err
	}

	s.add(enc)

	return nil
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeNull() error {
	err := s.check()
	if err != nil {
		return err
	}

	s.add([]byte{nullByte})

	return nil
}

// SerializeStruct implements serde.ListSerializer.
func (s *listSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	err := s.check()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, emit: s.add}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndStruct()
}

// SerializeList implements serde.ListSerializer.
func (s *listSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	err := s.check()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, emit: s.add}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndList()
}

// SerializeMap implements serde.ListSerializer.
func (s *listSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	err := s.check()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &mapSerializer{ser: s.ser, emit: s.add}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndMap()
}

// EndList implements serde.ListSerializer.
func (s *listSerializer) EndList() error {
	if s.ended {
		return serde.NewConfigError("list already closed")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	s.ser.depth--
	s.ended = true

	s.emit(append(header(majorArray, s.count), s.buf...))

	return nil
}

func (s *listSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("list already closed")
	}

	return s.ser.check()
}

func (s *listSerializer) item(v interface{}) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeScalar(v)
	if err != nil {
		return err
	}

	s.add(enc)

	return nil
}

func (s *listSerializer) add(enc []byte) {
	s.buf = append(s.buf, enc...)
	s.count++
}

// mapSerializer writes the entries of one definite-length map with text
// keys.
//
// - implements serde.MapSerializer
type mapSerializer struct {
	ser     *serializer
	emit    func([]byte)
	buf     []byte
	count   int
	key     string
	pending bool
	ended   bool
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
func (s *mapSerializer) SerializeBool(v bool) error { return s.value(v) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeByte(v int8) error { return s.value(int64(v)) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeShort(v int16) error { return s.value(int64(v)) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeChar(v rune) error { return s.value(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeInt(v int32) error { return s.value(int64(v)) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeLong(v int64) error { return s.value(v) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeFloat(v float32) error { return s.value(v) }

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDouble(v float64) error { return s.value(v) }

// SerializeString implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeString(v string) error { return s.value(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBlob(v []byte) error { return s.value(v) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	enc, err := encodeTimestamp(v, format)
	if err != nil {
		return err
	}

	return s.addValue(enc)
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBigNumber(v *big.Float) error {
	return s.value(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDocument(v serde.Document) error {
	enc, err := encodeDocument(v)
	if err != nil {
		return err
	}

	return s.addValue(enc)
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeNull() error {
	return s.addValue([]byte{nullByte})
}

// SerializeStruct implements serde.MapSerializer.
func (s *mapSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	err := s.open()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &structSerializer{ser: s.ser, emit: s.addNested}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndStruct()
}

// SerializeList implements serde.MapSerializer.
func (s *mapSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	err := s.open()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &listSerializer{ser: s.ser, emit: s.addNested}

	err = fn(nested)
	if err != nil {
		return err
	}

	return nested.EndList()
}

// SerializeMap implements serde.MapSerializer.
func (s *mapSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	err := s.open()
	if err != nil {
		return err
	}

	s.ser.depth++

	nested := &mapSerializer{ser: s.ser, emit: s.addNested}

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

	s.emit(append(header(majorMap, s.count), s.buf...))

	return nil
}

func (s *mapSerializer) check() error {
	if s.ended {
		return serde.NewConfigError("map already closed")
	}

	return s.ser.check()
}

func (s *mapSerializer) value(v interface{}) error {
	enc, err := encodeScalar(v)
	if err != nil {
		return err
	}

	return s.addValue(enc)
}

// addValue writes the pending key followed by the encoded value.
func (s *mapSerializer) addValue(enc []byte) error {
	err := s.open()
	if err != nil {
		return err
	}

	s.addNested(enc)

	return nil
}

// open consumes the pending key and writes its encoding.
func (s *mapSerializer) open() error {
	err := s.check()
	if err != nil {
		return err
	}

	if !s.pending {
		return serde.NewConfigError("map value written before its key")
	}

	s.pending = false

	key, err := encodeScalar(s.key)
	if err != nil {
		return err
	}

	s.buf = append(s.buf, key...)

	return nil
}

// addNested appends the finished encoding of the value of the opened entry.
func (s *mapSerializer) addNested(enc []byte) {
	s.buf = append(s.buf, enc...)
	s.count++
}
