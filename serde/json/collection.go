// This file contains the scoped writers for JSON arrays and maps.

package json

import (
	"encoding/base64"
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// listSerializer writes the elements of one JSON array.
//
// - implements serde.ListSerializer
type listSerializer struct {
	ser   *serializer
	n     int
	ended bool
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBool(v bool) error {
	return s.elem(func() { s.ser.stream.WriteBool(v) })
}

// SerializeByte implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeByte(v int8) error {
	return s.elem(func() { s.ser.stream.WriteInt8(v) })
}

// SerializeShort implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeShort(v int16) error {
	return s.elem(func() { s.ser.stream.WriteInt16(v) })
}

// SerializeChar implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeChar(v rune) error {
	return s.elem(func() { s.ser.stream.WriteString(string(v)) })
}

// SerializeInt implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeInt(v int32) error {
	return s.elem(func() { s.ser.stream.WriteInt32(v) })
}

// SerializeLong implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeLong(v int64) error {
	return s.elem(func() { s.ser.stream.WriteInt64(v) })
}

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeFloat(v float32) error {
	return s.elem(func() { s.ser.stream.WriteFloat32(v) })
}

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDouble(v float64) error {
	return s.elem(func() { s.ser.stream.WriteFloat64(v) })
}

// SerializeString implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeString(v string) error {
	return s.elem(func() { s.ser.stream.WriteString(v) })
}

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBlob(v []byte) error {
	return s.elem(func() {
		s.ser.stream.WriteString(base64.StdEncoding.EncodeToString(v))
	})
}

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.elem(func() { s.ser.writeTimestamp(v, format) })
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeBigNumber(v *big.Float) error {
	return s.elem(func() { s.ser.stream.WriteRaw(v.Text('g', -1)) })
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeDocument(v serde.Document) error {
	return s.elem(func() { s.ser.writeDocument(v) })
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *listSerializer) SerializeNull() error {
	return s.elem(func() { s.ser.stream.WriteNil() })
}

// SerializeStruct implements serde.ListSerializer.
func (s *listSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	err := s.sep()
	if err != nil {
		return err
	}

	return s.ser.runStruct(fn)
}

// SerializeList implements serde.ListSerializer.
func (s *listSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	err := s.sep()
	if err != nil {
		return err
	}

	return s.ser.runList(fn)
}

// SerializeMap implements serde.ListSerializer.
func (s *listSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	err := s.sep()
	if err != nil {
		return err
	}

	return s.ser.runMap(fn)
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

	s.ser.stream.WriteArrayEnd()
	s.ser.depth--
	s.ended = true

	return nil
}

func (s *listSerializer) elem(write func()) error {
	err := s.sep()
	if err != nil {
		return err
	}

	write()

	return nil
}

func (s *listSerializer) sep() error {
	if s.ended {
		return serde.NewConfigError("list already closed")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	if s.n > 0 {
		s.ser.stream.WriteMore()
	}

	s.n++

	return nil
}

// mapSerializer writes the entries of one JSON object acting as a map. A key
// must precede every value.
//
// - implements serde.MapSerializer
type mapSerializer struct {
	ser     *serializer
	n       int
	pending bool
	ended   bool
}

// Key implements serde.MapSerializer.
func (s *mapSerializer) Key(k string) error {
	if s.ended {
		return serde.NewConfigError("map already closed")
	}

	if s.pending {
		return serde.NewConfigError("key '%s' written while a value is pending", k)
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	if s.n > 0 {
		s.ser.stream.WriteMore()
	}

	s.ser.stream.WriteObjectField(k)
	s.n++
	s.pending = true

	return nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBool(v bool) error {
	return s.value(func() { s.ser.stream.WriteBool(v) })
}

// SerializeByte implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeByte(v int8) error {
	return s.value(func() { s.ser.stream.WriteInt8(v) })
}

// SerializeShort implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeShort(v int16) error {
	return s.value(func() { s.ser.stream.WriteInt16(v) })
}

// SerializeChar implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeChar(v rune) error {
	return s.value(func() { s.ser.stream.WriteString(string(v)) })
}

// SerializeInt implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeInt(v int32) error {
	return s.value(func() { s.ser.stream.WriteInt32(v) })
}

// SerializeLong implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeLong(v int64) error {
	return s.value(func() { s.ser.stream.WriteInt64(v) })
}

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeFloat(v float32) error {
	return s.value(func() { s.ser.stream.WriteFloat32(v) })
}

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDouble(v float64) error {
	return s.value(func() { s.ser.stream.WriteFloat64(v) })
}

// SerializeString implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeString(v string) error {
	return s.value(func() { s.ser.stream.WriteString(v) })
}

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBlob(v []byte) error {
	return s.value(func() {
		s.ser.stream.WriteString(base64.StdEncoding.EncodeToString(v))
	})
}

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.value(func() { s.ser.writeTimestamp(v, format) })
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeBigNumber(v *big.Float) error {
	return s.value(func() { s.ser.stream.WriteRaw(v.Text('g', -1)) })
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeDocument(v serde.Document) error {
	return s.value(func() { s.ser.writeDocument(v) })
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *mapSerializer) SerializeNull() error {
	return s.value(func() { s.ser.stream.WriteNil() })
}

// SerializeStruct implements serde.MapSerializer.
func (s *mapSerializer) SerializeStruct(fn func(serde.StructSerializer) error) error {
	err := s.take()
	if err != nil {
		return err
	}

	return s.ser.runStruct(fn)
}

// SerializeList implements serde.MapSerializer.
func (s *mapSerializer) SerializeList(fn func(serde.ListSerializer) error) error {
	err := s.take()
	if err != nil {
		return err
	}

	return s.ser.runList(fn)
}

// SerializeMap implements serde.MapSerializer.
func (s *mapSerializer) SerializeMap(fn func(serde.MapSerializer) error) error {
	err := s.take()
	if err != nil {
		return err
	}

	return s.ser.runMap(fn)
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

	s.ser.stream.WriteObjectEnd()
	s.ser.depth--
	s.ended = true

	return nil
}

func (s *mapSerializer) value(write func()) error {
	err := s.take()
	if err != nil {
		return err
	}

	write()

	return nil
}

func (s *mapSerializer) take() error {
	if s.ended {
		return serde.NewConfigError("map already closed")
	}

	if !s.pending {
		return serde.NewConfigError("map value written before its key")
	}

	err := s.ser.check()
	if err != nil {
		return err
	}

	s.pending = false

	return nil
}
