// This file contains the JSON serializer. It writes through a
// jsoniter.Stream with no underlying writer, so the payload accumulates in
// memory until Bytes is called.

package json

import (
	"encoding/base64"
	"math/big"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sableio/sable/serde"
)

// serializer is the JSON implementation of the serializer contract.
//
// - implements serde.Serializer
type serializer struct {
	stream *jsoniter.Stream
	depth  int
	done   bool
}

func newSerializer() *serializer {
	return &serializer{
		stream: jsoniter.NewStream(cfg, nil, 256),
	}
}

// BeginStruct implements serde.Serializer. It opens the root object. The
// descriptor name is not emitted as JSON roots are anonymous.
func (s *serializer) BeginStruct(d serde.SdkObjectDescriptor) (serde.StructSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.stream.WriteObjectStart()
	s.depth++

	return &structSerializer{ser: s}, nil
}

// BeginList implements serde.Serializer. It opens the root array.
func (s *serializer) BeginList(d serde.SdkFieldDescriptor) (serde.ListSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.stream.WriteArrayStart()
	s.depth++

	return &listSerializer{ser: s}, nil
}

// BeginMap implements serde.Serializer. It opens the root object.
func (s *serializer) BeginMap(d serde.SdkFieldDescriptor) (serde.MapSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.stream.WriteObjectStart()
	s.depth++

	return &mapSerializer{ser: s}, nil
}

// Bytes implements serde.Serializer. It finalizes the payload. Any write
// afterwards fails.
func (s *serializer) Bytes() ([]byte, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	if s.depth != 0 {
		return nil, serde.NewConfigError("%d aggregate(s) left open", s.depth)
	}

	s.done = true

	return append([]byte{}, s.stream.Buffer()...), nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBool(v bool) error { return s.scalar(func() { s.stream.WriteBool(v) }) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *serializer) SerializeByte(v int8) error { return s.scalar(func() { s.stream.WriteInt8(v) }) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *serializer) SerializeShort(v int16) error {
	return s.scalar(func() { s.stream.WriteInt16(v) })
}

// SerializeChar implements serde.PrimitiveSerializer.
func (s *serializer) SerializeChar(v rune) error {
	return s.scalar(func() { s.stream.WriteString(string(v)) })
}

// SerializeInt implements serde.PrimitiveSerializer.
func (s *serializer) SerializeInt(v int32) error { return s.scalar(func() { s.stream.WriteInt32(v) }) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *serializer) SerializeLong(v int64) error {
	return s.scalar(func() { s.stream.WriteInt64(v) })
}

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *serializer) SerializeFloat(v float32) error {
	return s.scalar(func() { s.stream.WriteFloat32(v) })
}

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDouble(v float64) error {
	return s.scalar(func() { s.stream.WriteFloat64(v) })
}

// SerializeString implements serde.PrimitiveSerializer.
func (s *serializer) SerializeString(v string) error {
	return s.scalar(func() { s.stream.WriteString(v) })
}

// SerializeBlob implements serde.PrimitiveSerializer. Binary data is written
// as a base64 string.
func (s *serializer) SerializeBlob(v []byte) error {
	return s.scalar(func() {
		s.stream.WriteString(base64.StdEncoding.EncodeToString(v))
	})
}

// SerializeTimestamp implements serde.PrimitiveSerializer. Epoch seconds are
// written as a raw number, the textual formats as a string.
func (s *serializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.scalar(func() { s.writeTimestamp(v, format) })
}

// SerializeBigNumber implements serde.PrimitiveSerializer. The number is
// written raw to keep its precision.
func (s *serializer) SerializeBigNumber(v *big.Float) error {
	return s.scalar(func() { s.stream.WriteRaw(v.Text('g', -1)) })
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDocument(v serde.Document) error {
	return s.scalar(func() { s.writeDocument(v) })
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *serializer) SerializeNull() error {
	return s.scalar(func() { s.stream.WriteNil() })
}

func (s *serializer) check() error {
	if s.done {
		return serde.NewConfigError("serializer already finalized")
	}

	return nil
}

func (s *serializer) scalar(write func()) error {
	err := s.check()
	if err != nil {
		return err
	}

	write()

	return nil
}

func (s *serializer) writeTimestamp(v time.Time, format serde.TimestampFormatKind) {
	text := serde.FormatTimestamp(v, format)

	if format == serde.TimestampEpochSeconds {
		s.stream.WriteRaw(text)
	} else {
		s.stream.WriteString(text)
	}
}

func (s *serializer) writeDocument(doc serde.Document) {
	switch value := doc.(type) {
	case nil:
		s.stream.WriteNil()
	case serde.NullDocument:
		s.stream.WriteNil()
	case serde.BoolDocument:
		s.stream.WriteBool(bool(value))
	case serde.NumberDocument:
		s.stream.WriteFloat64(float64(value))
	case serde.StringDocument:
		s.stream.WriteString(string(value))
	case serde.ListDocument:
		s.stream.WriteArrayStart()
		for i, elem := range value {
			if i > 0 {
				s.stream.WriteMore()
			}
			s.writeDocument(elem)
		}
		s.stream.WriteArrayEnd()
	case serde.MapDocument:
		s.stream.WriteObjectStart()
		for i, entry := range value {
			if i > 0 {
				s.stream.WriteMore()
			}
			s.stream.WriteObjectField(entry.Key)
			s.writeDocument(entry.Value)
		}
		s.stream.WriteObjectEnd()
	}
}

// runStruct writes a nested object scoped to the callback.
func (s *serializer) runStruct(fn func(serde.StructSerializer) error) error {
	s.stream.WriteObjectStart()
	s.depth++

	child := &structSerializer{ser: s}

	err := fn(child)
	if err != nil {
		return err
	}

	return child.EndStruct()
}

// runList writes a nested array scoped to the callback.
func (s *serializer) runList(fn func(serde.ListSerializer) error) error {
	s.stream.WriteArrayStart()
	s.depth++

	child := &listSerializer{ser: s}

	err := fn(child)
	if err != nil {
		return err
	}

	return child.EndList()
}

// runMap writes a nested object scoped to the callback.
func (s *serializer) runMap(fn func(serde.MapSerializer) error) error {
	s.stream.WriteObjectStart()
	s.depth++

	child := &mapSerializer{ser: s}

	err := fn(child)
	if err != nil {
		return err
	}

	return child.EndMap()
}
