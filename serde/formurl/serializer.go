// This file contains the form-url serializer entry point. The serializer
// accumulates key/value pairs in emission order and renders them
// percent-encoded at finalization.

package formurl

import (
	"bytes"
	"encoding/base64"
	"math/big"
	"net/url"
	"strconv"
	"time"

	"github.com/sableio/sable/serde"
)

type pair struct {
	key   string
	value string
}

// serializer is the form-url implementation of the serializer contract.
//
// - implements serde.Serializer
type serializer struct {
	pairs []pair
	depth int
	done  bool
}

func newSerializer() *serializer {
	return &serializer{}
}

// BeginStruct implements serde.Serializer. The members of the root struct
// are emitted at their bare names; query literal traits attached to the
// object produce one literal pair each, before any member.
func (s *serializer) BeginStruct(obj serde.SdkObjectDescriptor) (serde.StructSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	for _, t := range obj.SdkFieldDescriptor.Traits() {
		if literal, ok := t.(serde.QueryLiteral); ok {
			s.add(literal.Key, literal.Value)
		}
	}

	s.depth++

	return &structSerializer{ser: s}, nil
}

// BeginList implements serde.Serializer. It opens a root list whose items
// are addressed under the field name.
func (s *serializer) BeginList(d serde.SdkFieldDescriptor) (serde.ListSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.depth++

	return &listSerializer{ser: s, prefix: join(d.SerialName(), memberSegment(d))}, nil
}

// BeginMap implements serde.Serializer. It opens a root map whose entries
// are addressed under the field name.
func (s *serializer) BeginMap(d serde.SdkFieldDescriptor) (serde.MapSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	key, value := entryNames(d)

	s.depth++

	return &mapSerializer{
		ser:       s,
		prefix:    join(d.SerialName(), "entry"),
		keyName:   key,
		valueName: value,
	}, nil
}

// Bytes implements serde.Serializer. It renders the accumulated pairs.
func (s *serializer) Bytes() ([]byte, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	if s.depth != 0 {
		return nil, serde.NewConfigError("%d aggregate(s) left open", s.depth)
	}

	s.done = true

	buf := new(bytes.Buffer)

	for i, p := range s.pairs {
		if i > 0 {
			buf.WriteByte('&')
		}

		buf.WriteString(url.QueryEscape(p.key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(p.value))
	}

	return buf.Bytes(), nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBool(bool) error { return s.noRoot() }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *serializer) SerializeByte(int8) error { return s.noRoot() }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *serializer) SerializeShort(int16) error { return s.noRoot() }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *serializer) SerializeChar(rune) error { return s.noRoot() }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *serializer) SerializeInt(int32) error { return s.noRoot() }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *serializer) SerializeLong(int64) error { return s.noRoot() }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *serializer) SerializeFloat(float32) error { return s.noRoot() }

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDouble(float64) error { return s.noRoot() }

// SerializeString implements serde.PrimitiveSerializer.
func (s *serializer) SerializeString(string) error { return s.noRoot() }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBlob([]byte) error { return s.noRoot() }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *serializer) SerializeTimestamp(time.Time, serde.TimestampFormatKind) error {
	return s.noRoot()
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBigNumber(*big.Float) error { return s.noRoot() }

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDocument(serde.Document) error { return s.noRoot() }

// SerializeNull implements serde.PrimitiveSerializer.
func (s *serializer) SerializeNull() error { return s.noRoot() }

func (s *serializer) noRoot() error {
	err := s.check()
	if err != nil {
		return err
	}

	return serde.NewConfigError("the form-url format requires named members")
}

func (s *serializer) check() error {
	if s.done {
		return serde.NewConfigError("serializer already finalized")
	}

	return nil
}

func (s *serializer) add(key, value string) {
	s.pairs = append(s.pairs, pair{key: key, value: value})
}

func boolText(v bool) string { return strconv.FormatBool(v) }

func intText(v int64) string { return strconv.FormatInt(v, 10) }

func floatText(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}

func blobText(v []byte) string {
	return base64.StdEncoding.EncodeToString(v)
}
