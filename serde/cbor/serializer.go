// This file contains the CBOR serializer entry point and the encoding of
// scalar values.

package cbor

import (
	"math/big"
	"time"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"

	"github.com/sableio/sable/serde"
)

// nullByte is the CBOR simple value null.
const nullByte = 0xf6

// Major types of the aggregate headers assembled by the writers.
const (
	majorArray = 4
	majorMap   = 5
)

// serializer is the CBOR implementation of the serializer contract. The
// root value is delivered as one finished encoding.
//
// - implements serde.Serializer
type serializer struct {
	root  []byte
	depth int
	done  bool
}

func newSerializer() *serializer {
	return &serializer{}
}

// BeginStruct implements serde.Serializer. A struct is a definite-length
// map keyed by the field serial names.
func (s *serializer) BeginStruct(obj serde.SdkObjectDescriptor) (serde.StructSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.depth++

	return &structSerializer{ser: s, emit: s.setRoot}, nil
}

// BeginList implements serde.Serializer. A list is a definite-length array.
func (s *serializer) BeginList(d serde.SdkFieldDescriptor) (serde.ListSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.depth++

	return &listSerializer{ser: s, emit: s.setRoot}, nil
}

// BeginMap implements serde.Serializer. A map is a definite-length map with
// text keys.
func (s *serializer) BeginMap(d serde.SdkFieldDescriptor) (serde.MapSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	s.depth++

	return &mapSerializer{ser: s, emit: s.setRoot}, nil
}

// Bytes implements serde.Serializer. It returns the finished encoding.
func (s *serializer) Bytes() ([]byte, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	if s.depth != 0 {
		return nil, serde.NewConfigError("%d aggregate(s) left open", s.depth)
	}

	s.done = true

	return s.root, nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBool(v bool) error { return s.scalar(v) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *serializer) SerializeByte(v int8) error { return s.scalar(int64(v)) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *serializer) SerializeShort(v int16) error { return s.scalar(int64(v)) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *serializer) SerializeChar(v rune) error { return s.scalar(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *serializer) SerializeInt(v int32) error { return s.scalar(int64(v)) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *serializer) SerializeLong(v int64) error { return s.scalar(v) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *serializer) SerializeFloat(v float32) error { return s.scalar(v) }

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDouble(v float64) error { return s.scalar(v) }

// SerializeString implements serde.PrimitiveSerializer.
func (s *serializer) SerializeString(v string) error { return s.scalar(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBlob(v []byte) error { return s.scalar(v) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *serializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeTimestamp(v, format)
	if err != nil {
		return err
	}

	s.setRoot(enc)

	return nil
}

// SerializeBigNumber implements serde.PrimitiveSerializer. The value is
// encoded as its decimal text so that no precision is lost.
func (s *serializer) SerializeBigNumber(v *big.Float) error {
	return s.scalar(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDocument(v serde.Document) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeDocument(v)
	if err != nil {
		return err
	}

	s.setRoot(enc)

	return nil
}

// SerializeNull implements serde.PrimitiveSerializer.
func (s *serializer) SerializeNull() error {
	err := s.check()
	if err != nil {
		return err
	}

	s.setRoot([]byte{nullByte})

	return nil
}

func (s *serializer) check() error {
	if s.done {
		return serde.NewConfigError("serializer already finalized")
	}

	return nil
}

func (s *serializer) setRoot(enc []byte) {
	s.root = enc
}

func (s *serializer) scalar(v interface{}) error {
	err := s.check()
	if err != nil {
		return err
	}

	enc, err := encodeScalar(v)
	if err != nil {
		return err
	}

	s.setRoot(enc)

	return nil
}

func encodeScalar(v interface{}) ([]byte, error) {
	enc, err := cbor.Marshal(v)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode the value: %v", err)
	}

	return enc, nil
}

func encodeTimestamp(v time.Time, format serde.TimestampFormatKind) ([]byte, error) {
	if format == serde.TimestampEpochSeconds {
		return encodeScalar(serde.EpochSeconds(v))
	}

	return encodeScalar(serde.FormatTimestamp(v, format))
}

func encodeDocument(doc serde.Document) ([]byte, error) {
	switch value := doc.(type) {
	case nil, serde.NullDocument:
		return []byte{nullByte}, nil
	case serde.BoolDocument:
		return encodeScalar(bool(value))
	case serde.NumberDocument:
		return encodeScalar(float64(value))
	case serde.StringDocument:
		return encodeScalar(string(value))
	case serde.ListDocument:
		buf := header(majorArray, len(value))
		for _, elem := range value {
			enc, err := encodeDocument(elem)
			if err != nil {
				return nil, err
			}

			buf = append(buf, enc...)
		}

		return buf, nil
	case serde.MapDocument:
		buf := header(majorMap, len(value))
		for _, entry := range value {
			key, err := encodeScalar(entry.Key)
			if err != nil {
				return nil, err
			}

			enc, err := encodeDocument(entry.Value)
			if err != nil {
				return nil, err
			}

			buf = append(buf, key...)
			buf = append(buf, enc...)
		}

		return buf, nil
	default:
		return nil, serde.NewConfigError("unsupported document variant %T", doc)
	}
}

// header encodes the definite-length header of an aggregate.
func header(major byte, n int) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n < 1<<8:
		return []byte{major<<5 | 24, byte(n)}
	case n < 1<<16:
		return []byte{major<<5 | 25, byte(n >> 8), byte(n)}
	default:
		return []byte{major<<5 | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
}
