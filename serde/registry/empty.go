// This file contains a serializer that fails on every call. It backs the
// empty provider so that a missing format is reported at the first write
// instead of at the lookup.

package registry

import (
	"math/big"
	"time"

	"github.com/sableio/sable/serde"
)

// emptySerializer returns its error on every call.
//
// - implements serde.Serializer
type emptySerializer struct {
	err error
}

func (s emptySerializer) SerializeBool(bool) error       { return s.err }
func (s emptySerializer) SerializeByte(int8) error       { return s.err }
func (s emptySerializer) SerializeShort(int16) error     { return s.err }
func (s emptySerializer) SerializeChar(rune) error       { return s.err }
func (s emptySerializer) SerializeInt(int32) error       { return s.err }
func (s emptySerializer) SerializeLong(int64) error      { return s.err }
func (s emptySerializer) SerializeFloat(float32) error   { return s.err }
func (s emptySerializer) SerializeDouble(float64) error  { return s.err }
func (s emptySerializer) SerializeString(string) error   { return s.err }
func (s emptySerializer) SerializeBlob([]byte) error     { return s.err }
func (s emptySerializer) SerializeNull() error           { return s.err }
func (s emptySerializer) SerializeBigNumber(*big.Float) error {
	return s.err
}

func (s emptySerializer) SerializeTimestamp(time.Time, serde.TimestampFormatKind) error {
	return s.err
}

func (s emptySerializer) SerializeDocument(serde.Document) error {
	return s.err
}

func (s emptySerializer) BeginStruct(serde.SdkObjectDescriptor) (serde.StructSerializer, error) {
	return nil, s.err
}

func (s emptySerializer) BeginList(serde.SdkFieldDescriptor) (serde.ListSerializer, error) {
	return nil, s.err
}

func (s emptySerializer) BeginMap(serde.SdkFieldDescriptor) (serde.MapSerializer, error) {
	return nil, s.err
}

func (s emptySerializer) Bytes() ([]byte, error) {
	return nil, s.err
}
