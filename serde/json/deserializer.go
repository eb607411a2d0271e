// This file contains the JSON deserializer. It walks the payload with a
// jsoniter.Iterator: members are surfaced in payload order, unknown members
// are skipped at the token level.

package json

import (
	"encoding/base64"
	"io"
	"math/big"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sableio/sable/serde"
)

// deserializer is the JSON implementation of the deserializer contract. The
// iterators below embed it to inherit the scalar reads and the recursion
// into nested aggregates.
//
// - implements serde.Deserializer
// - implements serde.PrimitiveDeserializer
type deserializer struct {
	iter *jsoniter.Iterator
}

func newDeserializer(data []byte) *deserializer {
	return &deserializer{
		iter: jsoniter.ParseBytes(cfg, data),
	}
}

// DeserializeStruct implements serde.Deserializer. It opens the object at
// the cursor and returns the iterator over its members.
func (d *deserializer) DeserializeStruct(obj serde.SdkObjectDescriptor) (serde.FieldIterator, error) {
	err := d.expect(jsoniter.ObjectValue, "an object")
	if err != nil {
		return nil, err
	}

	return &fieldIterator{deserializer: d, obj: obj}, nil
}

// DeserializeList implements serde.Deserializer. It opens the array at the
// cursor and returns the iterator over its elements.
func (d *deserializer) DeserializeList(serde.SdkFieldDescriptor) (serde.ElementIterator, error) {
	err := d.expect(jsoniter.ArrayValue, "an array")
	if err != nil {
		return nil, err
	}

	return &elementIterator{deserializer: d}, nil
}

// DeserializeMap implements serde.Deserializer. It opens the object at the
// cursor and returns the iterator over its entries.
func (d *deserializer) DeserializeMap(serde.SdkFieldDescriptor) (serde.EntryIterator, error) {
	err := d.expect(jsoniter.ObjectValue, "an object")
	if err != nil {
		return nil, err
	}

	return &entryIterator{deserializer: d}, nil
}

// ReadBool implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBool() (bool, error) {
	err := d.expect(jsoniter.BoolValue, "a boolean")
	if err != nil {
		return false, err
	}

	v := d.iter.ReadBool()

	return v, d.checkErr("a boolean")
}

// ReadByte implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadByte() (int8, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadInt8()

	return v, d.checkErr("an 8-bit integer")
}

// ReadShort implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadShort() (int16, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadInt16()

	return v, d.checkErr("a 16-bit integer")
}

// ReadChar implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadChar() (rune, error) {
	text, err := d.ReadString()
	if err != nil {
		return 0, err
	}

	runes := []rune(text)
	if len(runes) != 1 {
		return 0, serde.NewDecodeError("a single character", "'"+text+"'")
	}

	return runes[0], nil
}

// ReadInt implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadInt() (int32, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadInt32()

	return v, d.checkErr("a 32-bit integer")
}

// ReadLong implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadLong() (int64, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadInt64()

	return v, d.checkErr("a 64-bit integer")
}

// ReadFloat implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadFloat() (float32, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadFloat32()

	return v, d.checkErr("a 32-bit float")
}

// ReadDouble implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadDouble() (float64, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return 0, err
	}

	v := d.iter.ReadFloat64()

	return v, d.checkErr("a 64-bit float")
}

// ReadString implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadString() (string, error) {
	err := d.expect(jsoniter.StringValue, "a string")
	if err != nil {
		return "", err
	}

	v := d.iter.ReadString()

	return v, d.checkErr("a string")
}

// ReadBlob implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBlob() ([]byte, error) {
	text, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, serde.NewDecodeError("a base64 string", "'"+text+"'")
	}

	return data, nil
}

// ReadTimestamp implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadTimestamp(format serde.TimestampFormatKind) (time.Time, error) {
	if format == serde.TimestampEpochSeconds {
		secs, err := d.ReadDouble()
		if err != nil {
			return time.Time{}, err
		}

		return serde.FromEpochSeconds(secs), nil
	}

	text, err := d.ReadString()
	if err != nil {
		return time.Time{}, err
	}

	return serde.ParseTimestamp(format, text)
}

// ReadBigNumber implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBigNumber() (*big.Float, error) {
	err := d.expect(jsoniter.NumberValue, "a number")
	if err != nil {
		return nil, err
	}

	raw := d.iter.SkipAndReturnBytes()

	err = d.checkErr("a number")
	if err != nil {
		return nil, err
	}

	v, _, err := big.ParseFloat(string(raw), 10, 212, big.ToNearestEven)
	if err != nil {
		return nil, serde.NewDecodeError("a number", "'"+string(raw)+"'")
	}

	return v, nil
}

// ReadDocument implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadDocument() (serde.Document, error) {
	switch d.iter.WhatIsNext() {
	case jsoniter.NilValue:
		err := d.ReadNull()
		return serde.NullDocument{}, err
	case jsoniter.BoolValue:
		v, err := d.ReadBool()
		return serde.BoolDocument(v), err
	case jsoniter.NumberValue:
		v, err := d.ReadDouble()
		return serde.NumberDocument(v), err
	case jsoniter.StringValue:
		v, err := d.ReadString()
		return serde.StringDocument(v), err
	case jsoniter.ArrayValue:
		doc := serde.ListDocument{}
		for d.iter.ReadArray() {
			elem, err := d.ReadDocument()
			if err != nil {
				return nil, err
			}

			doc = append(doc, elem)
		}

		return doc, d.checkErr("an array")
	case jsoniter.ObjectValue:
		doc := serde.MapDocument{}
		for {
			key, more, err := d.readMemberName("a key or the end of the object")
			if err != nil {
				return nil, err
			}

			if !more {
				break
			}

			value, err := d.ReadDocument()
			if err != nil {
				return nil, err
			}

			doc = append(doc, serde.DocumentEntry{Key: key, Value: value})
		}

		return doc, nil
	default:
		return nil, serde.NewUnexpectedEOS("a value")
	}
}

// ReadNull implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadNull() error {
	err := d.expect(jsoniter.NilValue, "null")
	if err != nil {
		return err
	}

	d.iter.ReadNil()

	return d.checkErr("null")
}

// NextIsNull implements serde.PrimitiveDeserializer.
func (d *deserializer) NextIsNull() (bool, error) {
	return d.iter.WhatIsNext() == jsoniter.NilValue, nil
}

// SkipValue discards the value at the cursor, recursing through nested
// aggregates.
func (d *deserializer) SkipValue() error {
	d.iter.Skip()
	return d.checkErr("a well-formed value")
}

// readMemberName returns the name of the next object member, or false when
// the object is exhausted. ReadObject reports both the end of the object and
// a legal empty-string key as "", so the two cases are told apart by peeking
// at the cursor: an empty key always leaves its value pending.
func (d *deserializer) readMemberName(expected string) (string, bool, error) {
	name := d.iter.ReadObject()

	err := d.checkErr(expected)
	if err != nil {
		return "", false, err
	}

	if name == "" && d.iter.WhatIsNext() == jsoniter.InvalidValue {
		return "", false, nil
	}

	return name, true, nil
}

func (d *deserializer) expect(t jsoniter.ValueType, expected string) error {
	next := d.iter.WhatIsNext()

	err := d.checkErr(expected)
	if err != nil {
		return err
	}

	if next != t {
		return serde.NewDecodeError(expected, valueName(next))
	}

	return nil
}

func (d *deserializer) checkErr(expected string) error {
	err := d.iter.Error
	if err == nil || err == io.EOF {
		return nil
	}

	if err == io.ErrUnexpectedEOF {
		return serde.NewUnexpectedEOS(expected)
	}

	return serde.NewDecodeError(expected, err.Error())
}

func valueName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "a string"
	case jsoniter.NumberValue:
		return "a number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "a boolean"
	case jsoniter.ArrayValue:
		return "an array"
	case jsoniter.ObjectValue:
		return "an object"
	default:
		return "an invalid token"
	}
}

// fieldIterator walks the members of one JSON object against an object
// descriptor.
//
// - implements serde.FieldIterator
type fieldIterator struct {
	*deserializer

	obj serde.SdkObjectDescriptor
}

// FindNextFieldIndex implements serde.FieldIterator. It returns the declared
// index of the next member of the payload, which follows the payload order
// and not the declaration order.
func (it *fieldIterator) FindNextFieldIndex() (int, error) {
	name, more, err := it.readMemberName("a member name or the end of the object")
	if err != nil {
		return 0, err
	}

	if !more {
		return serde.ExhaustedIndex, nil
	}

	for _, f := range it.obj.Fields() {
		if wireName(f) == name {
			return f.Index(), nil
		}
	}

	return serde.UnknownFieldIndex, nil
}

// elementIterator walks the elements of one JSON array.
//
// - implements serde.ElementIterator
type elementIterator struct {
	*deserializer
}

// HasNextElement implements serde.ElementIterator.
func (it *elementIterator) HasNextElement() (bool, error) {
	more := it.iter.ReadArray()
	return more, it.checkErr("an element or the end of the array")
}

// entryIterator walks the entries of one JSON object acting as a map.
//
// - implements serde.EntryIterator
type entryIterator struct {
	*deserializer

	key    string
	hasKey bool
}

// HasNextEntry implements serde.EntryIterator.
func (it *entryIterator) HasNextEntry() (bool, error) {
	key, more, err := it.readMemberName("a key or the end of the object")
	if err != nil {
		return false, err
	}

	if !more {
		it.hasKey = false
		return false, nil
	}

	it.key = key
	it.hasKey = true

	return true, nil
}

// Key implements serde.EntryIterator.
func (it *entryIterator) Key() (string, error) {
	if !it.hasKey {
		return "", serde.NewConfigError("key requested but no entry is pending")
	}

	return it.key, nil
}
