// This file contains the CBOR deserializer. The payload is decoded once
// into a generic value and the iterators walk the result. Struct members
// therefore arrive in Go map order, which the index-based dispatch contract
// tolerates.

package cbor

import (
	"math"
	"math/big"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/sableio/sable/serde"
)

// deserializer is the CBOR implementation of the deserializer contract. The
// pending value is set by the enclosing iterator before each read.
//
// - implements serde.Deserializer
// - implements serde.PrimitiveDeserializer
type deserializer struct {
	cur interface{}
	has bool
}

func newDeserializer(data []byte) (*deserializer, error) {
	var v interface{}

	err := cbor.Unmarshal(data, &v)
	if err != nil {
		return nil, serde.NewDecodeError("a well-formed payload", err.Error())
	}

	return &deserializer{cur: v, has: true}, nil
}

type member struct {
	name  string
	value interface{}
}

// DeserializeStruct implements serde.Deserializer.
func (d *deserializer) DeserializeStruct(obj serde.SdkObjectDescriptor) (serde.FieldIterator, error) {
	members, err := d.members()
	if err != nil {
		return nil, err
	}

	return &fieldIterator{deserializer: d, obj: obj, members: members}, nil
}

// DeserializeList implements serde.Deserializer.
func (d *deserializer) DeserializeList(df serde.SdkFieldDescriptor) (serde.ElementIterator, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, serde.NewDecodeError("an array", valueName(v))
	}

	return &elementIterator{deserializer: d, items: items}, nil
}

// DeserializeMap implements serde.Deserializer.
func (d *deserializer) DeserializeMap(df serde.SdkFieldDescriptor) (serde.EntryIterator, error) {
	members, err := d.members()
	if err != nil {
		return nil, err
	}

	return &entryIterator{deserializer: d, members: members}, nil
}

// ReadBool implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBool() (bool, error) {
	v, err := d.take()
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, serde.NewDecodeError("a boolean", valueName(v))
	}

	return b, nil
}

// ReadByte implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadByte() (int8, error) {
	v, err := d.integer("an 8-bit integer", math.MinInt8, math.MaxInt8)
	return int8(v), err
}

// ReadShort implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadShort() (int16, error) {
	v, err := d.integer("a 16-bit integer", math.MinInt16, math.MaxInt16)
	return int16(v), err
}

// ReadChar implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadChar() (rune, error) {
	text, err := d.text()
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
	v, err := d.integer("a 32-bit integer", math.MinInt32, math.MaxInt32)
	return int32(v), err
}

// ReadLong implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadLong() (int64, error) {
	return d.integer("a 64-bit integer", math.MinInt64, math.MaxInt64)
}

// ReadFloat implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadFloat() (float32, error) {
	v, err := d.number("a 32-bit float")
	return float32(v), err
}

// ReadDouble implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadDouble() (float64, error) {
	return d.number("a 64-bit float")
}

// ReadString implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadString() (string, error) {
	return d.text()
}

// ReadBlob implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBlob() ([]byte, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}

	data, ok := v.([]byte)
	if !ok {
		return nil, serde.NewDecodeError("a byte string", valueName(v))
	}

	return data, nil
}

// ReadTimestamp implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadTimestamp(format serde.TimestampFormatKind) (time.Time, error) {
	if format == serde.TimestampEpochSeconds {
		secs, err := d.number("an epoch timestamp")
		if err != nil {
			return time.Time{}, err
		}

		return serde.FromEpochSeconds(secs), nil
	}

	text, err := d.text()
	if err != nil {
		return time.Time{}, err
	}

	return serde.ParseTimestamp(format, text)
}

// ReadBigNumber implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBigNumber() (*big.Float, error) {
	text, err := d.text()
	if err != nil {
		return nil, err
	}

	v, _, err := big.ParseFloat(text, 10, 212, big.ToNearestEven)
	if err != nil {
		return nil, serde.NewDecodeError("a number", "'"+text+"'")
	}

	return v, nil
}

// ReadDocument implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadDocument() (serde.Document, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}

	return toDocument(v)
}

// ReadNull implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadNull() error {
	v, err := d.take()
	if err != nil {
		return err
	}

	if v != nil {
		return serde.NewDecodeError("a null", valueName(v))
	}

	return nil
}

// NextIsNull implements serde.PrimitiveDeserializer.
func (d *deserializer) NextIsNull() (bool, error) {
	return d.has && d.cur == nil, nil
}

// SkipValue discards the pending value. The payload was decoded up front so
// there is no cursor to advance.
func (d *deserializer) SkipValue() error {
	if !d.has {
		return serde.NewConfigError("no pending value to skip")
	}

	d.has = false

	return nil
}

func (d *deserializer) take() (interface{}, error) {
	if !d.has {
		return nil, serde.NewConfigError("no pending value to read")
	}

	d.has = false

	return d.cur, nil
}

// members takes the pending value as a map with text keys.
func (d *deserializer) members() ([]member, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}

	m, ok := v.(map[interface{}]interface{})
	if !ok {
		return nil, serde.NewDecodeError("a map", valueName(v))
	}

	members := make([]member, 0, len(m))
	for key, value := range m {
		name, ok := key.(string)
		if !ok {
			return nil, serde.NewDecodeError("a text key", valueName(key))
		}

		members = append(members, member{name: name, value: value})
	}

	return members, nil
}

func (d *deserializer) integer(expected string, min, max int64) (int64, error) {
	v, err := d.take()
	if err != nil {
		return 0, err
	}

	var value int64

	switch n := v.(type) {
	case int64:
		value = n
	case uint64:
		if n > math.MaxInt64 {
			return 0, serde.NewDecodeError(expected, "an out-of-range integer")
		}

		value = int64(n)
	default:
		return 0, serde.NewDecodeError(expected, valueName(v))
	}

	if value < min || value > max {
		return 0, serde.NewDecodeError(expected, "an out-of-range integer")
	}

	return value, nil
}

func (d *deserializer) number(expected string) (float64, error) {
	v, err := d.take()
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, serde.NewDecodeError(expected, valueName(v))
	}
}

func (d *deserializer) text() (string, error) {
	v, err := d.take()
	if err != nil {
		return "", err
	}

	text, ok := v.(string)
	if !ok {
		return "", serde.NewDecodeError("a text string", valueName(v))
	}

	return text, nil
}

func valueName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "a null"
	case bool:
		return "a boolean"
	case int64, uint64:
		return "an integer"
	case float32, float64:
		return "a float"
	case string:
		return "a text string"
	case []byte:
		return "a byte string"
	case []interface{}:
		return "an array"
	case map[interface{}]interface{}:
		return "a map"
	default:
		return "an unsupported value"
	}
}

func toDocument(v interface{}) (serde.Document, error) {
	switch value := v.(type) {
	case nil:
		return serde.NullDocument{}, nil
	case bool:
		return serde.BoolDocument(value), nil
	case int64:
		return serde.NumberDocument(value), nil
	case uint64:
		return serde.NumberDocument(value), nil
	case float32:
		return serde.NumberDocument(value), nil
	case float64:
		return serde.NumberDocument(value), nil
	case string:
		return serde.StringDocument(value), nil
	case []interface{}:
		list := make(serde.ListDocument, len(value))
		for i, elem := range value {
			doc, err := toDocument(elem)
			if err != nil {
				return nil, err
			}

			list[i] = doc
		}

		return list, nil
	case map[interface{}]interface{}:
		entries := make(serde.MapDocument, 0, len(value))
		for key, elem := range value {
			name, ok := key.(string)
			if !ok {
				return nil, serde.NewDecodeError("a text key", valueName(key))
			}

			doc, err := toDocument(elem)
			if err != nil {
				return nil, err
			}

			entries = append(entries, serde.DocumentEntry{Key: name, Value: doc})
		}

		return entries, nil
	default:
		return nil, serde.NewDecodeError("a document value", valueName(v))
	}
}

// fieldIterator walks the members of one decoded map.
//
// - implements serde.FieldIterator
type fieldIterator struct {
	*deserializer

	obj     serde.SdkObjectDescriptor
	members []member
	pos     int
}

// FindNextFieldIndex implements serde.FieldIterator.
func (it *fieldIterator) FindNextFieldIndex() (int, error) {
	if it.pos >= len(it.members) {
		return serde.ExhaustedIndex, nil
	}

	m := it.members[it.pos]
	it.pos++

	it.cur = m.value
	it.has = true

	for _, f := range it.obj.Fields() {
		if f.SerialName() == m.name {
			return f.Index(), nil
		}
	}

	return serde.UnknownFieldIndex, nil
}

// elementIterator walks the items of one decoded array.
//
// - implements serde.ElementIterator
type elementIterator struct {
	*deserializer

	items []interface{}
	pos   int
}

// HasNextElement implements serde.ElementIterator.
func (it *elementIterator) HasNextElement() (bool, error) {
	if it.pos >= len(it.items) {
		return false, nil
	}

	it.cur = it.items[it.pos]
	it.has = true
	it.pos++

	return true, nil
}

// entryIterator walks the entries of one decoded map.
//
// - implements serde.EntryIterator
type entryIterator struct {
	*deserializer

	members []member
	pos     int
	key     string
	hasKey  bool
}

// HasNextEntry implements serde.EntryIterator.
func (it *entryIterator) HasNextEntry() (bool, error) {
	if it.pos >= len(it.members) {
		it.hasKey = false
		return false, nil
	}

	m := it.members[it.pos]
	it.pos++

	it.key = m.name
	it.hasKey = true
	it.cur = m.value
	it.has = true

	return true, nil
}

// Key implements serde.EntryIterator.
func (it *entryIterator) Key() (string, error) {
	if !it.hasKey {
		return "", serde.NewConfigError("key requested but no entry is pending")
	}

	return it.key, nil
}
