// This file contains the XML deserializer. It walks the token stream of
// encoding/xml with a small pushback buffer, surfacing attributes first and
// then the child elements in payload order. Unknown members are skipped by
// discarding tokens until the element is balanced.

package xml

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/sableio/sable/serde"
)

// deserializer is the XML implementation of the deserializer contract. The
// pending value is either the text of an attribute or the start element of
// the value to read; scalar reads and recursions consume it.
//
// - implements serde.Deserializer
// - implements serde.PrimitiveDeserializer
type deserializer struct {
	dec      *xml.Decoder
	pushback []xml.Token
	attrText *string
	elem     *xml.StartElement
}

func newDeserializer(data []byte) *deserializer {
	return &deserializer{
		dec: xml.NewDecoder(bytes.NewReader(data)),
	}
}

// DeserializeStruct implements serde.Deserializer.
func (d *deserializer) DeserializeStruct(obj serde.SdkObjectDescriptor) (serde.FieldIterator, error) {
	start, err := d.openElement("an element")
	if err != nil {
		return nil, err
	}

	attrs := []xml.Attr{}
	for _, a := range start.Attr {
		// Namespace declarations are structural, never surfaced as members.
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}

		attrs = append(attrs, a)
	}

	return &fieldIterator{deserializer: d, obj: obj, attrs: attrs}, nil
}

// DeserializeList implements serde.Deserializer.
func (d *deserializer) DeserializeList(df serde.SdkFieldDescriptor) (serde.ElementIterator, error) {
	if df.HasTrait(serde.TraitXMLFlattened) && d.elem != nil {
		// The pending element is the first item of the flattened list.
		return &elementIterator{
			deserializer: d,
			itemName:     d.elem.Name.Local,
			flattened:    true,
			first:        true,
		}, nil
	}

	_, err := d.openElement("a list element")
	if err != nil {
		return nil, err
	}

	return &elementIterator{deserializer: d}, nil
}

// DeserializeMap implements serde.Deserializer.
func (d *deserializer) DeserializeMap(df serde.SdkFieldDescriptor) (serde.EntryIterator, error) {
	keyName, valueName := mapNames(df)

	if df.HasTrait(serde.TraitXMLFlattened) && d.elem != nil {
		return &entryIterator{
			deserializer: d,
			entryName:    d.elem.Name.Local,
			keyName:      keyName,
			valueName:    valueName,
			flattened:    true,
			first:        true,
		}, nil
	}

	_, err := d.openElement("a map element")
	if err != nil {
		return nil, err
	}

	return &entryIterator{
		deserializer: d,
		entryName:    "entry",
		keyName:      keyName,
		valueName:    valueName,
	}, nil
}

// ReadBool implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBool() (bool, error) {
	text, err := d.readText()
	if err != nil {
		return false, err
	}

	v, err := strconv.ParseBool(text)
	if err != nil {
		return false, serde.NewDecodeError("a boolean", "'"+text+"'")
	}

	return v, nil
}

// ReadByte implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadByte() (int8, error) {
	v, err := d.readInt("an 8-bit integer", 8)
	return int8(v), err
}

// ReadShort implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadShort() (int16, error) {
	v, err := d.readInt("a 16-bit integer", 16)
	return int16(v), err
}

// ReadChar implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadChar() (rune, error) {
	text, err := d.readText()
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
	v, err := d.readInt("a 32-bit integer", 32)
	return int32(v), err
}

// ReadLong implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadLong() (int64, error) {
	return d.readInt("a 64-bit integer", 64)
}

// ReadFloat implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadFloat() (float32, error) {
	v, err := d.readFloat("a 32-bit float", 32)
	return float32(v), err
}

// ReadDouble implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadDouble() (float64, error) {
	return d.readFloat("a 64-bit float", 64)
}

// ReadString implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadString() (string, error) {
	return d.readText()
}

// ReadBlob implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBlob() ([]byte, error) {
	text, err := d.readText()
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
	text, err := d.readText()
	if err != nil {
		return time.Time{}, err
	}

	return serde.ParseTimestamp(format, text)
}

// ReadBigNumber implements serde.PrimitiveDeserializer.
func (d *deserializer) ReadBigNumber() (*big.Float, error) {
	text, err := d.readText()
	if err != nil {
		return nil, err
	}

	v, _, err := big.ParseFloat(text, 10, 212, big.ToNearestEven)
	if err != nil {
		return nil, serde.NewDecodeError("a number", "'"+text+"'")
	}

	return v, nil
}

// ReadDocument implements serde.PrimitiveDeserializer. The XML format has no
// schema-less representation to read from.
func (d *deserializer) ReadDocument() (serde.Document, error) {
	return nil, serde.NewConfigError("the XML format cannot read a document")
}

// ReadNull implements serde.PrimitiveDeserializer. A null is an empty
// element.
func (d *deserializer) ReadNull() error {
	text, err := d.readText()
	if err != nil {
		return err
	}

	if text != "" {
		return serde.NewDecodeError("an empty element", "'"+text+"'")
	}

	return nil
}

// NextIsNull implements serde.PrimitiveDeserializer. The XML format has no
// explicit null token.
func (d *deserializer) NextIsNull() (bool, error) {
	return false, nil
}

// SkipValue discards the pending attribute or element, recursing through
// nested elements until the tree is balanced.
func (d *deserializer) SkipValue() error {
	if d.attrText != nil {
		d.attrText = nil
		return nil
	}

	if d.elem == nil {
		return serde.NewConfigError("no pending value to skip")
	}

	d.elem = nil

	depth := 1
	for depth > 0 {
		tok, err := d.token()
		if err != nil {
			return err
		}

		if tok == nil {
			return serde.NewUnexpectedEOS("the end of the skipped element")
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return nil
}

func (d *deserializer) readInt(expected string, bits int) (int64, error) {
	text, err := d.readText()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
	if err != nil {
		return 0, serde.NewDecodeError(expected, "'"+text+"'")
	}

	return v, nil
}

func (d *deserializer) readFloat(expected string, bits int) (float64, error) {
	text, err := d.readText()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), bits)
	if err != nil {
		return 0, serde.NewDecodeError(expected, "'"+text+"'")
	}

	return v, nil
}

// readText consumes the pending value as text: either the attribute value,
// or the character data of the pending element up to its end tag.
func (d *deserializer) readText() (string, error) {
	if d.attrText != nil {
		text := *d.attrText
		d.attrText = nil

		return text, nil
	}

	if d.elem == nil {
		return "", serde.NewConfigError("no pending value to read")
	}

	d.elem = nil

	sb := strings.Builder{}

	for {
		tok, err := d.token()
		if err != nil {
			return "", err
		}

		if tok == nil {
			return "", serde.NewUnexpectedEOS("the end of the element")
		}

		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		case xml.StartElement:
			return "", serde.NewDecodeError("a text value", "element '"+t.Name.Local+"'")
		}
	}
}

// token returns the next token, honoring the pushback buffer. A nil token
// with no error signals the end of the payload.
func (d *deserializer) token() (xml.Token, error) {
	if n := len(d.pushback); n > 0 {
		t := d.pushback[n-1]
		d.pushback = d.pushback[:n-1]

		return t, nil
	}

	t, err := d.dec.Token()
	if err == io.EOF {
		return nil, nil
	}

	if err != nil {
		return nil, serde.NewDecodeError("a well-formed token", err.Error())
	}

	return xml.CopyToken(t), nil
}

func (d *deserializer) unread(t xml.Token) {
	d.pushback = append(d.pushback, t)
}

// nextContent returns the next structural token, skipping comments,
// processing instructions and whitespace.
func (d *deserializer) nextContent() (xml.Token, error) {
	for {
		tok, err := d.token()
		if err != nil || tok == nil {
			return tok, err
		}

		switch t := tok.(type) {
		case xml.StartElement, xml.EndElement:
			return tok, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return tok, nil
			}
		}
	}
}

// openElement consumes the pending element, or reads the next start element
// of the stream.
func (d *deserializer) openElement(expected string) (xml.StartElement, error) {
	if d.elem != nil {
		start := *d.elem
		d.elem = nil

		return start, nil
	}

	if d.attrText != nil {
		return xml.StartElement{}, serde.NewDecodeError(expected, "an attribute value")
	}

	for {
		tok, err := d.nextContent()
		if err != nil {
			return xml.StartElement{}, err
		}

		if tok == nil {
			return xml.StartElement{}, serde.NewUnexpectedEOS(expected)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, serde.NewDecodeError(expected,
				"the end of element '"+t.Name.Local+"'")
		}
	}
}

// fieldIterator walks the members of one element: the attributes first, then
// the child elements in payload order.
//
// - implements serde.FieldIterator
type fieldIterator struct {
	*deserializer

	obj   serde.SdkObjectDescriptor
	attrs []xml.Attr
	done  bool
}

// FindNextFieldIndex implements serde.FieldIterator.
func (it *fieldIterator) FindNextFieldIndex() (int, error) {
	if it.done {
		return serde.ExhaustedIndex, nil
	}

	if len(it.attrs) > 0 {
		a := it.attrs[0]
		it.attrs = it.attrs[1:]

		value := a.Value
		it.attrText = &value

		for _, f := range it.obj.Fields() {
			if f.HasTrait(serde.TraitXMLAttribute) && f.SerialName() == a.Name.Local {
				return f.Index(), nil
			}
		}

		return serde.UnknownFieldIndex, nil
	}

	tok, err := it.nextContent()
	if err != nil {
		return 0, err
	}

	if tok == nil {
		return 0, serde.NewUnexpectedEOS("the end of the element")
	}

	switch t := tok.(type) {
	case xml.StartElement:
		start := t
		it.elem = &start

		for _, f := range it.obj.Fields() {
			if !f.HasTrait(serde.TraitXMLAttribute) && f.SerialName() == t.Name.Local {
				return f.Index(), nil
			}
		}

		return serde.UnknownFieldIndex, nil
	case xml.EndElement:
		it.done = true
		return serde.ExhaustedIndex, nil
	default:
		return 0, serde.NewDecodeError("an element", "character data")
	}
}

// elementIterator walks the items of one list.
//
// - implements serde.ElementIterator
type elementIterator struct {
	*deserializer

	itemName  string
	flattened bool
	first     bool
}

// HasNextElement implements serde.ElementIterator.
func (it *elementIterator) HasNextElement() (bool, error) {
	if it.flattened {
		return it.nextFlattened()
	}

	tok, err := it.nextContent()
	if err != nil {
		return false, err
	}

	if tok == nil {
		return false, serde.NewUnexpectedEOS("an item or the end of the list")
	}

	switch t := tok.(type) {
	case xml.StartElement:
		start := t
		it.elem = &start

		return true, nil
	case xml.EndElement:
		return false, nil
	default:
		return false, serde.NewDecodeError("an item element", "character data")
	}
}

func (it *elementIterator) nextFlattened() (bool, error) {
	if it.first {
		// The first item was already consumed when the field was matched.
		it.first = false
		return true, nil
	}

	tok, err := it.nextContent()
	if err != nil {
		return false, err
	}

	if tok == nil {
		return false, nil
	}

	start, ok := tok.(xml.StartElement)
	if !ok || start.Name.Local != it.itemName {
		// The next member belongs to the enclosing element.
		it.unread(tok)
		return false, nil
	}

	it.elem = &start

	return true, nil
}

// entryIterator walks the entries of one map. Each entry element holds a key
// element followed by a value element.
//
// - implements serde.EntryIterator
type entryIterator struct {
	*deserializer

	entryName string
	keyName   string
	valueName string
	flattened bool
	first     bool
	inEntry   bool
	key       string
	hasKey    bool
}

// HasNextEntry implements serde.EntryIterator.
func (it *entryIterator) HasNextEntry() (bool, error) {
	err := it.closeEntry()
	if err != nil {
		return false, err
	}

	more, err := it.nextEntry()
	if err != nil || !more {
		it.hasKey = false
		return false, err
	}

	// Inside the entry: the key element comes first, then the cursor stays
	// on the value element.
	err = it.readKey()
	if err != nil {
		return false, err
	}

	err = it.openValue()
	if err != nil {
		return false, err
	}

	it.inEntry = true

	return true, nil
}

// Key implements serde.EntryIterator.
func (it *entryIterator) Key() (string, error) {
	if !it.hasKey {
		return "", serde.NewConfigError("key requested but no entry is pending")
	}

	return it.key, nil
}

// closeEntry consumes the end tag of the previous entry once its value was
// read.
func (it *entryIterator) closeEntry() error {
	if !it.inEntry {
		return nil
	}

	it.inEntry = false

	tok, err := it.nextContent()
	if err != nil {
		return err
	}

	if tok == nil {
		return serde.NewUnexpectedEOS("the end of the entry")
	}

	if _, ok := tok.(xml.EndElement); !ok {
		return serde.NewDecodeError("the end of the entry", "another token")
	}

	return nil
}

func (it *entryIterator) nextEntry() (bool, error) {
	if it.flattened {
		if it.first {
			it.first = false
			it.elem = nil

			return true, nil
		}

		tok, err := it.nextContent()
		if err != nil {
			return false, err
		}

		if tok == nil {
			return false, nil
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != it.entryName {
			it.unread(tok)
			return false, nil
		}

		return true, nil
	}

	tok, err := it.nextContent()
	if err != nil {
		return false, err
	}

	if tok == nil {
		return false, serde.NewUnexpectedEOS("an entry or the end of the map")
	}

	switch tok.(type) {
	case xml.StartElement:
		return true, nil
	case xml.EndElement:
		return false, nil
	default:
		return false, serde.NewDecodeError("an entry element", "character data")
	}
}

func (it *entryIterator) readKey() error {
	tok, err := it.nextContent()
	if err != nil {
		return err
	}

	start, ok := tok.(xml.StartElement)
	if !ok || start.Name.Local != it.keyName {
		return serde.NewDecodeError("the key element '"+it.keyName+"'", "another token")
	}

	it.elem = &start

	key, err := it.readText()
	if err != nil {
		return err
	}

	it.key = key
	it.hasKey = true

	return nil
}

func (it *entryIterator) openValue() error {
	tok, err := it.nextContent()
	if err != nil {
		return err
	}

	start, ok := tok.(xml.StartElement)
	if !ok || start.Name.Local != it.valueName {
		return serde.NewDecodeError("the value element '"+it.valueName+"'", "another token")
	}

	it.elem = &start

	return nil
}
