// This file contains the XML serializer entry point and the textual
// encoding of scalar values.

package xml

import (
	"bytes"
	"encoding/base64"
	"math/big"
	"strconv"
	"time"

	"github.com/sableio/sable/serde"
)

// serializer is the XML implementation of the serializer contract.
//
// - implements serde.Serializer
type serializer struct {
	root    *node
	text    string
	hasText bool
	depth   int
	done    bool
}

func newSerializer() *serializer {
	return &serializer{}
}

// BeginStruct implements serde.Serializer. It opens the root element, which
// must be named: the anonymous sentinel cannot be emitted.
func (s *serializer) BeginStruct(obj serde.SdkObjectDescriptor) (serde.StructSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	if obj.IsAnonymous() {
		return nil, serde.NewConfigError("the XML format requires a named root element")
	}

	s.root = newNode(obj.SerialName())
	applyNamespace(s.root, obj.SdkFieldDescriptor)
	s.depth++

	return &structSerializer{ser: s, node: s.root}, nil
}

// BeginList implements serde.Serializer. It opens a root list element
// wrapping its items.
func (s *serializer) BeginList(d serde.SdkFieldDescriptor) (serde.ListSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	item := "member"
	if t, found := d.FindTrait(serde.TraitXMLCollection); found {
		item = t.(serde.XMLCollection).ElementName
	}

	s.root = newNode(d.SerialName())
	applyNamespace(s.root, d)
	s.depth++

	return &listSerializer{ser: s, parent: s.root, itemName: item}, nil
}

// BeginMap implements serde.Serializer. It opens a root map element wrapping
// its entries.
func (s *serializer) BeginMap(d serde.SdkFieldDescriptor) (serde.MapSerializer, error) {
	err := s.check()
	if err != nil {
		return nil, err
	}

	key, value := mapNames(d)

	s.root = newNode(d.SerialName())
	applyNamespace(s.root, d)
	s.depth++

	return &mapSerializer{
		ser:       s,
		parent:    s.root,
		entryName: "entry",
		keyName:   key,
		valueName: value,
	}, nil
}

// Bytes implements serde.Serializer. It renders the accumulated tree.
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

	if s.root != nil {
		s.root.render(buf)
	} else if s.hasText {
		escapeInto(buf, s.text)
	}

	return buf.Bytes(), nil
}

// SerializeBool implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBool(v bool) error { return s.scalar(boolText(v)) }

// SerializeByte implements serde.PrimitiveSerializer.
func (s *serializer) SerializeByte(v int8) error { return s.scalar(intText(int64(v))) }

// SerializeShort implements serde.PrimitiveSerializer.
func (s *serializer) SerializeShort(v int16) error { return s.scalar(intText(int64(v))) }

// SerializeChar implements serde.PrimitiveSerializer.
func (s *serializer) SerializeChar(v rune) error { return s.scalar(string(v)) }

// SerializeInt implements serde.PrimitiveSerializer.
func (s *serializer) SerializeInt(v int32) error { return s.scalar(intText(int64(v))) }

// SerializeLong implements serde.PrimitiveSerializer.
func (s *serializer) SerializeLong(v int64) error { return s.scalar(intText(v)) }

// SerializeFloat implements serde.PrimitiveSerializer.
func (s *serializer) SerializeFloat(v float32) error { return s.scalar(floatText(float64(v), 32)) }

// SerializeDouble implements serde.PrimitiveSerializer.
func (s *serializer) SerializeDouble(v float64) error { return s.scalar(floatText(v, 64)) }

// SerializeString implements serde.PrimitiveSerializer.
func (s *serializer) SerializeString(v string) error { return s.scalar(v) }

// SerializeBlob implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBlob(v []byte) error { return s.scalar(blobText(v)) }

// SerializeTimestamp implements serde.PrimitiveSerializer.
func (s *serializer) SerializeTimestamp(v time.Time, format serde.TimestampFormatKind) error {
	return s.scalar(serde.FormatTimestamp(v, format))
}

// SerializeBigNumber implements serde.PrimitiveSerializer.
func (s *serializer) SerializeBigNumber(v *big.Float) error {
	return s.scalar(v.Text('g', -1))
}

// SerializeDocument implements serde.PrimitiveSerializer. A document cannot
// be written without a containing element name.
func (s *serializer) SerializeDocument(serde.Document) error {
	return serde.NewConfigError("the XML format cannot write a root document")
}

// SerializeNull implements serde.PrimitiveSerializer. The XML policy is to
// write nothing.
func (s *serializer) SerializeNull() error { return s.check() }

func (s *serializer) check() error {
	if s.done {
		return serde.NewConfigError("serializer already finalized")
	}

	return nil
}

func (s *serializer) scalar(text string) error {
	err := s.check()
	if err != nil {
		return err
	}

	s.text = text
	s.hasText = true

	return nil
}

func applyNamespace(n *node, d serde.SdkFieldDescriptor) {
	t, found := d.FindTrait(serde.TraitXMLNamespace)
	if !found {
		return
	}

	ns := t.(serde.XMLNamespace)
	if ns.Prefix == "" {
		n.setAttr("xmlns", ns.URI)
	} else {
		n.setAttr("xmlns:"+ns.Prefix, ns.URI)
	}
}

func boolText(v bool) string { return strconv.FormatBool(v) }

func intText(v int64) string { return strconv.FormatInt(v, 10) }

func floatText(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}

func blobText(v []byte) string {
	return base64.StdEncoding.EncodeToString(v)
}

// documentInto renders a schema-less value under the given element.
func documentInto(n *node, doc serde.Document) {
	switch value := doc.(type) {
	case nil, serde.NullDocument:
		// Nothing to write.
	case serde.BoolDocument:
		n.text = boolText(bool(value))
	case serde.NumberDocument:
		n.text = floatText(float64(value), 64)
	case serde.StringDocument:
		n.text = string(value)
	case serde.ListDocument:
		for _, elem := range value {
			documentInto(n.child("member"), elem)
		}
	case serde.MapDocument:
		for _, entry := range value {
			documentInto(n.child(entry.Key), entry.Value)
		}
	}
}
