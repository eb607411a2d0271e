// This file contains the in-memory element tree accumulated by the
// serializer. The tree keeps children in insertion order and renders without
// a prolog, the way SDK payloads are expected on the wire.

package xml

import (
	"bytes"
	"encoding/xml"
)

type attribute struct {
	name  string
	value string
}

// node is one element of the tree. A node either carries text or children,
// scalar writes create text-only elements.
type node struct {
	name     string
	attrs    []attribute
	children []*node
	text     string
}

func newNode(name string) *node {
	return &node{name: name}
}

func (n *node) setAttr(name, value string) {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs[i].value = value
			return
		}
	}

	n.attrs = append(n.attrs, attribute{name: name, value: value})
}

func (n *node) child(name string) *node {
	c := newNode(name)
	n.children = append(n.children, c)

	return c
}

func (n *node) render(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(n.name)

	for _, a := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.name)
		buf.WriteString(`="`)
		escapeInto(buf, a.value)
		buf.WriteByte('"')
	}

	if len(n.children) == 0 && n.text == "" {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')

	escapeInto(buf, n.text)

	for _, c := range n.children {
		c.render(buf)
	}

	buf.WriteString("</")
	buf.WriteString(n.name)
	buf.WriteByte('>')
}

func escapeInto(buf *bytes.Buffer, text string) {
	// EscapeText only fails on a failing writer, which bytes.Buffer is not.
	_ = xml.EscapeText(buf, []byte(text))
}
