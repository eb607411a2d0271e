package serde

// Document is a schema-less nested value: the payload shape is only known
// at runtime. It is a closed sum over the variants below, which keeps every
// consumer an exhaustive type switch.
type Document interface {
	isDocument()
}

// NullDocument is the null value.
//
// - implements serde.Document
type NullDocument struct{}

func (NullDocument) isDocument() {}

// BoolDocument is a boolean value.
//
// - implements serde.Document
type BoolDocument bool

func (BoolDocument) isDocument() {}

// NumberDocument is a numeric value.
//
// - implements serde.Document
type NumberDocument float64

func (NumberDocument) isDocument() {}

// StringDocument is a text value.
//
// - implements serde.Document
type StringDocument string

func (StringDocument) isDocument() {}

// ListDocument is an ordered collection of values.
//
// - implements serde.Document
type ListDocument []Document

func (ListDocument) isDocument() {}

// DocumentEntry is one key/value pair of a map document.
type DocumentEntry struct {
	Key   string
	Value Document
}

// MapDocument is a collection of entries. Entries keep their insertion
// order so that a transcoded payload preserves the member order of the
// source format when the target format is ordered.
//
// - implements serde.Document
type MapDocument []DocumentEntry

func (MapDocument) isDocument() {}

// Get returns the value of the entry with the given key, or false when the
// map holds none.
func (m MapDocument) Get(key string) (Document, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}
