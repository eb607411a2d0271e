package serde

// TraitKind is the tag identifying a concrete field trait. Traits are stored
// on a descriptor as a small ordered list and looked up by tag, so that a
// backend can query the metadata it understands and ignore the rest.
type TraitKind int

const (
	// TraitXMLAttribute marks a field carried as an attribute of the
	// enclosing element instead of a child element.
	TraitXMLAttribute TraitKind = iota

	// TraitXMLFlattened marks a list or map written as repeated sibling
	// elements without a wrapping element.
	TraitXMLFlattened

	// TraitXMLNamespace attaches a namespace declaration to the element.
	TraitXMLNamespace

	// TraitXMLCollection renames the element used for list members.
	TraitXMLCollection

	// TraitXMLMapName renames the key and value entry elements of a map.
	TraitXMLMapName

	// TraitJSONName overrides the member name used by the JSON backend.
	TraitJSONName

	// TraitTimestampFormat selects the textual representation of a
	// timestamp field.
	TraitTimestampFormat

	// TraitQueryLiteral appends a constant key/value pair when the
	// enclosing struct is serialized to form-url.
	TraitQueryLiteral
)

// FieldTrait is format-specific metadata attached to a field descriptor. A
// descriptor holds at most one trait per kind.
type FieldTrait interface {
	// TraitKind returns the tag of the concrete trait.
	TraitKind() TraitKind
}

// XMLAttribute marks a field to be written as an XML attribute.
//
// - implements serde.FieldTrait
type XMLAttribute struct{}

// TraitKind implements serde.FieldTrait.
func (XMLAttribute) TraitKind() TraitKind { return TraitXMLAttribute }

// XMLFlattened marks a list or map to be written without a wrapper element.
//
// - implements serde.FieldTrait
type XMLFlattened struct{}

// TraitKind implements serde.FieldTrait.
func (XMLFlattened) TraitKind() TraitKind { return TraitXMLFlattened }

// XMLNamespace attaches an XML namespace declaration to the element of the
// field. An empty prefix declares the default namespace.
//
// - implements serde.FieldTrait
type XMLNamespace struct {
	URI    string
	Prefix string
}

// TraitKind implements serde.FieldTrait.
func (XMLNamespace) TraitKind() TraitKind { return TraitXMLNamespace }

// XMLCollection overrides the name of the member elements of a list. The
// backend defaults to "member" when the trait is absent.
//
// - implements serde.FieldTrait
type XMLCollection struct {
	ElementName string
}

// TraitKind implements serde.FieldTrait.
func (XMLCollection) TraitKind() TraitKind { return TraitXMLCollection }

// XMLMapName overrides the key and value element names of a map. The backend
// defaults to "key" and "value" when the trait is absent.
//
// - implements serde.FieldTrait
type XMLMapName struct {
	Key   string
	Value string
}

// TraitKind implements serde.FieldTrait.
func (XMLMapName) TraitKind() TraitKind { return TraitXMLMapName }

// JSONName overrides the member name used by the JSON backend, when the wire
// name differs from the common serial name.
//
// - implements serde.FieldTrait
type JSONName struct {
	Name string
}

// TraitKind implements serde.FieldTrait.
func (JSONName) TraitKind() TraitKind { return TraitJSONName }

// TimestampFormatKind enumerates the textual timestamp representations.
type TimestampFormatKind int

const (
	// TimestampEpochSeconds writes the number of seconds since the epoch,
	// with a fractional part when the time has one.
	TimestampEpochSeconds TimestampFormatKind = iota

	// TimestampRFC3339 writes an RFC 3339 date-time.
	TimestampRFC3339

	// TimestampHTTPDate writes an IMF-fixdate as used in HTTP headers.
	TimestampHTTPDate
)

// TimestampFormat selects the representation of a timestamp field. Backends
// default to epoch seconds when the trait is absent.
//
// - implements serde.FieldTrait
type TimestampFormat struct {
	Format TimestampFormatKind
}

// TraitKind implements serde.FieldTrait.
func (TimestampFormat) TraitKind() TraitKind { return TraitTimestampFormat }

// QueryLiteral appends a constant key/value pair when the enclosing struct
// is serialized by the form-url backend.
//
// - implements serde.FieldTrait
type QueryLiteral struct {
	Key   string
	Value string
}

// TraitKind implements serde.FieldTrait.
func (QueryLiteral) TraitKind() TraitKind { return TraitQueryLiteral }
