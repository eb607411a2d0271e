// Package serde defines the primitives to serialize and deserialize (serde)
// structured values independently of the wire format.
//
// Generated client code declares one object descriptor per structured type
// and drives the Serializer and Deserializer contracts against it. The
// format is chosen among the backends:
// - JSON
// - XML
// - Form-URL (serialize only)
// - CBOR
//
// A backend implements the Provider interface and is bound once per client
// configuration, usually through a registry.Registry.
package serde

// Format is the identifier type for a supported format.
type Format string

const (
	// FormatJSON identifies the JSON format.
	FormatJSON Format = "JSON"

	// FormatXML identifies the XML format.
	FormatXML Format = "XML"

	// FormatFormURL identifies the form-url-encoded format.
	FormatFormURL Format = "FormURL"

	// FormatCBOR identifies the CBOR format.
	FormatCBOR Format = "CBOR"
)

// Provider binds a concrete wire format to the serializer and deserializer
// contracts. A provider is stateless: every call returns a fresh instance
// owning its own cursor or buffer, safe for a single linear call sequence.
type Provider interface {
	// GetFormat returns the name of the format for this provider.
	GetFormat() Format

	// Serializer returns a new serializer that accumulates one payload and
	// returns it with Bytes.
	Serializer() Serializer

	// Deserializer returns a new deserializer bound to the given payload. It
	// returns an error when the format does not support decoding, or when
	// the payload cannot even be opened.
	Deserializer(data []byte) (Deserializer, error)
}
