// Package formurl implements the serde provider for the form-url-encoded
// format used by query-style protocols.
//
// Members are addressed by dotted paths: a nested struct member "b" of a
// root member "a" is emitted as "a.b=...". Wrapped list items repeat the
// path with a "member" segment and a 1-based position ("tags.member.1"),
// flattened lists drop the segment ("tags.1"). Map entries follow the same
// scheme with "entry.N.key" and "entry.N.value" segments.
//
// The format is write-only: query payloads are produced by clients, never
// parsed back, so the provider reports deserialization as a configuration
// error.
package formurl

import (
	"github.com/sableio/sable/serde"
)

// formURLProvider is the provider for the form-url-encoded format.
//
// - implements serde.Provider
type formURLProvider struct{}

// NewProvider returns a form-url-encoded provider.
func NewProvider() serde.Provider {
	return formURLProvider{}
}

// GetFormat implements serde.Provider. It returns the form-url format name.
func (formURLProvider) GetFormat() serde.Format {
	return serde.FormatFormURL
}

// Serializer implements serde.Provider. It returns a fresh serializer with
// an empty pair list.
func (formURLProvider) Serializer() serde.Serializer {
	return newSerializer()
}

// Deserializer implements serde.Provider. The format is write-only.
func (formURLProvider) Deserializer(data []byte) (serde.Deserializer, error) {
	return nil, serde.NewConfigError("the form-url format cannot deserialize")
}

// memberSegment returns the path segment of the items of a list field,
// defaulting to "member" for wrapped lists.
func memberSegment(d serde.SdkFieldDescriptor) string {
	if t, found := d.FindTrait(serde.TraitXMLCollection); found {
		return t.(serde.XMLCollection).ElementName
	}

	return "member"
}

// entryNames returns the key and value path segments of a map field.
func entryNames(d serde.SdkFieldDescriptor) (string, string) {
	if t, found := d.FindTrait(serde.TraitXMLMapName); found {
		names := t.(serde.XMLMapName)
		return names.Key, names.Value
	}

	return "key", "value"
}

// join appends a segment to a dotted path.
func join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}

	return prefix + "." + segment
}
