// Package xml implements the serde provider for the XML format.
//
// XML is the reason the deserializer contract tolerates out-of-order
// members: attributes always arrive before child elements, whatever the
// declaration order of the descriptor. The serializer accumulates an ordered
// element tree so that attributes land in the start tag even when generated
// code writes them after regular members; child elements keep the exact call
// order.
//
// Lists and maps are wrapped by default ("member" items, "entry" pairs with
// "key"/"value" children) and support the flattened trait where items repeat
// the field element directly.
package xml

import (
	"github.com/sableio/sable/serde"
)

// xmlProvider is the provider for the XML format.
//
// - implements serde.Provider
type xmlProvider struct{}

// NewProvider returns an XML provider.
func NewProvider() serde.Provider {
	return xmlProvider{}
}

// GetFormat implements serde.Provider. It returns the XML format name.
func (xmlProvider) GetFormat() serde.Format {
	return serde.FormatXML
}

// Serializer implements serde.Provider. It returns a fresh serializer with
// an empty tree.
func (xmlProvider) Serializer() serde.Serializer {
	return newSerializer()
}

// Deserializer implements serde.Provider. It returns a fresh deserializer
// positioned before the root element.
func (xmlProvider) Deserializer(data []byte) (serde.Deserializer, error) {
	return newDeserializer(data), nil
}

// memberName returns the element name of the items of a list field,
// defaulting to "member" for wrapped lists. A flattened list repeats the
// field element itself.
func memberName(d serde.SdkFieldDescriptor) string {
	if d.HasTrait(serde.TraitXMLFlattened) {
		return d.SerialName()
	}

	if t, found := d.FindTrait(serde.TraitXMLCollection); found {
		return t.(serde.XMLCollection).ElementName
	}

	return "member"
}

// mapNames returns the key and value element names of a map field.
func mapNames(d serde.SdkFieldDescriptor) (string, string) {
	if t, found := d.FindTrait(serde.TraitXMLMapName); found {
		names := t.(serde.XMLMapName)
		return names.Key, names.Value
	}

	return "key", "value"
}

func timestampFormat(d serde.SdkFieldDescriptor) serde.TimestampFormatKind {
	if t, found := d.FindTrait(serde.TraitTimestampFormat); found {
		return t.(serde.TimestampFormat).Format
	}

	return serde.TimestampEpochSeconds
}
