// Package json implements the serde provider for the JSON format.
//
// It is built on top of the json-iterator library: the serializer drives a
// jsoniter.Stream so that members are emitted in the exact call order, and
// the deserializer drives a jsoniter.Iterator so that unknown members can be
// skipped at the token level without materializing them.
package json

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sableio/sable/serde"
)

var cfg = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonProvider is the provider for the JSON format.
//
// - implements serde.Provider
type jsonProvider struct{}

// NewProvider returns a JSON provider.
func NewProvider() serde.Provider {
	return jsonProvider{}
}

// GetFormat implements serde.Provider. It returns the JSON format name.
func (jsonProvider) GetFormat() serde.Format {
	return serde.FormatJSON
}

// Serializer implements serde.Provider. It returns a fresh serializer with
// an empty buffer.
func (jsonProvider) Serializer() serde.Serializer {
	return newSerializer()
}

// Deserializer implements serde.Provider. It returns a fresh deserializer
// positioned at the beginning of the payload.
func (jsonProvider) Deserializer(data []byte) (serde.Deserializer, error) {
	return newDeserializer(data), nil
}

// wireName returns the member name to use on the wire: the JSON name trait
// when one is attached, the serial name otherwise.
func wireName(d serde.SdkFieldDescriptor) string {
	if t, found := d.FindTrait(serde.TraitJSONName); found {
		return t.(serde.JSONName).Name
	}

	return d.SerialName()
}
