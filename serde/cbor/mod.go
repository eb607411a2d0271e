// Package cbor implements the serde provider for the CBOR format.
//
// Values are encoded with definite-length aggregates. The writers assemble
// the aggregate headers themselves and concatenate the encodings of the
// members, so that the emission order of struct fields is preserved on the
// wire. Scalars are delegated to github.com/fxamacker/cbor/v2.
//
// Deserialization decodes the whole payload once and walks the resulting
// value. CBOR maps decode into Go maps, so the member arrival order observed
// by the iterators is unspecified; the index-based dispatch contract makes
// that harmless.
package cbor

import (
	"github.com/sableio/sable/serde"
)

// cborProvider is the provider for the CBOR format.
//
// - implements serde.Provider
type cborProvider struct{}

// NewProvider returns a CBOR provider.
func NewProvider() serde.Provider {
	return cborProvider{}
}

// GetFormat implements serde.Provider. It returns the CBOR format name.
func (cborProvider) GetFormat() serde.Format {
	return serde.FormatCBOR
}

// Serializer implements serde.Provider. It returns a fresh serializer.
func (cborProvider) Serializer() serde.Serializer {
	return newSerializer()
}

// Deserializer implements serde.Provider. It decodes the payload eagerly so
// that malformed data is reported up front.
func (cborProvider) Deserializer(data []byte) (serde.Deserializer, error) {
	return newDeserializer(data)
}

func timestampFormat(d serde.SdkFieldDescriptor) serde.TimestampFormatKind {
	if t, found := d.FindTrait(serde.TraitTimestampFormat); found {
		return t.(serde.TimestampFormat).Format
	}

	return serde.TimestampEpochSeconds
}
