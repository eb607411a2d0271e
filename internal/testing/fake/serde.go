// This file contains fakes for the serde contracts.

package fake

import (
	"github.com/sableio/sable/serde"
)

// Provider is a fake serde provider. The zero value returns zero values on
// every call; an error can be configured for the deserializer factory.
//
// - implements serde.Provider
type Provider struct {
	serde.Provider

	Ser   serde.Serializer
	Deser serde.Deserializer
	Err   error
}

// GetFormat implements serde.Provider.
func (p Provider) GetFormat() serde.Format {
	return serde.Format("fake")
}

// Serializer implements serde.Provider.
func (p Provider) Serializer() serde.Serializer {
	return p.Ser
}

// Deserializer implements serde.Provider.
func (p Provider) Deserializer([]byte) (serde.Deserializer, error) {
	return p.Deser, p.Err
}
