// This file contains the implementation of a provider registry.

package registry

import (
	"github.com/sableio/sable/serde"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a default implementation of the Registry interface. It
// always returns a provider, which means an empty one is returned if the key
// is unknown.
//
// - implements registry.Registry
type SimpleRegistry struct {
	store map[serde.Format]serde.Provider
}

// NewSimpleRegistry returns a new empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		store: make(map[serde.Format]serde.Provider),
	}
}

// Register implements registry.Registry. It registers the provider for the
// given format.
func (r *SimpleRegistry) Register(name serde.Format, p serde.Provider) {
	r.store[name] = p
}

// Get implements registry.Registry. It returns the provider associated with
// the format if it exists, otherwise it returns an empty provider.
func (r *SimpleRegistry) Get(name serde.Format) serde.Provider {
	p := r.store[name]
	if p == nil {
		return emptyProvider{name: name}
	}

	return p
}

// emptyProvider is a provider that always returns an error so that the
// serialization and deserialization can fail with meaningful errors without
// checking the provider existence.
//
// - implements serde.Provider
type emptyProvider struct {
	name serde.Format
}

// GetFormat implements serde.Provider. It returns the missing format name.
func (p emptyProvider) GetFormat() serde.Format {
	return p.name
}

// Serializer implements serde.Provider. It returns a serializer that fails
// on every call.
func (p emptyProvider) Serializer() serde.Serializer {
	return emptySerializer{err: p.error()}
}

// Deserializer implements serde.Provider. It always returns an error.
func (p emptyProvider) Deserializer([]byte) (serde.Deserializer, error) {
	return nil, p.error()
}

func (p emptyProvider) error() error {
	return xerrors.Errorf("format '%s' is not registered", p.name)
}
