// Package registry defines the provider registry mechanism.
//
// It also provides a default implementation that will always return a
// provider, so that a lookup miss surfaces as a meaningful serialization
// error instead of a nil dereference.
package registry

import (
	"github.com/sableio/sable/serde"
)

// Registry is an interface to register and get the serde provider for a
// specific format.
type Registry interface {
	// Register takes a format and its provider and it registers them so
	// that the provider can be looked up later.
	Register(serde.Format, serde.Provider)

	// Get returns the provider associated with the format.
	Get(serde.Format) serde.Provider
}
