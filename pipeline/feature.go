// This file contains the standard feature installed by generated client
// configurations.

package pipeline

import (
	"github.com/sableio/sable"
	"github.com/sableio/sable/serde"
)

// standardFeature bundles the middlewares every generated client installs:
// request ids, logging, metrics, retries and the serde binding.
//
// - implements pipeline.Feature
type standardFeature struct {
	provider serde.Provider
	retries  uint64
}

// NewStandardFeature returns a feature installing the standard middleware
// chain bound to the given provider.
func NewStandardFeature(provider serde.Provider, retries uint64) Feature {
	return standardFeature{
		provider: provider,
		retries:  retries,
	}
}

// Install implements pipeline.Feature. It appends the standard chain in
// outermost-first order.
func (f standardFeature) Install(p *Pipeline) error {
	p.Use(
		RequestID(),
		Logging(sable.Logger),
		Metrics(),
		Retry(f.retries),
		Serde(f.provider),
		Gzip(),
	)

	return nil
}
