package orm

import (
	"github.com/neuronlabs/neuron-graph/config"
)

// Options are the engine options.
type Options struct {
	// CreatePolicy defines how the creation of a node with an existing key is handled.
	// By default the node is upserted.
	CreatePolicy string
}

// Option is the engine option function.
type Option func(o *Options)

// WithCreatePolicy sets the node create policy - config.CreateUpsert or config.CreateStrict.
func WithCreatePolicy(policy string) Option {
	return func(o *Options) {
		o.CreatePolicy = policy
	}
}

func defaultOptions() *Options {
	return &Options{CreatePolicy: config.CreateUpsert}
}
