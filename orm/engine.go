package orm

import (
	"context"

	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/log"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

var logger = log.NewModuleLogger("orm")

// Engine is the graph operation engine.
type Engine struct {
	schema   *mapping.Schema
	resolver *mapping.Resolver
	store    repository.GraphStore
	options  *Options
}

// New creates new engine for the schema entities stored in the 'store'.
func New(schema *mapping.Schema, resolver *mapping.Resolver, store repository.GraphStore, options ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, option := range options {
		option(o)
	}
	switch o.CreatePolicy {
	case config.CreateUpsert, config.CreateStrict:
	default:
		return nil, errors.NewDetf(class.CommonInvalidOptions, "unknown create policy: '%s'", o.CreatePolicy)
	}
	if resolver == nil {
		resolver = mapping.NewResolver(schema)
	}
	return &Engine{schema: schema, resolver: resolver, store: store, options: o}, nil
}

// Schema gets the engine schema.
func (e *Engine) Schema() *mapping.Schema {
	return e.schema
}

// Resolver gets the engine relationship resolver.
func (e *Engine) Resolver() *mapping.Resolver {
	return e.resolver
}

// Store gets the engine graph store.
func (e *Engine) Store() repository.GraphStore {
	return e.store
}

// EnsureIndexes creates the collection indexes of all the schema entities.
func (e *Engine) EnsureIndexes(ctx context.Context) error {
	for _, entity := range e.schema.Entities() {
		if err := e.ensureIndex(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// GetNode gets the properties of the 'entity' node stored with the 'key'.
// If the key or entity is not provided or the node doesn't exist, the result is nil with no error.
func (e *Engine) GetNode(ctx context.Context, key interface{}, entity *mapping.Entity) (mapping.Properties, error) {
	if entity == nil || key == nil {
		return nil, nil
	}
	n, err := e.lookup(ctx, key, entity)
	if err != nil || n == nil {
		return nil, err
	}
	return n.Properties, nil
}

// ensureIndex creates the entity collection index if it was not ensured yet.
// Concurrent first calls may create the index more than once, which is idempotent.
func (e *Engine) ensureIndex(ctx context.Context, entity *mapping.Entity) error {
	if entity.IndexEnsured() {
		return nil
	}
	if err := e.store.EnsureIndex(ctx, repository.IndexOf(entity)); err != nil {
		return err
	}
	entity.MarkIndexEnsured()
	logger.Debugf("index ensured for the collection: '%s'", entity.Collection())
	return nil
}

func (e *Engine) lookup(ctx context.Context, key interface{}, entity *mapping.Entity) (*repository.Node, error) {
	if err := e.ensureIndex(ctx, entity); err != nil {
		return nil, err
	}
	return e.store.IndexLookup(ctx, repository.IndexOf(entity), key)
}
