package service

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/hooks"
	"github.com/neuronlabs/neuron-graph/log"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/orm"
	"github.com/neuronlabs/neuron-graph/repository"
)

var logger = log.NewModuleLogger("service")

// Service exposes the schema entities and connections operations.
type Service struct {
	schema  *mapping.Schema
	engine  *orm.Engine
	store   repository.GraphStore
	hooks   *hooks.Pipeline
	baseURL *url.URL

	customLock sync.RWMutex
	custom     map[*mapping.Entity][]*customProperty
}

type options struct {
	hooks        *hooks.Pipeline
	baseURL      string
	createPolicy string
	engine       *orm.Engine
}

// Option is the function that sets the service options.
type Option func(o *options)

// WithHooks sets the hook pipeline of the service.
func WithHooks(p *hooks.Pipeline) Option {
	return func(o *options) {
		o.hooks = p
	}
}

// WithBaseURL sets the absolute url used for the node, connection and paging links.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithCreatePolicy sets the node create policy of the service engine.
func WithCreatePolicy(policy string) Option {
	return func(o *options) {
		o.createPolicy = policy
	}
}

// WithEngine sets the graph engine used by the service. The engine must use the same schema.
func WithEngine(e *orm.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// New creates new service for the 'schema' entities stored in the 'store'.
// The schema is frozen - no more entities nor connections could be registered.
func New(schema *mapping.Schema, store repository.GraphStore, opts ...Option) (*Service, error) {
	o := &options{createPolicy: config.CreateUpsert}
	for _, opt := range opts {
		opt(o)
	}
	schema.Freeze()

	s := &Service{
		schema: schema,
		store:  store,
		hooks:  o.hooks,
		custom: map[*mapping.Entity][]*customProperty{},
	}
	if s.hooks == nil {
		s.hooks = hooks.New()
	}
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil || !u.IsAbs() {
			return nil, errors.NewDetf(class.CommonInvalidOptions, "invalid base url: '%s'", o.baseURL)
		}
		s.baseURL = u
	}

	s.engine = o.engine
	if s.engine == nil {
		e, err := orm.New(schema, mapping.NewResolver(schema), store, orm.WithCreatePolicy(o.createPolicy))
		if err != nil {
			return nil, err
		}
		s.engine = e
	} else if s.engine.Schema() != schema {
		return nil, errors.NewDet(class.CommonInvalidOptions, "provided engine uses different schema")
	}
	return s, nil
}

// Engine gets the service graph engine.
func (s *Service) Engine() *orm.Engine {
	return s.engine
}

// Hooks gets the service hook pipeline.
func (s *Service) Hooks() *hooks.Pipeline {
	return s.hooks
}

// Close closes the service store. If the context has no deadline the store is given 30 seconds.
func (s *Service) Close(ctx context.Context) error {
	var cancelFunc context.CancelFunc
	if _, deadlineSet := ctx.Deadline(); !deadlineSet {
		ctx, cancelFunc = context.WithTimeout(ctx, time.Second*30)
	} else {
		ctx, cancelFunc = context.WithCancel(ctx)
	}
	defer cancelFunc()

	logger.Debugf("closing repository: %s", s.store.RepositoryName())
	return s.store.Close(ctx)
}

// entity gets the entity by its collection or name.
func (s *Service) entity(entityID string) (*mapping.Entity, error) {
	e := s.schema.Entity(entityID)
	if e == nil {
		return nil, errors.NewDetf(class.SchemaUnknown, "entity: '%s' not found", entityID)
	}
	return e, nil
}

// slot gets the entity connection slot by its name, path or relationship name.
func (s *Service) slot(e *mapping.Entity, connectionName string) (mapping.Slot, error) {
	slot, err := s.engine.Resolver().ResolveSlot(e, connectionName)
	if err == nil {
		return slot, nil
	}
	if slot, rerr := s.engine.Resolver().Resolve(e, connectionName); rerr == nil {
		return slot, nil
	}
	return slot, err
}

// nodeURL gets the absolute url of the node. Returns empty string if no base url is set.
func (s *Service) nodeURL(e *mapping.Entity, key interface{}, elems ...string) string {
	if s.baseURL == nil || key == nil {
		return ""
	}
	return s.baseURL.JoinPath(append([]string{e.Collection(), keyString(key)}, elems...)...).String()
}
