package service

import (
	"context"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/hooks"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// Get gets the 'entityID' node with the 'key'. The result contains the node connection links
// and the included connections and custom properties.
func (s *Service) Get(ctx context.Context, key interface{}, entityID string, o *Options) (*Result, error) {
	e, o, err := s.prepare(entityID, o)
	if err != nil {
		return nil, err
	}
	payload := &hooks.Payload{Path: e.Name(), Entity: e, Key: key}
	if err = s.before(ctx, hooks.Read, payload, o); err != nil {
		return nil, err
	}

	props, err := s.engine.GetNode(ctx, payload.Key, e)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, errors.NewDetf(class.NodeNotFound, "%s: '%v' not found", e.Name(), payload.Key)
	}
	if err = s.resolveIncludes(ctx, e, payload.Key, props, o); err != nil {
		return nil, err
	}

	payload.Data = props
	if err = s.after(ctx, hooks.Read, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data, URL: s.nodeURL(e, payload.Key)}, nil
}

// Create creates the 'entityID' node with the options data. A non nil 'key' is set as the node key.
func (s *Service) Create(ctx context.Context, key interface{}, entityID string, o *Options) (*Result, error) {
	e, o, err := s.prepare(entityID, o)
	if err != nil {
		return nil, err
	}
	data := o.Data.Copy()
	if data == nil {
		data = mapping.Properties{}
	}
	if key != nil {
		data[e.KeyField()] = key
	}
	payload := &hooks.Payload{Path: e.Name(), Entity: e, Key: key, Data: data}
	if err = s.before(ctx, hooks.Create, payload, o); err != nil {
		return nil, err
	}

	created, err := s.engine.CreateNode(ctx, payload.Data, e)
	if err != nil {
		return nil, err
	}
	payload.Data, payload.Key = created, created[e.KeyField()]
	if err = s.after(ctx, hooks.Create, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data, URL: s.nodeURL(e, payload.Key)}, nil
}

// Update updates the 'entityID' node with the 'key' by the options data.
// The data fields set to nil are removed from the node.
func (s *Service) Update(ctx context.Context, key interface{}, entityID string, o *Options) (*Result, error) {
	e, o, err := s.prepare(entityID, o)
	if err != nil {
		return nil, err
	}
	data := o.Data.Copy()
	if data == nil {
		data = mapping.Properties{}
	}
	data[e.KeyField()] = key
	payload := &hooks.Payload{Path: e.Name(), Entity: e, Key: key, Data: data}
	if err = s.before(ctx, hooks.Update, payload, o); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		payload.Data = mapping.Properties{}
	}
	payload.Data[e.KeyField()] = payload.Key

	updated, err := s.engine.UpdateNode(ctx, payload.Data, e)
	if err != nil {
		return nil, err
	}
	payload.Data = updated
	if err = s.after(ctx, hooks.Update, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data, URL: s.nodeURL(e, payload.Key)}, nil
}

// Delete deletes the 'entityID' node with the 'key' and all its relationships.
// The result contains the deleted node data.
func (s *Service) Delete(ctx context.Context, key interface{}, entityID string, o *Options) (*Result, error) {
	e, o, err := s.prepare(entityID, o)
	if err != nil {
		return nil, err
	}
	payload := &hooks.Payload{Path: e.Name(), Entity: e, Key: key}
	if err = s.before(ctx, hooks.Delete, payload, o); err != nil {
		return nil, err
	}

	deleted, err := s.engine.DeleteNode(ctx, payload.Key, e)
	if err != nil {
		return nil, err
	}
	payload.Data = deleted
	if err = s.after(ctx, hooks.Delete, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data}, nil
}

func (s *Service) prepare(entityID string, o *Options) (*mapping.Entity, *Options, error) {
	e, err := s.entity(entityID)
	if err != nil {
		return nil, nil, err
	}
	o, err = prepareOptions(o)
	if err != nil {
		return nil, nil, err
	}
	return e, o, nil
}

func (s *Service) before(ctx context.Context, op hooks.Operation, payload *hooks.Payload, o *Options) error {
	if !o.runBefores() {
		return nil
	}
	return s.hooks.Run(ctx, hooks.Before, op, payload)
}

func (s *Service) after(ctx context.Context, op hooks.Operation, payload *hooks.Payload, o *Options) error {
	if !o.runAfters() {
		return nil
	}
	return s.hooks.Run(ctx, hooks.After, op, payload)
}
