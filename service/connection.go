package service

import (
	"context"
	"net/url"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/hooks"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/orm"
	"github.com/neuronlabs/neuron-graph/query/pagination"
)

// GetRelated gets the nodes connected to the 'baseEntityID' node with the 'baseKey' by the 'connectionName'
// slot. The after read hooks get the related nodes in the payload List and may filter it.
// If the options limit is set, the result contains the paging links.
func (s *Service) GetRelated(ctx context.Context, baseKey interface{}, baseEntityID, connectionName string, o *Options) (*ListResult, error) {
	e, slot, o, err := s.prepareConnection(baseEntityID, connectionName, o)
	if err != nil {
		return nil, err
	}
	payload := &hooks.Payload{Path: slot.Path, Entity: e, Key: baseKey}
	if err = s.before(ctx, hooks.Read, payload, o); err != nil {
		return nil, err
	}

	base, err := s.engine.GetNode(ctx, payload.Key, e)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, errors.NewDetf(class.NodeNotFound, "%s: '%v' not found", e.Name(), payload.Key)
	}
	related, err := s.engine.GetRelatedNodes(ctx, payload.Key, e, slot.RelationshipName, orm.Page{Skip: o.Skip, Limit: o.Limit})
	if err != nil {
		return nil, err
	}

	payload.List = related.Data
	if err = s.after(ctx, hooks.Read, payload, o); err != nil {
		return nil, err
	}
	result := &ListResult{Data: payload.List, Count: related.Count}
	if result.Data == nil {
		result.Data = []mapping.Properties{}
	}
	if o.Limit > 0 {
		result.Paging = pagination.Links(s.pagingBase(e, payload.Key, slot, o), o.Skip, o.Limit)
	}
	return result, nil
}

// Connect connects the 'baseEntityID' node with the 'baseKey' and the node defined by the options data
// through the 'connectionName' slot. The connected node is created if it doesn't exist.
// The relationship properties are taken from the data 'relationship' field.
func (s *Service) Connect(ctx context.Context, baseKey interface{}, baseEntityID, connectionName string, o *Options) (*Result, error) {
	e, slot, o, err := s.prepareConnection(baseEntityID, connectionName, o)
	if err != nil {
		return nil, err
	}
	data := o.Data.Copy()
	if data == nil {
		data = mapping.Properties{}
	}
	payload := &hooks.Payload{Path: slot.Path, Entity: e, Key: baseKey, Data: data}
	if err = s.before(ctx, hooks.Connect, payload, o); err != nil {
		return nil, err
	}

	endData, relData := splitRelationship(payload.Data)
	connected, err := s.engine.CreateRelationship(ctx, e, payload.Key, slot.Target, endData, relData, slot.RelationshipName)
	if err != nil {
		return nil, err
	}

	payload.Data = connected.Node.Copy()
	if payload.Data == nil {
		payload.Data = mapping.Properties{}
	}
	if len(connected.Relationship) > 0 {
		payload.Data[orm.RelationshipField] = connected.Relationship
	}
	if err = s.after(ctx, hooks.Connect, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data, URL: s.nodeURL(slot.Target, connected.Node[slot.Target.KeyField()])}, nil
}

// Disconnect deletes the 'connectionName' relationship between the 'baseEntityID' node with the 'baseKey'
// and the connected node with the options ConnectedKey.
func (s *Service) Disconnect(ctx context.Context, baseKey interface{}, baseEntityID, connectionName string, o *Options) (*Result, error) {
	e, slot, o, err := s.prepareConnection(baseEntityID, connectionName, o)
	if err != nil {
		return nil, err
	}
	if o.ConnectedKey == nil {
		return nil, errors.NewDet(class.CommonInvalidOptions, "connected node key is required")
	}
	payload := &hooks.Payload{
		Path:   slot.Path,
		Entity: e,
		Key:    baseKey,
		Data:   mapping.Properties{slot.Target.KeyField(): o.ConnectedKey},
	}
	if err = s.before(ctx, hooks.Disconnect, payload, o); err != nil {
		return nil, err
	}

	connectedKey := payload.Data[slot.Target.KeyField()]
	if err = s.engine.DeleteRelationship(ctx, e, payload.Key, slot.Target, connectedKey, slot.RelationshipName); err != nil {
		return nil, err
	}
	if err = s.after(ctx, hooks.Disconnect, payload, o); err != nil {
		return nil, err
	}
	return &Result{Data: payload.Data}, nil
}

func (s *Service) prepareConnection(baseEntityID, connectionName string, o *Options) (*mapping.Entity, mapping.Slot, *Options, error) {
	e, o, err := s.prepare(baseEntityID, o)
	if err != nil {
		return nil, mapping.Slot{}, nil, err
	}
	slot, err := s.slot(e, connectionName)
	if err != nil {
		return nil, mapping.Slot{}, nil, err
	}
	return e, slot, o, nil
}

// pagingBase gets the url used as the base of the paging links.
func (s *Service) pagingBase(e *mapping.Entity, key interface{}, slot mapping.Slot, o *Options) *url.URL {
	if o.URL != nil {
		if o.URL.IsAbs() || s.baseURL == nil {
			return o.URL
		}
		return s.baseURL.ResolveReference(o.URL)
	}
	if s.baseURL == nil {
		return &url.URL{Path: "/" + e.Collection() + "/" + keyString(key) + "/" + slot.Name}
	}
	return s.baseURL.JoinPath(e.Collection(), keyString(key), slot.Name)
}

// splitRelationship splits the connect data into the node data and the relationship properties.
func splitRelationship(data mapping.Properties) (node, relationship mapping.Properties) {
	node = data.Copy()
	v, ok := node[orm.RelationshipField]
	if !ok {
		return node, nil
	}
	delete(node, orm.RelationshipField)
	switch rel := v.(type) {
	case mapping.Properties:
		relationship = rel
	case map[string]interface{}:
		relationship = rel
	}
	return node, relationship
}
