package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// Request is the classified request path. It is one of the *EntityRequest, *ConnectionRequest
// or *CustomRequest.
type Request interface {
	request()
}

// EntityRequest is the request of the entity collection or a single node.
type EntityRequest struct {
	Entity *mapping.Entity
	// Key is the node key, nil for the collection requests.
	Key interface{}
}

// ConnectionRequest is the request of the node connection slot.
type ConnectionRequest struct {
	Entity *mapping.Entity
	Key    interface{}
	Slot   mapping.Slot
	// ConnectedKey is the key of the connected node, nil if not defined in the path.
	ConnectedKey interface{}
}

// CustomRequest is the request of the node custom property.
type CustomRequest struct {
	Entity   *mapping.Entity
	Key      interface{}
	Property string
}

func (*EntityRequest) request()     {}
func (*ConnectionRequest) request() {}
func (*CustomRequest) request()     {}

// Classify classifies the request 'path' of the form: '/{collection}[/{key}[/{slot}[/{connectedKey}]]]'.
// The slot segment might also name a custom property.
func (s *Service) Classify(path string) (Request, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(class.CommonInvalidPath, err, "invalid path: '%s'", path)
	}
	var segments []string
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 || len(segments) > 4 {
		return nil, errors.NewDetf(class.CommonInvalidPath, "invalid path: '%s'", path)
	}

	e := s.schema.EntityByCollection(segments[0])
	if e == nil {
		return nil, errors.NewDetf(class.SchemaUnknown, "collection: '%s' not found", segments[0])
	}
	if len(segments) < 3 {
		req := &EntityRequest{Entity: e}
		if len(segments) == 2 {
			req.Key = mapping.ParseKey(segments[1])
		}
		return req, nil
	}

	key := mapping.ParseKey(segments[1])
	if len(segments) == 3 {
		if cp := s.findCustomProperty(e, segments[2]); cp != nil {
			return &CustomRequest{Entity: e, Key: key, Property: cp.name}, nil
		}
	}
	slot, err := s.engine.Resolver().ResolveSlot(e, segments[2])
	if err != nil {
		return nil, err
	}
	req := &ConnectionRequest{Entity: e, Key: key, Slot: slot}
	if len(segments) == 4 {
		req.ConnectedKey = mapping.ParseKey(segments[3])
	}
	return req, nil
}

// Handle classifies the 'path' and executes the service function for the http 'method'.
// The result is either *Result or *ListResult.
func (s *Service) Handle(ctx context.Context, method, path string, o *Options) (interface{}, error) {
	req, err := s.Classify(path)
	if err != nil {
		return nil, err
	}
	opts := &Options{}
	if o != nil {
		*opts = *o
	}

	switch r := req.(type) {
	case *EntityRequest:
		if r.Key == nil {
			if method == http.MethodPost {
				return s.Create(ctx, nil, r.Entity.Name(), opts)
			}
			break
		}
		switch method {
		case http.MethodGet:
			return s.Get(ctx, r.Key, r.Entity.Name(), opts)
		case http.MethodPost:
			return s.Create(ctx, r.Key, r.Entity.Name(), opts)
		case http.MethodPut, http.MethodPatch:
			return s.Update(ctx, r.Key, r.Entity.Name(), opts)
		case http.MethodDelete:
			return s.Delete(ctx, r.Key, r.Entity.Name(), opts)
		}
	case *ConnectionRequest:
		switch method {
		case http.MethodGet:
			if r.ConnectedKey != nil {
				break
			}
			return s.GetRelated(ctx, r.Key, r.Entity.Name(), r.Slot.Name, opts)
		case http.MethodPost, http.MethodPut:
			if r.ConnectedKey != nil {
				data := opts.Data.Copy()
				if data == nil {
					data = mapping.Properties{}
				}
				data[r.Slot.Target.KeyField()] = r.ConnectedKey
				opts.Data = data
			}
			return s.Connect(ctx, r.Key, r.Entity.Name(), r.Slot.Name, opts)
		case http.MethodDelete:
			if r.ConnectedKey != nil {
				opts.ConnectedKey = r.ConnectedKey
			}
			return s.Disconnect(ctx, r.Key, r.Entity.Name(), r.Slot.Name, opts)
		}
	case *CustomRequest:
		if method != http.MethodGet {
			break
		}
		opts.Includes = []string{r.Property}
		result, err := s.Get(ctx, r.Key, r.Entity.Name(), opts)
		if err != nil {
			return nil, err
		}
		return &Result{Data: mapping.Properties{r.Property: result.Data[r.Property]}, URL: s.nodeURL(r.Entity, r.Key, r.Property)}, nil
	}
	return nil, errors.NewDetf(class.CommonInvalidPath, "method: '%s' not allowed for path: '%s'", method, path)
}

func keyString(key interface{}) string {
	return fmt.Sprint(key)
}
