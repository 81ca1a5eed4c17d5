package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/orm"
)

// ConnectionsField is the node field containing the connection slot links or included related nodes.
const ConnectionsField = "connections"

// resolveIncludes sets the connection links of the node 'props' and resolves the included
// connections and custom properties.
func (s *Service) resolveIncludes(ctx context.Context, e *mapping.Entity, key interface{}, props mapping.Properties, o *Options) error {
	slots := s.engine.Resolver().ConnectionsOf(e)
	type include struct {
		slot   *mapping.Slot
		custom *customProperty
	}
	includes := make([]include, len(o.Includes))
	for i, name := range o.Includes {
		if cp := s.findCustomProperty(e, name); cp != nil {
			includes[i].custom = cp
			continue
		}
		slot, err := s.slot(e, name)
		if err != nil {
			return errors.NewDetf(class.CommonInvalidOptions, "%s: unknown include: '%s'", e.Name(), name)
		}
		includes[i].slot = &slot
	}

	values := make([]interface{}, len(includes))
	g, gctx := errgroup.WithContext(ctx)
	for i, inc := range includes {
		i, inc := i, inc
		g.Go(func() error {
			if inc.custom != nil {
				v, err := inc.custom.fn(gctx, e, props)
				if err != nil {
					return err
				}
				values[i] = v
				return nil
			}
			related, err := s.engine.GetRelatedNodes(gctx, key, e, inc.slot.RelationshipName, orm.Page{})
			if err != nil {
				return err
			}
			data := related.Data
			if data == nil {
				data = []mapping.Properties{}
			}
			values[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	connections := map[string]interface{}{}
	if s.baseURL != nil {
		for _, slot := range slots {
			connections[slot.Name] = s.nodeURL(e, key, slot.Name)
		}
	}
	for i, inc := range includes {
		if inc.custom != nil {
			props[inc.custom.name] = values[i]
			continue
		}
		connections[inc.slot.Name] = values[i]
	}
	if len(connections) > 0 {
		props[ConnectionsField] = connections
	}
	return nil
}
