package service

import (
	"context"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// CustomFunc computes the custom property value of the 'node'.
type CustomFunc func(ctx context.Context, e *mapping.Entity, node mapping.Properties) (interface{}, error)

type customProperty struct {
	name string
	fn   CustomFunc
}

// RegisterCustomProperty registers the computed property 'name' of the 'entityID' nodes.
// The property is resolved only if it is included in the get options.
func (s *Service) RegisterCustomProperty(entityID, name string, fn CustomFunc) error {
	e, err := s.entity(entityID)
	if err != nil {
		return err
	}
	if name == "" || fn == nil {
		return errors.NewDet(class.CommonInvalidOptions, "custom property requires name and function")
	}
	if _, err = s.engine.Resolver().ResolveSlot(e, name); err == nil {
		return errors.NewDetf(class.SchemaDuplicate, "%s: custom property '%s' is already a connection slot", e.Name(), name)
	}

	s.customLock.Lock()
	defer s.customLock.Unlock()
	for _, cp := range s.custom[e] {
		if cp.name == name {
			return errors.NewDetf(class.SchemaDuplicate, "%s: custom property '%s' already registered", e.Name(), name)
		}
	}
	s.custom[e] = append(s.custom[e], &customProperty{name: name, fn: fn})
	logger.Debug2f("registered custom property: %s.%s", e.Name(), name)
	return nil
}

func (s *Service) findCustomProperty(e *mapping.Entity, name string) *customProperty {
	s.customLock.RLock()
	defer s.customLock.RUnlock()
	for _, cp := range s.custom[e] {
		if cp.name == name {
			return cp
		}
	}
	return nil
}
