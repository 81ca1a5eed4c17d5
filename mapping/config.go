package mapping

import (
	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/namer"
)

// FromConfig creates the schema with the entities and connections defined in the config.
func FromConfig(cfg *config.Config) (*Schema, error) {
	n, err := namer.ByName(cfg.NamingConvention)
	if err != nil {
		return nil, err
	}
	s := NewSchema(WithNamer(n))
	for _, entity := range cfg.Entities {
		var options []EntityOption
		if entity.Collection != "" {
			options = append(options, WithCollection(entity.Collection))
		}
		if entity.Key != "" {
			options = append(options, WithKey(entity.Key))
		}
		if _, err = s.RegisterEntity(entity.Name, options...); err != nil {
			return nil, err
		}
	}
	for _, conn := range cfg.Connections {
		if _, err = s.RegisterConnection(conn.Name, conn.Start, conn.End); err != nil {
			return nil, err
		}
	}
	return s, nil
}
