// Package config contains the configuration of the neuron-graph service, its store and schema.
package config

import (
	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

var validate = validator.New()

// Create policies.
const (
	// CreateUpsert merges the created node into an existing node with the same key.
	CreateUpsert = "upsert"
	// CreateStrict rejects the creation of a node whose key already exists.
	CreateStrict = "strict"
)

// Config contains general configuration for the neuron-graph service.
type Config struct {
	// LogLevel is the current logging level.
	LogLevel string `mapstructure:"log_level" validate:"isdefault|oneof=debug3 debug2 debug info warning error critical"`

	// NamingConvention is the naming convention used for the derived collection ids.
	// Allowed values:
	// - camel
	// - lowercamel
	// - snake
	// - kebab
	NamingConvention string `mapstructure:"naming_convention" validate:"isdefault|oneof=camel lowercamel snake kebab"`

	// CreatePolicy defines how a create of an already existing key is handled.
	CreatePolicy string `mapstructure:"create_policy" validate:"isdefault|oneof=upsert strict"`

	// BaseURL is the absolute url used for the connection and paging links.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Store is the graph store connection configuration.
	Store *Store `mapstructure:"store" validate:"required"`

	// Entities are the schema entity definitions.
	Entities []*Entity `mapstructure:"entities" validate:"dive"`

	// Connections are the schema connection definitions.
	Connections []*Connection `mapstructure:"connections" validate:"dive"`
}

// Store is the configuration of the graph store connection.
type Store struct {
	URI      string `mapstructure:"uri" validate:"required"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// Entity is the configuration of a single schema entity.
type Entity struct {
	Name       string `mapstructure:"name" validate:"required"`
	Collection string `mapstructure:"collection"`
	Key        string `mapstructure:"key"`
}

// Connection is the configuration of a single schema connection.
// Start and End are the endpoints in the 'entity.slot' form. If the End is empty
// the connection is self-referential.
type Connection struct {
	Name  string `mapstructure:"name" validate:"required"`
	Start string `mapstructure:"start" validate:"required"`
	End   string `mapstructure:"end"`
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(class.ConfigInvalid, err, "invalid config")
	}
	return nil
}
