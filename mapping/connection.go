package mapping

import (
	"strings"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

// Endpoint is a single side of the connection - the entity with its traversal slot name.
type Endpoint struct {
	Entity *Entity
	Slot   string
}

// Path gets the endpoint path in the 'entity.slot' form.
func (e Endpoint) Path() string {
	return e.Entity.Name() + "." + e.Slot
}

// Connection is the schema registered relationship type linking two entity endpoints.
type Connection struct {
	relationshipName string
	start            Endpoint
	end              Endpoint
}

// RelationshipName gets the name of the graph relationship type.
func (c *Connection) RelationshipName() string {
	return c.relationshipName
}

// Start gets the connection start endpoint.
func (c *Connection) Start() Endpoint {
	return c.start
}

// End gets the connection end endpoint.
func (c *Connection) End() Endpoint {
	return c.end
}

// OutboundPath gets the start endpoint path - 'start.entity.slotName'.
func (c *Connection) OutboundPath() string {
	return c.start.Path()
}

// InboundPath gets the end endpoint path - 'end.entity.slotName'.
func (c *Connection) InboundPath() string {
	return c.end.Path()
}

// IsSelfReferential checks if the connection links an entity with itself.
func (c *Connection) IsSelfReferential() bool {
	return c.start.Entity == c.end.Entity
}

// String implements fmt.Stringer interface.
func (c *Connection) String() string {
	return c.OutboundPath() + " -[" + c.relationshipName + "]-> " + c.InboundPath()
}

// parseEndpoint splits the 'entity.slot' endpoint definition.
func parseEndpoint(endpoint string) (entity, slot string, err error) {
	parts := strings.Split(endpoint, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.NewDetf(class.SchemaInvalid, "invalid connection endpoint: '%s'. The endpoint must be in the 'entity.slot' form", endpoint)
	}
	return parts[0], parts[1], nil
}
