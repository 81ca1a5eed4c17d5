package mapping

import (
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

// Slot is the connection seen from one of its endpoint entities.
type Slot struct {
	// Name is the slot name on the entity.
	Name string
	// Path is the slot path in the 'entity.slot' form.
	Path string
	// RelationshipName is the connection relationship type name.
	RelationshipName string
	// Direction is the traversal direction from the entity.
	Direction Direction
	// Connection is the resolved connection.
	Connection *Connection
	// Target is the entity on the other side of the connection.
	Target *Entity
}

// Resolver resolves the connections of the entities and their traversal directions.
// It is a pure function of the registered schema metadata.
type Resolver struct {
	schema *Schema
}

// NewResolver creates new resolver for the schema.
func NewResolver(s *Schema) *Resolver {
	return &Resolver{schema: s}
}

// ConnectionsOf gets all the connection slots of the entity in the connections registration order.
// Self-referential connections expose both of their slots once.
func (r *Resolver) ConnectionsOf(e *Entity) []Slot {
	var slots []Slot
	for _, c := range r.schema.Connections() {
		slots = appendSlots(slots, c, e)
	}
	return slots
}

// Resolve gets the slot of the connection with 'relationshipName' for the entity.
func (r *Resolver) Resolve(e *Entity, relationshipName string) (Slot, error) {
	for _, slot := range r.ConnectionsOf(e) {
		if slot.RelationshipName == relationshipName {
			return slot, nil
		}
	}
	return Slot{}, errors.NewDetf(class.SchemaUnknown, "relationship: '%s' is not defined for the entity: '%s'", relationshipName, e.Name())
}

// ResolveSlot gets the connection slot by its name or path for the entity.
func (r *Resolver) ResolveSlot(e *Entity, slotName string) (Slot, error) {
	for _, slot := range r.ConnectionsOf(e) {
		if slot.Name == slotName || slot.Path == slotName {
			return slot, nil
		}
	}
	return Slot{}, errors.NewDetf(class.SchemaUnknown, "connection slot: '%s' is not defined for the entity: '%s'", slotName, e.Name())
}

func appendSlots(slots []Slot, c *Connection, e *Entity) []Slot {
	dir, ok := DirectionOf(c, e)
	if !ok {
		return slots
	}
	switch dir {
	case DirectionOut:
		return append(slots, newSlot(c, c.start, c.end.Entity, dir))
	case DirectionIn:
		return append(slots, newSlot(c, c.end, c.start.Entity, dir))
	}
	slots = append(slots, newSlot(c, c.start, e, dir))
	if c.end.Slot != c.start.Slot {
		slots = append(slots, newSlot(c, c.end, e, dir))
	}
	return slots
}

func newSlot(c *Connection, ep Endpoint, target *Entity, dir Direction) Slot {
	return Slot{
		Name:             ep.Slot,
		Path:             ep.Path(),
		RelationshipName: c.relationshipName,
		Direction:        dir,
		Connection:       c,
		Target:           target,
	}
}
