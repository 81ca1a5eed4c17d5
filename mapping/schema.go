package mapping

import (
	"sync"

	"github.com/jinzhu/inflection"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/namer"
)

// Schema is the registry of the entities and connections.
// It is read-mostly: after Freeze no more definitions could be registered.
type Schema struct {
	namer namer.Namer

	lock           sync.RWMutex
	entities       []*Entity
	byName         map[string]*Entity
	byCollection   map[string]*Entity
	connections    []*Connection
	byRelationship map[string]*Connection
	frozen         bool
}

// SchemaOption is the option function for the schema.
type SchemaOption func(s *Schema)

// WithNamer sets the naming convention function used for the derived collection ids.
func WithNamer(n namer.Namer) SchemaOption {
	return func(s *Schema) {
		s.namer = n
	}
}

// NewSchema creates new empty schema.
func NewSchema(options ...SchemaOption) *Schema {
	s := &Schema{
		namer:          namer.NamingSnake,
		byName:         map[string]*Entity{},
		byCollection:   map[string]*Entity{},
		byRelationship: map[string]*Connection{},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// RegisterEntity registers new entity with given 'name'. By default the entity collection
// is the pluralized name formatted with the schema naming convention and its key field is 'id'.
// Returns error if the entity name or its collection is already registered.
func (s *Schema) RegisterEntity(name string, options ...EntityOption) (*Entity, error) {
	if name == "" {
		return nil, errors.NewDet(class.SchemaInvalid, "entity name must not be empty")
	}
	e := &Entity{name: name, keyField: DefaultKeyField}
	for _, option := range options {
		option(e)
	}
	if e.collection == "" {
		e.collection = s.namer(inflection.Plural(name))
	}
	if e.keyField == "" {
		e.keyField = DefaultKeyField
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.frozen {
		return nil, errors.NewDetf(class.SchemaFrozen, "can't register entity: '%s' - schema is frozen", name)
	}
	if _, ok := s.byName[name]; ok {
		return nil, errors.NewDetf(class.SchemaDuplicate, "entity: '%s' has already been added", name)
	}
	if other, ok := s.byCollection[e.collection]; ok {
		return nil, errors.NewDetf(class.SchemaDuplicate, "collection: '%s' is already used by the entity: '%s'", e.collection, other.name)
	}

	s.entities = append(s.entities, e)
	s.byName[name] = e
	s.byCollection[e.collection] = e
	return e, nil
}

// RegisterConnection registers the connection with 'relationshipName' between the 'start' and 'end'
// endpoints defined in the 'entity.slot' form. An empty 'end' registers a self-referential connection
// that uses the same slot on both sides.
func (s *Schema) RegisterConnection(relationshipName, start, end string) (*Connection, error) {
	if relationshipName == "" {
		return nil, errors.NewDet(class.SchemaInvalid, "connection relationship name must not be empty")
	}
	if end == "" {
		end = start
	}
	startName, startSlot, err := parseEndpoint(start)
	if err != nil {
		return nil, err
	}
	endName, endSlot, err := parseEndpoint(end)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.frozen {
		return nil, errors.NewDetf(class.SchemaFrozen, "can't register connection: '%s' - schema is frozen", relationshipName)
	}
	startEntity, ok := s.byName[startName]
	if !ok {
		return nil, errors.NewDetf(class.SchemaUnknown, "entity for '%s' does not exist", start)
	}
	endEntity, ok := s.byName[endName]
	if !ok {
		return nil, errors.NewDetf(class.SchemaUnknown, "entity for '%s' does not exist", end)
	}
	if _, ok = s.byRelationship[relationshipName]; ok {
		return nil, errors.NewDetf(class.SchemaDuplicate, "connection: '%s' has already been added", relationshipName)
	}
	for _, other := range s.connections {
		for _, ep := range []Endpoint{other.start, other.end} {
			if (ep.Entity == startEntity && ep.Slot == startSlot) || (ep.Entity == endEntity && ep.Slot == endSlot) {
				return nil, errors.NewDetf(class.SchemaDuplicate, "slot: '%s' is already used by the connection: '%s'", ep.Path(), other.relationshipName)
			}
		}
	}

	c := &Connection{
		relationshipName: relationshipName,
		start:            Endpoint{Entity: startEntity, Slot: startSlot},
		end:              Endpoint{Entity: endEntity, Slot: endSlot},
	}
	s.connections = append(s.connections, c)
	s.byRelationship[relationshipName] = c
	return c, nil
}

// Freeze disallows any further registration.
func (s *Schema) Freeze() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.frozen = true
}

// EntityByName gets the entity by its name. Returns nil if not found.
func (s *Schema) EntityByName(name string) *Entity {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.byName[name]
}

// EntityByCollection gets the entity by its collection id. Returns nil if not found.
func (s *Schema) EntityByCollection(collection string) *Entity {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.byCollection[collection]
}

// Entity gets the entity by its collection id or, if not found, by its name.
func (s *Schema) Entity(id string) *Entity {
	if e := s.EntityByCollection(id); e != nil {
		return e
	}
	return s.EntityByName(id)
}

// FindConnection finds the connection by its relationship name or by its outbound or inbound path.
// Non empty 'startEntity' and 'endEntity' names narrow the match to the connections with given
// endpoint entities. Returns nil if not found.
func (s *Schema) FindConnection(pathOrName, startEntity, endEntity string) *Connection {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, c := range s.connections {
		if c.relationshipName != pathOrName && c.OutboundPath() != pathOrName && c.InboundPath() != pathOrName {
			continue
		}
		if startEntity != "" && c.start.Entity.name != startEntity {
			continue
		}
		if endEntity != "" && c.end.Entity.name != endEntity {
			continue
		}
		return c
	}
	return nil
}

// Entities gets the registered entities in their registration order.
func (s *Schema) Entities() []*Entity {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]*Entity(nil), s.entities...)
}

// Connections gets the registered connections in their registration order.
func (s *Schema) Connections() []*Connection {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]*Connection(nil), s.connections...)
}
