package mapping

import (
	"sync/atomic"
)

// DefaultKeyField is the key field used by the entities that doesn't define their own.
const DefaultKeyField = "id"

// Entity is the schema registered node type with a collection identifier and a key field.
type Entity struct {
	name       string
	collection string
	keyField   string

	indexEnsured atomic.Bool
}

// Name gets the unique entity name.
func (e *Entity) Name() string {
	return e.name
}

// Collection gets the entity collection id - the name of its secondary index.
func (e *Entity) Collection() string {
	return e.collection
}

// KeyField gets the name of the entity key field.
func (e *Entity) KeyField() string {
	return e.keyField
}

// KeyValue gets the entity key value from the provided properties.
// Nil and empty string values are treated as missing.
func (e *Entity) KeyValue(props Properties) (interface{}, bool) {
	v, ok := props[e.keyField]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}

// IndexEnsured checks if the entity collection index was already created.
func (e *Entity) IndexEnsured() bool {
	return e.indexEnsured.Load()
}

// MarkIndexEnsured memoizes that the entity collection index exists.
func (e *Entity) MarkIndexEnsured() {
	e.indexEnsured.Store(true)
}

// String implements fmt.Stringer interface.
func (e *Entity) String() string {
	return e.name
}

// EntityOption is the option function for the registered entity.
type EntityOption func(e *Entity)

// WithCollection sets the entity collection id.
func WithCollection(collection string) EntityOption {
	return func(e *Entity) {
		e.collection = collection
	}
}

// WithKey sets the entity key field.
func WithKey(keyField string) EntityOption {
	return func(e *Entity) {
		e.keyField = keyField
	}
}
