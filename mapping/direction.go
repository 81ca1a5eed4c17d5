package mapping

// Direction is the traversal direction of the connection relative to an entity.
type Direction string

// Enumerated directions.
const (
	DirectionOut Direction = "out"
	DirectionIn  Direction = "in"
	DirectionAll Direction = "all"
)

// Reverse gets the direction as seen from the opposite endpoint.
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionOut:
		return DirectionIn
	case DirectionIn:
		return DirectionOut
	default:
		return d
	}
}

// Valid checks if the direction is one of the enumerated values.
func (d Direction) Valid() bool {
	switch d {
	case DirectionOut, DirectionIn, DirectionAll:
		return true
	}
	return false
}

// DirectionOf gets the direction of the connection 'c' traversed from the entity 'e'.
// A self-referential connection is always traversed in both directions.
// The second return value is false if the entity is not an endpoint of the connection.
func DirectionOf(c *Connection, e *Entity) (Direction, bool) {
	switch {
	case c.start.Entity == e && c.end.Entity == e:
		return DirectionAll, true
	case c.start.Entity == e:
		return DirectionOut, true
	case c.end.Entity == e:
		return DirectionIn, true
	}
	return "", false
}
