// Package mapping contains the schema registry of the graph entities and connections
// and the resolver of the connection traversal directions.
//
// Entities are the node types stored within their collections (secondary indexes) and
// identified by their key field. Connections are the relationship types linking two entity
// endpoints, each exposed as a named slot, i.e.:
//
//	s := mapping.NewSchema()
//	s.RegisterEntity("user", mapping.WithKey("fbid"))
//	s.RegisterEntity("band", mapping.WithKey("fbid"))
//	s.RegisterConnection("is_member_of", "user.bands", "band.members")
//
// The schema is built once at startup and passed into the components using it.
package mapping
