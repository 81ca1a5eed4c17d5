// Package service contains the functions exposed to the request layer: the per-entity
// get, create, update and delete and the per-connection get related, connect and disconnect.
//
// Each function runs the before hooks, the graph engine operation and the after hooks.
// The request paths are classified into the entity, connection and custom property requests
// and dispatched by the Handle function.
package service
