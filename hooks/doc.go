// Package hooks contains the pipeline of the before and after operation hooks.
//
// A hook is bound to a set of operations and a path - an entity name, a connection
// outbound or inbound path or the Wildcard. The hooks matching the request are executed
// sequentially in their registration order. Each hook may inspect and mutate the payload.
// The first hook returning an error stops the pipeline and rejects the operation.
package hooks
