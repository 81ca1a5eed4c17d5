// Package errors provides classified error handling primitives for the neuron-graph packages.
//
// Each error instance carries a unique trackable ID, the class.Class classification and
// an optional cause. The failures of the graph operations are matched by their class, i.e.:
//
//	if errors.IsClass(err, class.NodeNotFound) {
//		...
//	}
package errors
