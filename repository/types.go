package repository

import (
	"github.com/neuronlabs/neuron-graph/mapping"
)

// Node is the stored graph node.
type Node struct {
	ID         string
	Properties mapping.Properties
}

// Relationship is the stored graph relationship.
type Relationship struct {
	ID         string
	Type       string
	StartID    string
	EndID      string
	Properties mapping.Properties
}

// Other gets the identifier of the relationship node other than 'nodeID'.
func (r *Relationship) Other(nodeID string) string {
	if r.StartID == nodeID {
		return r.EndID
	}
	return r.StartID
}

// Index is the secondary index of the collection.
type Index struct {
	Collection string
	KeyField   string
}

// IndexOf gets the index of the entity collection.
func IndexOf(e *mapping.Entity) Index {
	return Index{Collection: e.Collection(), KeyField: e.KeyField()}
}

// BatchMethod is the method of the batch operation.
type BatchMethod int

// Enumerated batch methods.
const (
	MethodDeleteRelationship BatchMethod = iota + 1
)

func (m BatchMethod) String() string {
	switch m {
	case MethodDeleteRelationship:
		return "DeleteRelationship"
	default:
		return "Unknown"
	}
}

// BatchOperation is a single operation of the batch.
type BatchOperation struct {
	Method BatchMethod
	// Target is the store identifier of the relationship.
	Target string
}

// BatchResult is the result of a single batch operation.
type BatchResult struct {
	Operation BatchOperation
	Err       error
}

// FailedResults gets the batch results that failed.
func FailedResults(results []BatchResult) []BatchResult {
	var failed []BatchResult
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
