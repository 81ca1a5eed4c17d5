package repository

import (
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// Anchor is the pattern node matched by its key value within the collection index.
type Anchor struct {
	Index Index
	Value interface{}
}

// Pattern is the traversal query pattern: (start)-[relationship]-(end).
// The anchor values are always passed as the query parameters.
type Pattern struct {
	Start            Anchor
	End              *Anchor
	RelationshipType string
	Direction        mapping.Direction
	// Skip is the number of rows to skip.
	Skip int
	// Limit is the maximum number of rows. Zero means no limit.
	Limit int
}

// Validate checks if the pattern is valid.
func (p *Pattern) Validate() error {
	if p.Start.Index.Collection == "" || p.Start.Index.KeyField == "" {
		return errors.NewDet(class.StoreInvalidPattern, "pattern start anchor index is not defined")
	}
	if p.End != nil && (p.End.Index.Collection == "" || p.End.Index.KeyField == "") {
		return errors.NewDet(class.StoreInvalidPattern, "pattern end anchor index is not defined")
	}
	if p.RelationshipType == "" {
		return errors.NewDet(class.StoreInvalidPattern, "pattern relationship type is not defined")
	}
	if !p.Direction.Valid() {
		return errors.NewDetf(class.StoreInvalidPattern, "invalid pattern direction: '%s'", p.Direction)
	}
	if p.Skip < 0 || p.Limit < 0 {
		return errors.NewDet(class.StoreInvalidPattern, "pattern skip and limit must not be negative")
	}
	return nil
}

// RowsPage is the bounded pattern query result with the count of all matching rows.
type RowsPage struct {
	Rows  []Row
	Count int64
}

// Row is the single pattern query result row.
type Row struct {
	// Relationship is the traversed relationship.
	Relationship *Relationship
	// Node is the node on the other side of the traversed relationship.
	Node *Node
}
