package repository

import (
	"context"

	"github.com/neuronlabs/neuron-graph/mapping"
)

// Repository is the interface that defines the basic graph store repository.
type Repository interface {
	Namer
	Close(ctx context.Context) error
}

// Namer is the interface that defines the repository name.
type Namer interface {
	RepositoryName() string
}

// Indexer is the interface used to manage the secondary indexes of the collections.
type Indexer interface {
	// EnsureIndex creates the index if it doesn't exist. It is idempotent.
	EnsureIndex(ctx context.Context, index Index) error
	// IndexLookup gets the node stored under the 'value' in the index. Returns nil if not found.
	IndexLookup(ctx context.Context, index Index, value interface{}) (*Node, error)
	// IndexAdd registers the node with 'nodeID' under the 'value' in the index.
	IndexAdd(ctx context.Context, index Index, value interface{}, nodeID string) error
}

// NodeStore is the interface used for the raw node operations.
type NodeStore interface {
	// CreateNode creates a raw node with given properties.
	CreateNode(ctx context.Context, props mapping.Properties) (*Node, error)
	// GetNode gets the node by its store identifier. Returns nil if not found.
	GetNode(ctx context.Context, id string) (*Node, error)
	// DeleteNode deletes the node with given store identifier.
	DeleteNode(ctx context.Context, id string) error
	// SetNodeProperties replaces all the node properties.
	SetNodeProperties(ctx context.Context, id string, props mapping.Properties) error
	// DeleteNodeProperty removes a single node property. Missing property is not an error.
	DeleteNodeProperty(ctx context.Context, id string, property string) error
}

// RelationshipStore is the interface used for the raw relationship operations.
type RelationshipStore interface {
	// NodeRelationships lists the relationships incident to the node in given direction.
	// If no types are provided, relationships of all types are listed.
	NodeRelationships(ctx context.Context, nodeID string, direction mapping.Direction, types ...string) ([]*Relationship, error)
	// CreateRelationship creates the relationship of type 'typ' from 'startID' to 'endID' node.
	CreateRelationship(ctx context.Context, startID, endID, typ string, props mapping.Properties) (*Relationship, error)
	// SetRelationshipProperties replaces all the relationship properties.
	SetRelationshipProperties(ctx context.Context, id string, props mapping.Properties) error
	// DeleteRelationship deletes the relationship with given store identifier.
	DeleteRelationship(ctx context.Context, id string) error
}

// Querier is the interface used to execute the traversal pattern queries.
type Querier interface {
	// Query gets the rows matching the pattern.
	Query(ctx context.Context, pattern *Pattern) ([]Row, error)
	// QueryPage gets the rows matching the pattern along with the number of all matching rows,
	// ignoring the skip and limit. Both are read from the same store snapshot.
	QueryPage(ctx context.Context, pattern *Pattern) (*RowsPage, error)
}

// Batcher is the interface used to submit multiple operations in a single call.
type Batcher interface {
	// Batch submits the operations atomically. If any of the operations fails none of them is applied
	// and the failed operation results contain their errors. The returned error is set on a call failure.
	Batch(ctx context.Context, operations []BatchOperation) ([]BatchResult, error)
}

// GraphStore is the complete remote graph store contract.
type GraphStore interface {
	Repository
	Indexer
	NodeStore
	RelationshipStore
	Querier
	Batcher
}
