// Package mocks contains the testify mock of the graph store repository.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

var _ repository.GraphStore = &Repository{}

// Repository is the mock structure that implements repository.GraphStore.
type Repository struct {
	mock.Mock
}

// RepositoryName returns the repository name.
// Implements repository.Namer interface.
func (r *Repository) RepositoryName() string {
	return "mocks"
}

// Close implements repository.Repository interface.
func (r *Repository) Close(ctx context.Context) error {
	args := r.Called(ctx)
	return args.Error(0)
}

// EnsureIndex implements repository.Indexer interface.
func (r *Repository) EnsureIndex(ctx context.Context, index repository.Index) error {
	args := r.Called(ctx, index)
	return args.Error(0)
}

// IndexLookup implements repository.Indexer interface.
func (r *Repository) IndexLookup(ctx context.Context, index repository.Index, value interface{}) (*repository.Node, error) {
	args := r.Called(ctx, index, value)
	return node(args, 0), args.Error(1)
}

// IndexAdd implements repository.Indexer interface.
func (r *Repository) IndexAdd(ctx context.Context, index repository.Index, value interface{}, nodeID string) error {
	args := r.Called(ctx, index, value, nodeID)
	return args.Error(0)
}

// CreateNode implements repository.NodeStore interface.
func (r *Repository) CreateNode(ctx context.Context, props mapping.Properties) (*repository.Node, error) {
	args := r.Called(ctx, props)
	return node(args, 0), args.Error(1)
}

// GetNode implements repository.NodeStore interface.
func (r *Repository) GetNode(ctx context.Context, id string) (*repository.Node, error) {
	args := r.Called(ctx, id)
	return node(args, 0), args.Error(1)
}

// DeleteNode implements repository.NodeStore interface.
func (r *Repository) DeleteNode(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

// SetNodeProperties implements repository.NodeStore interface.
func (r *Repository) SetNodeProperties(ctx context.Context, id string, props mapping.Properties) error {
	args := r.Called(ctx, id, props)
	return args.Error(0)
}

// DeleteNodeProperty implements repository.NodeStore interface.
func (r *Repository) DeleteNodeProperty(ctx context.Context, id string, property string) error {
	args := r.Called(ctx, id, property)
	return args.Error(0)
}

// NodeRelationships implements repository.RelationshipStore interface.
func (r *Repository) NodeRelationships(ctx context.Context, nodeID string, direction mapping.Direction, types ...string) ([]*repository.Relationship, error) {
	args := r.Called(ctx, nodeID, direction, types)
	rels, _ := args.Get(0).([]*repository.Relationship)
	return rels, args.Error(1)
}

// CreateRelationship implements repository.RelationshipStore interface.
func (r *Repository) CreateRelationship(ctx context.Context, startID, endID, typ string, props mapping.Properties) (*repository.Relationship, error) {
	args := r.Called(ctx, startID, endID, typ, props)
	rel, _ := args.Get(0).(*repository.Relationship)
	return rel, args.Error(1)
}

// SetRelationshipProperties implements repository.RelationshipStore interface.
func (r *Repository) SetRelationshipProperties(ctx context.Context, id string, props mapping.Properties) error {
	args := r.Called(ctx, id, props)
	return args.Error(0)
}

// DeleteRelationship implements repository.RelationshipStore interface.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

// Query implements repository.Querier interface.
func (r *Repository) Query(ctx context.Context, pattern *repository.Pattern) ([]repository.Row, error) {
	args := r.Called(ctx, pattern)
	rows, _ := args.Get(0).([]repository.Row)
	return rows, args.Error(1)
}

// QueryPage implements repository.Querier interface.
func (r *Repository) QueryPage(ctx context.Context, pattern *repository.Pattern) (*repository.RowsPage, error) {
	args := r.Called(ctx, pattern)
	page, _ := args.Get(0).(*repository.RowsPage)
	return page, args.Error(1)
}

// Batch implements repository.Batcher interface.
func (r *Repository) Batch(ctx context.Context, operations []repository.BatchOperation) ([]repository.BatchResult, error) {
	args := r.Called(ctx, operations)
	results, _ := args.Get(0).([]repository.BatchResult)
	return results, args.Error(1)
}

func node(args mock.Arguments, index int) *repository.Node {
	n, _ := args.Get(index).(*repository.Node)
	return n
}
