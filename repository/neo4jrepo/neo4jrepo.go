// Package neo4jrepo contains the graph store repository over the Neo4j Bolt driver.
// The collection indexes are the node labels with the key property index.
// All the values are passed to the queries as parameters.
package neo4jrepo

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/log"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

// RepositoryName is the name of the neo4j repository.
const RepositoryName = "neo4j"

var (
	_ repository.GraphStore = &Repository{}

	logger = log.NewModuleLogger("neo4jrepo")
)

// Repository is the neo4j graph store.
// All the sessions share the bookmark manager, so each call observes the writes of the preceding ones
// even if it is routed to another cluster member.
type Repository struct {
	driver    neo4j.DriverWithContext
	database  string
	bookmarks neo4j.BookmarkManager
}

// New creates the neo4j repository and verifies its connectivity.
func New(ctx context.Context, cfg *config.Store) (*Repository, error) {
	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, errors.Wrap(class.StoreRemoteCall, err, "creating neo4j driver")
	}
	if err = driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrapf(class.StoreRemoteCall, err, "connecting to neo4j: '%s'", cfg.URI)
	}
	logger.Infof("connected to: '%s'", cfg.URI)
	return newRepository(driver, cfg.Database), nil
}

func newRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:    driver,
		database:  database,
		bookmarks: neo4j.NewBookmarkManager(neo4j.BookmarkManagerConfig{}),
	}
}

// RepositoryName implements repository.Namer interface.
func (r *Repository) RepositoryName() string {
	return RepositoryName
}

// Close implements repository.Repository interface.
func (r *Repository) Close(ctx context.Context) error {
	if err := r.driver.Close(ctx); err != nil {
		return errors.Wrap(class.StoreRemoteCall, err, "closing neo4j driver")
	}
	return nil
}

// EnsureIndex implements repository.Indexer interface.
func (r *Repository) EnsureIndex(ctx context.Context, index repository.Index) error {
	_, err := r.write(ctx, ensureIndexStatement(index))
	return err
}

// IndexLookup implements repository.Indexer interface.
func (r *Repository) IndexLookup(ctx context.Context, index repository.Index, value interface{}) (*repository.Node, error) {
	records, err := r.read(ctx, indexLookupStatement(index, value))
	if err != nil {
		return nil, err
	}
	return firstNode(records, "n")
}

// IndexAdd implements repository.Indexer interface.
func (r *Repository) IndexAdd(ctx context.Context, index repository.Index, value interface{}, nodeID string) error {
	records, err := r.write(ctx, indexAddStatement(index, value, nodeID))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", nodeID)
	}
	return nil
}

// CreateNode implements repository.NodeStore interface.
func (r *Repository) CreateNode(ctx context.Context, props mapping.Properties) (*repository.Node, error) {
	records, err := r.write(ctx, createNodeStatement(props))
	if err != nil {
		return nil, err
	}
	n, err := firstNode(records, "n")
	if err == nil && n == nil {
		err = errors.NewDet(class.StoreRemoteCall, "node not created")
	}
	return n, err
}

// GetNode implements repository.NodeStore interface.
func (r *Repository) GetNode(ctx context.Context, id string) (*repository.Node, error) {
	records, err := r.read(ctx, getNodeStatement(id))
	if err != nil {
		return nil, err
	}
	return firstNode(records, "n")
}

// DeleteNode implements repository.NodeStore interface.
func (r *Repository) DeleteNode(ctx context.Context, id string) error {
	return r.writeOne(ctx, deleteNodeStatement(id), "node", id)
}

// SetNodeProperties implements repository.NodeStore interface.
func (r *Repository) SetNodeProperties(ctx context.Context, id string, props mapping.Properties) error {
	return r.writeOne(ctx, setNodePropertiesStatement(id, props), "node", id)
}

// DeleteNodeProperty implements repository.NodeStore interface.
func (r *Repository) DeleteNodeProperty(ctx context.Context, id string, property string) error {
	return r.writeOne(ctx, deleteNodePropertyStatement(id, property), "node", id)
}

// NodeRelationships implements repository.RelationshipStore interface.
func (r *Repository) NodeRelationships(ctx context.Context, nodeID string, direction mapping.Direction, types ...string) ([]*repository.Relationship, error) {
	records, err := r.read(ctx, nodeRelationshipsStatement(nodeID, direction, types))
	if err != nil {
		return nil, err
	}
	rels := make([]*repository.Relationship, 0, len(records))
	for _, record := range records {
		rel, err := relationshipValue(record, "r")
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

// CreateRelationship implements repository.RelationshipStore interface.
func (r *Repository) CreateRelationship(ctx context.Context, startID, endID, typ string, props mapping.Properties) (*repository.Relationship, error) {
	records, err := r.write(ctx, createRelationshipStatement(startID, endID, typ, props))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewDetf(class.StoreRemoteCall, "relationship: '%s' between: '%s' and '%s' not created", typ, startID, endID)
	}
	return relationshipValue(records[0], "r")
}

// SetRelationshipProperties implements repository.RelationshipStore interface.
func (r *Repository) SetRelationshipProperties(ctx context.Context, id string, props mapping.Properties) error {
	return r.writeOne(ctx, setRelationshipPropertiesStatement(id, props), "relationship", id)
}

// DeleteRelationship implements repository.RelationshipStore interface.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) error {
	return r.writeOne(ctx, deleteRelationshipStatement(id), "relationship", id)
}

// Query implements repository.Querier interface.
func (r *Repository) Query(ctx context.Context, pattern *repository.Pattern) ([]repository.Row, error) {
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	records, err := r.read(ctx, queryStatement(pattern))
	if err != nil {
		return nil, err
	}
	return rowValues(records)
}

// QueryPage implements repository.Querier interface. The count and the rows are read
// within a single read transaction.
func (r *Repository) QueryPage(ctx context.Context, pattern *repository.Pattern) (*repository.RowsPage, error) {
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	results, err := r.readAll(ctx, countStatement(pattern), queryStatement(pattern))
	if err != nil {
		return nil, err
	}
	count, err := countValue(results[0])
	if err != nil {
		return nil, err
	}
	rows, err := rowValues(results[1])
	if err != nil {
		return nil, err
	}
	return &repository.RowsPage{Rows: rows, Count: count}, nil
}

// Batch implements repository.Batcher interface. All the operations are executed
// within a single write transaction which is rolled back on the first failure.
func (r *Repository) Batch(ctx context.Context, operations []repository.BatchOperation) ([]repository.BatchResult, error) {
	if len(operations) == 0 {
		return nil, errors.NewDet(class.StoreBatchEmpty, "no batch operations provided")
	}
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	var results []repository.BatchResult
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		results = make([]repository.BatchResult, len(operations))
		for i, op := range operations {
			results[i].Operation = op
			st, ok := batchStatement(op)
			if !ok {
				results[i].Err = errors.NewDetf(class.StoreRemoteCall, "unknown batch method: '%s'", op.Method)
				return nil, results[i].Err
			}
			records, err := run(ctx, tx, st)
			if err == nil {
				err = expectOne(records, op.Method.String(), op.Target)
			}
			if err != nil {
				results[i].Err = err
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if len(repository.FailedResults(results)) > 0 {
			logger.Debugf("batch rolled back: %v", err)
			return results, nil
		}
		return nil, errors.Wrap(class.StoreRemoteCall, err, "batch call failed")
	}
	return results, nil
}

func (r *Repository) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, r.sessionConfig(mode))
}

func (r *Repository) sessionConfig(mode neo4j.AccessMode) neo4j.SessionConfig {
	return neo4j.SessionConfig{DatabaseName: r.database, AccessMode: mode, BookmarkManager: r.bookmarks}
}

func (r *Repository) read(ctx context.Context, st statement) ([]*neo4j.Record, error) {
	results, err := r.readAll(ctx, st)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// readAll executes the statements in order within a single read transaction.
func (r *Repository) readAll(ctx context.Context, statements ...statement) ([][]*neo4j.Record, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		results := make([][]*neo4j.Record, len(statements))
		for i, st := range statements {
			logger.Debug3f("read: %s", st.query)
			records, err := run(ctx, tx, st)
			if err != nil {
				return nil, err
			}
			results[i] = records
		}
		return results, nil
	})
	if err != nil {
		return nil, errors.Wrap(class.StoreRemoteCall, err, "neo4j read failed")
	}
	return result.([][]*neo4j.Record), nil
}

func (r *Repository) write(ctx context.Context, st statement) ([]*neo4j.Record, error) {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	logger.Debug3f("write: %s", st.query)
	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return run(ctx, tx, st)
	})
	if err != nil {
		return nil, errors.Wrap(class.StoreRemoteCall, err, "neo4j write failed")
	}
	return result.([]*neo4j.Record), nil
}

// writeOne executes the write statement that must affect exactly one node or relationship.
func (r *Repository) writeOne(ctx context.Context, st statement, kind, id string) error {
	records, err := r.write(ctx, st)
	if err != nil {
		return err
	}
	return expectOne(records, kind, id)
}

func run(ctx context.Context, tx neo4j.ManagedTransaction, st statement) ([]*neo4j.Record, error) {
	result, err := tx.Run(ctx, st.query, st.params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}
