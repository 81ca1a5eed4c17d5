// Package memrepo contains the in-memory graph store repository.
// It is used for the tests and the local development without a running graph database.
package memrepo

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

// RepositoryName is the name of the in-memory repository.
const RepositoryName = "memrepo"

var _ repository.GraphStore = &Repository{}

type storedRelationship struct {
	seq int64
	rel repository.Relationship
}

// Repository is the in-memory graph store. It is safe for concurrent use.
type Repository struct {
	lock          sync.RWMutex
	nodeSeq       int64
	relSeq        int64
	nodes         map[string]mapping.Properties
	relationships map[string]*storedRelationship
	indexes       map[repository.Index]map[interface{}]string
}

// New creates new empty in-memory repository.
func New() *Repository {
	return &Repository{
		nodes:         map[string]mapping.Properties{},
		relationships: map[string]*storedRelationship{},
		indexes:       map[repository.Index]map[interface{}]string{},
	}
}

// RepositoryName implements repository.Namer interface.
func (r *Repository) RepositoryName() string {
	return RepositoryName
}

// Close implements repository.Repository interface.
func (r *Repository) Close(context.Context) error {
	return nil
}

// EnsureIndex implements repository.Indexer interface.
func (r *Repository) EnsureIndex(ctx context.Context, index repository.Index) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.indexes[index]; !ok {
		r.indexes[index] = map[interface{}]string{}
	}
	return nil
}

// IndexLookup implements repository.Indexer interface.
func (r *Repository) IndexLookup(ctx context.Context, index repository.Index, value interface{}) (*repository.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, err := r.lookup(index, value)
	if err != nil || id == "" {
		return nil, err
	}
	return r.node(id), nil
}

// IndexAdd implements repository.Indexer interface.
func (r *Repository) IndexAdd(ctx context.Context, index repository.Index, value interface{}, nodeID string) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	entries, ok := r.indexes[index]
	if !ok {
		return errors.NewDetf(class.StoreRemoteCall, "index: '%s' not found", index.Collection)
	}
	if _, ok = r.nodes[nodeID]; !ok {
		return errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", nodeID)
	}
	key, err := indexKey(value)
	if err != nil {
		return err
	}
	entries[key] = nodeID
	return nil
}

// CreateNode implements repository.NodeStore interface.
func (r *Repository) CreateNode(ctx context.Context, props mapping.Properties) (*repository.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	normalized, err := normalizeProperties(props)
	if err != nil {
		return nil, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	r.nodeSeq++
	id := strconv.FormatInt(r.nodeSeq, 10)
	r.nodes[id] = normalized
	return r.node(id), nil
}

// GetNode implements repository.NodeStore interface.
func (r *Repository) GetNode(ctx context.Context, id string) (*repository.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.node(id), nil
}

// DeleteNode implements repository.NodeStore interface.
func (r *Repository) DeleteNode(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.checkNodeDelete(id); err != nil {
		return err
	}
	r.deleteNode(id)
	return nil
}

// SetNodeProperties implements repository.NodeStore interface.
func (r *Repository) SetNodeProperties(ctx context.Context, id string, props mapping.Properties) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.nodes[id]; !ok {
		return errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", id)
	}
	normalized, err := normalizeProperties(props)
	if err != nil {
		return err
	}
	r.nodes[id] = normalized
	return nil
}

// DeleteNodeProperty implements repository.NodeStore interface.
func (r *Repository) DeleteNodeProperty(ctx context.Context, id string, property string) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	props, ok := r.nodes[id]
	if !ok {
		return errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", id)
	}
	delete(props, property)
	return nil
}

// NodeRelationships implements repository.RelationshipStore interface.
func (r *Repository) NodeRelationships(ctx context.Context, nodeID string, direction mapping.Direction, types ...string) ([]*repository.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	if _, ok := r.nodes[nodeID]; !ok {
		return nil, errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", nodeID)
	}
	var result []*repository.Relationship
	for _, stored := range r.sortedRelationships() {
		if !incident(&stored.rel, nodeID, direction) || !matchesType(stored.rel.Type, types) {
			continue
		}
		result = append(result, copyRelationship(&stored.rel))
	}
	return result, nil
}

// CreateRelationship implements repository.RelationshipStore interface.
func (r *Repository) CreateRelationship(ctx context.Context, startID, endID, typ string, props mapping.Properties) (*repository.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, id := range []string{startID, endID} {
		if _, ok := r.nodes[id]; !ok {
			return nil, errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", id)
		}
	}
	if typ == "" {
		return nil, errors.NewDet(class.StoreRemoteCall, "relationship type is empty")
	}
	normalized, err := normalizeProperties(props)
	if err != nil {
		return nil, err
	}
	r.relSeq++
	stored := &storedRelationship{
		seq: r.relSeq,
		rel: repository.Relationship{
			ID:         strconv.FormatInt(r.relSeq, 10),
			Type:       typ,
			StartID:    startID,
			EndID:      endID,
			Properties: normalized,
		},
	}
	r.relationships[stored.rel.ID] = stored
	return copyRelationship(&stored.rel), nil
}

// SetRelationshipProperties implements repository.RelationshipStore interface.
func (r *Repository) SetRelationshipProperties(ctx context.Context, id string, props mapping.Properties) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	stored, ok := r.relationships[id]
	if !ok {
		return errors.NewDetf(class.StoreRemoteCall, "relationship: '%s' not found", id)
	}
	normalized, err := normalizeProperties(props)
	if err != nil {
		return err
	}
	stored.rel.Properties = normalized
	return nil
}

// DeleteRelationship implements repository.RelationshipStore interface.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return remoteErr(err)
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.relationships[id]; !ok {
		return errors.NewDetf(class.StoreRemoteCall, "relationship: '%s' not found", id)
	}
	delete(r.relationships, id)
	return nil
}

// Query implements repository.Querier interface.
func (r *Repository) Query(ctx context.Context, pattern *repository.Pattern) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	rows, err := r.match(pattern)
	if err != nil {
		return nil, err
	}
	return bounded(rows, pattern), nil
}

// QueryPage implements repository.Querier interface.
func (r *Repository) QueryPage(ctx context.Context, pattern *repository.Pattern) (*repository.RowsPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	rows, err := r.match(pattern)
	if err != nil {
		return nil, err
	}
	return &repository.RowsPage{Rows: bounded(rows, pattern), Count: int64(len(rows))}, nil
}

// bounded gets the rows within the pattern skip and limit.
func bounded(rows []repository.Row, pattern *repository.Pattern) []repository.Row {
	if pattern.Skip >= len(rows) {
		return []repository.Row{}
	}
	rows = rows[pattern.Skip:]
	if pattern.Limit > 0 && pattern.Limit < len(rows) {
		rows = rows[:pattern.Limit]
	}
	return rows
}

func (r *Repository) match(pattern *repository.Pattern) ([]repository.Row, error) {
	startID, err := r.lookup(pattern.Start.Index, pattern.Start.Value)
	if err != nil || startID == "" {
		return []repository.Row{}, err
	}
	var endID string
	if pattern.End != nil {
		if endID, err = r.lookup(pattern.End.Index, pattern.End.Value); err != nil || endID == "" {
			return []repository.Row{}, err
		}
	}

	rows := []repository.Row{}
	for _, stored := range r.sortedRelationships() {
		rel := &stored.rel
		if rel.Type != pattern.RelationshipType || !incident(rel, startID, pattern.Direction) {
			continue
		}
		otherID := rel.Other(startID)
		if endID != "" && otherID != endID {
			continue
		}
		rows = append(rows, repository.Row{Relationship: copyRelationship(rel), Node: r.node(otherID)})
	}
	return rows, nil
}

// Batch implements repository.Batcher interface.
func (r *Repository) Batch(ctx context.Context, operations []repository.BatchOperation) ([]repository.BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(err)
	}
	if len(operations) == 0 {
		return nil, errors.NewDet(class.StoreBatchEmpty, "no batch operations provided")
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	results := make([]repository.BatchResult, len(operations))
	var failed bool
	for i, op := range operations {
		results[i] = repository.BatchResult{Operation: op, Err: r.checkOperation(op)}
		if results[i].Err != nil {
			failed = true
		}
	}
	if failed {
		return results, nil
	}

	for _, op := range operations {
		if op.Method == repository.MethodDeleteRelationship {
			delete(r.relationships, op.Target)
		}
	}
	return results, nil
}

func (r *Repository) checkOperation(op repository.BatchOperation) error {
	if op.Method != repository.MethodDeleteRelationship {
		return errors.NewDetf(class.StoreRemoteCall, "unknown batch method: '%s'", op.Method)
	}
	if _, ok := r.relationships[op.Target]; !ok {
		return errors.NewDetf(class.StoreRemoteCall, "relationship: '%s' not found", op.Target)
	}
	return nil
}

// checkNodeDelete checks if the node exists and has no relationships.
func (r *Repository) checkNodeDelete(id string) error {
	if _, ok := r.nodes[id]; !ok {
		return errors.NewDetf(class.StoreRemoteCall, "node: '%s' not found", id)
	}
	for _, stored := range r.relationships {
		if stored.rel.StartID == id || stored.rel.EndID == id {
			return errors.NewDetf(class.StoreRemoteCall, "node: '%s' still has relationships", id)
		}
	}
	return nil
}

func (r *Repository) deleteNode(id string) {
	delete(r.nodes, id)
	for _, entries := range r.indexes {
		for key, nodeID := range entries {
			if nodeID == id {
				delete(entries, key)
			}
		}
	}
}

func (r *Repository) lookup(index repository.Index, value interface{}) (string, error) {
	entries, ok := r.indexes[index]
	if !ok {
		return "", errors.NewDetf(class.StoreRemoteCall, "index: '%s' not found", index.Collection)
	}
	key, err := indexKey(value)
	if err != nil {
		// values out of the stored range never match
		return "", nil
	}
	return entries[key], nil
}

func (r *Repository) node(id string) *repository.Node {
	props, ok := r.nodes[id]
	if !ok {
		return nil
	}
	return &repository.Node{ID: id, Properties: props.Copy()}
}

func (r *Repository) sortedRelationships() []*storedRelationship {
	rels := make([]*storedRelationship, 0, len(r.relationships))
	for _, stored := range r.relationships {
		rels = append(rels, stored)
	}
	sort.Slice(rels, func(i, j int) bool {
		return rels[i].seq < rels[j].seq
	})
	return rels
}

func incident(rel *repository.Relationship, nodeID string, direction mapping.Direction) bool {
	switch direction {
	case mapping.DirectionOut:
		return rel.StartID == nodeID
	case mapping.DirectionIn:
		return rel.EndID == nodeID
	default:
		return rel.StartID == nodeID || rel.EndID == nodeID
	}
}

func matchesType(typ string, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

func copyRelationship(rel *repository.Relationship) *repository.Relationship {
	cp := *rel
	cp.Properties = rel.Properties.Copy()
	if cp.Properties == nil {
		cp.Properties = mapping.Properties{}
	}
	return &cp
}

func remoteErr(err error) error {
	return errors.Wrap(class.StoreRemoteCall, err, "memrepo call failed")
}
