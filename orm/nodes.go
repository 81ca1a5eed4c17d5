package orm

import (
	"context"

	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

// CreateNode creates the 'entity' node with the scalar values of the 'data'. If a node with the same key
// already exists it is updated with the 'data', unless the engine uses the strict create policy, in which
// case the creation fails with class.NodeConflict. A node created without the key gets one synthesized
// from its store identifier.
func (e *Engine) CreateNode(ctx context.Context, data mapping.Properties, entity *mapping.Entity) (mapping.Properties, error) {
	logger.Debug2f("create: '%s' node begins", entity.Name())
	props := withoutNulls(ScalarFilter(data))

	if err := e.ensureIndex(ctx, entity); err != nil {
		return nil, errors.Wrapf(class.NodeCreateFailed, err, "ensuring index of the collection: '%s'", entity.Collection())
	}
	index := repository.IndexOf(entity)

	key, hasKey := entity.KeyValue(props)
	if hasKey {
		existing, err := e.store.IndexLookup(ctx, index, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if e.options.CreatePolicy == config.CreateStrict {
				return nil, errors.NewDetf(class.NodeConflict, "%s: '%v' already exists", entity.Name(), key)
			}
			logger.Debug2f("create: '%s' node with key: '%v' already exists - updating", entity.Name(), key)
			return e.UpdateNode(ctx, data, entity)
		}
	} else if e.options.CreatePolicy == config.CreateStrict {
		return nil, errors.NewDetf(class.NodeValidation, "%s key field: '%s' is required", entity.Name(), entity.KeyField())
	}

	n, err := e.store.CreateNode(ctx, props)
	if err != nil {
		return nil, errors.Wrapf(class.NodeCreateFailed, err, "creating '%s' node", entity.Name())
	}
	if !hasKey {
		key = mapping.ParseKey(n.ID)
		props[entity.KeyField()] = key
		if err = e.store.SetNodeProperties(ctx, n.ID, props); err != nil {
			return nil, errors.Wrapf(class.NodeCreateFailed, err, "setting '%s' node key", entity.Name())
		}
	}
	if err = e.store.IndexAdd(ctx, index, key, n.ID); err != nil {
		return nil, errors.Wrapf(class.NodeCreateFailed, err, "indexing '%s' node", entity.Name())
	}

	stored, err := e.store.GetNode(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.NewDetf(class.NodeCreateFailed, "created '%s' node: '%v' not found", entity.Name(), key)
	}
	logger.Debug2f("create: '%s' node: '%v' finished", entity.Name(), key)
	return stored.Properties, nil
}

// UpdateNode updates the existing 'entity' node identified by the key within the 'data'.
// The scalar values are merged over the existing properties and the fields set to nil are removed.
// The node key is never changed.
func (e *Engine) UpdateNode(ctx context.Context, data mapping.Properties, entity *mapping.Entity) (mapping.Properties, error) {
	key, ok := entity.KeyValue(data)
	if !ok {
		return nil, errors.NewDetf(class.NodeNotFound, "%s key field: '%s' not provided", entity.Name(), entity.KeyField())
	}
	logger.Debug2f("update: '%s' node: '%v' begins", entity.Name(), key)

	existing, err := e.lookup(ctx, key, entity)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.NewDetf(class.NodeNotFound, "%s: '%v' not found", entity.Name(), key)
	}

	merged := existing.Properties.Copy()
	if merged == nil {
		merged = mapping.Properties{}
	}
	scalars := ScalarFilter(data)
	deletions := nullFields(scalars)
	for _, field := range deletions {
		delete(scalars, field)
		delete(merged, field)
	}
	for k, v := range scalars {
		merged[k] = v
	}
	merged[entity.KeyField()] = existing.Properties[entity.KeyField()]

	// Property deletions are executed one by one so that a failure leaves the preceding ones applied.
	for _, field := range deletions {
		if field == entity.KeyField() {
			continue
		}
		if err = e.store.DeleteNodeProperty(ctx, existing.ID, field); err != nil {
			return nil, err
		}
	}
	if err = e.store.SetNodeProperties(ctx, existing.ID, merged); err != nil {
		return nil, err
	}

	updated, err := e.store.GetNode(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.NewDetf(class.NodeNotFound, "%s: '%v' not found", entity.Name(), key)
	}
	logger.Debug2f("update: '%s' node: '%v' finished", entity.Name(), key)
	return updated.Properties, nil
}

// DeleteNode deletes the 'entity' node with the 'key' along with all its relationships.
// The relationships are deleted in a single batch. If the batch fails the node is left intact.
// Returns the properties of the deleted node.
func (e *Engine) DeleteNode(ctx context.Context, key interface{}, entity *mapping.Entity) (mapping.Properties, error) {
	logger.Debug2f("delete: '%s' node: '%v' begins", entity.Name(), key)
	n, err := e.lookup(ctx, key, entity)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.NewDetf(class.NodeNotFound, "%s: '%v' not found", entity.Name(), key)
	}

	rels, err := e.store.NodeRelationships(ctx, n.ID, mapping.DirectionAll)
	if err != nil {
		return nil, err
	}
	if len(rels) > 0 {
		batch := NewBatch(e.store)
		for _, rel := range rels {
			batch.DeleteRelationship(rel.ID)
		}
		if _, err = batch.Submit(ctx); err != nil {
			return nil, errors.Wrapf(class.NodeDeleteFailed, err, "deleting '%s' node: '%v' relationships", entity.Name(), key)
		}
		logger.Debug3f("delete: '%s' node: '%v' - deleted %d relationships", entity.Name(), key, len(rels))
	}

	if err = e.store.DeleteNode(ctx, n.ID); err != nil {
		return nil, errors.Wrapf(class.NodeDeleteFailed, err, "deleting '%s' node: '%v'", entity.Name(), key)
	}
	logger.Debug2f("delete: '%s' node: '%v' finished", entity.Name(), key)
	return n.Properties, nil
}
