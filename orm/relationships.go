package orm

import (
	"context"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

// RelationshipField is the name of the related node field that contains the traversed relationship properties.
const RelationshipField = "relationship"

// Page defines the related nodes range. Zero limit means no limit.
type Page struct {
	Skip  int
	Limit int
}

// Related is the result of the related nodes query.
type Related struct {
	Data  []mapping.Properties
	Count int64
}

// Connected is the result of the relationship creation.
type Connected struct {
	// Node is the far side node properties.
	Node mapping.Properties
	// Relationship is the created or updated relationship properties.
	Relationship mapping.Properties
}

// GetRelatedNodes gets the nodes related to the 'entity' node with the 'key' by the relationship
// with 'relationshipName'. The page of nodes and the count of all related nodes are read together.
// Each node with the traversed relationship having properties gets them in the RelationshipField.
func (e *Engine) GetRelatedNodes(ctx context.Context, key interface{}, entity *mapping.Entity, relationshipName string, page Page) (*Related, error) {
	slot, err := e.resolver.Resolve(entity, relationshipName)
	if err != nil {
		return nil, err
	}
	if err = e.ensureIndex(ctx, entity); err != nil {
		return nil, err
	}
	pattern := &repository.Pattern{
		Start:            repository.Anchor{Index: repository.IndexOf(entity), Value: key},
		RelationshipType: slot.RelationshipName,
		Direction:        slot.Direction,
		Skip:             page.Skip,
		Limit:            page.Limit,
	}

	rowsPage, err := e.store.QueryPage(ctx, pattern)
	if err != nil {
		return nil, err
	}

	related := &Related{Data: make([]mapping.Properties, 0, len(rowsPage.Rows)), Count: rowsPage.Count}
	for _, row := range rowsPage.Rows {
		props := row.Node.Properties.Copy()
		if props == nil {
			props = mapping.Properties{}
		}
		if len(row.Relationship.Properties) > 0 {
			props[RelationshipField] = row.Relationship.Properties
		}
		related.Data = append(related.Data, props)
	}
	logger.Debug3f("related: '%s' node: '%v' %s - %d of %d", entity.Name(), key, relationshipName, len(related.Data), rowsPage.Count)
	return related, nil
}

// CreateRelationship connects the 'startEntity' node with the 'startKey' and the 'endEntity' node
// identified by the key within the 'endData'. The end node is created if it doesn't exist.
// If the relationship already exists its properties are updated with the 'relationshipData', which then
// must not be empty.
func (e *Engine) CreateRelationship(ctx context.Context, startEntity *mapping.Entity, startKey interface{}, endEntity *mapping.Entity, endData, relationshipData mapping.Properties, relationshipName string) (*Connected, error) {
	slot, err := e.resolver.Resolve(startEntity, relationshipName)
	if err != nil {
		return nil, err
	}
	if endEntity == nil {
		endEntity = slot.Target
	} else if endEntity != slot.Target {
		return nil, errors.NewDetf(class.SchemaUnknown, "relationship: '%s' of '%s' doesn't lead to the entity: '%s'", relationshipName, startEntity.Name(), endEntity.Name())
	}
	logger.Debug2f("connect: '%s' node: '%v' %s begins", startEntity.Name(), startKey, relationshipName)

	start, err := e.lookup(ctx, startKey, startEntity)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, errors.NewDetf(class.ConnectionStartMissing, "%s: '%v' not found", startEntity.Name(), startKey)
	}

	end, err := e.resolveEnd(ctx, endEntity, endData)
	if err != nil {
		return nil, err
	}

	rels, err := e.store.NodeRelationships(ctx, start.ID, slot.Direction, slot.RelationshipName)
	if err != nil {
		return nil, err
	}
	var existing *repository.Relationship
	for _, rel := range rels {
		if connects(rel, start.ID, end.ID, slot.Direction) {
			existing = rel
			break
		}
	}

	relProps := withoutNulls(ScalarFilter(relationshipData))
	if existing == nil {
		startID, endID := start.ID, end.ID
		if slot.Direction == mapping.DirectionIn {
			startID, endID = endID, startID
		}
		rel, err := e.store.CreateRelationship(ctx, startID, endID, slot.RelationshipName, relProps)
		if err != nil {
			return nil, err
		}
		logger.Debug2f("connect: '%s' node: '%v' %s - relationship created", startEntity.Name(), startKey, relationshipName)
		return &Connected{Node: end.Properties, Relationship: rel.Properties}, nil
	}

	if len(relProps) == 0 {
		return nil, errors.NewDetf(class.ConnectionUpdateNoProperties, "relationship: '%s' already exists and no properties to update were provided", relationshipName)
	}
	merged := existing.Properties.Copy()
	if merged == nil {
		merged = mapping.Properties{}
	}
	for k, v := range relProps {
		merged[k] = v
	}
	if err = e.store.SetRelationshipProperties(ctx, existing.ID, merged); err != nil {
		return nil, err
	}
	logger.Debug2f("connect: '%s' node: '%v' %s - relationship updated", startEntity.Name(), startKey, relationshipName)
	return &Connected{Node: end.Properties, Relationship: merged}, nil
}

// resolveEnd gets the end node of the connection, creating it if it doesn't exist.
func (e *Engine) resolveEnd(ctx context.Context, endEntity *mapping.Entity, endData mapping.Properties) (*repository.Node, error) {
	key, hasKey := endEntity.KeyValue(endData)
	if hasKey {
		end, err := e.lookup(ctx, key, endEntity)
		if err != nil || end != nil {
			return end, err
		}
	}
	created, err := e.CreateNode(ctx, endData, endEntity)
	if err != nil {
		return nil, errors.Wrapf(class.ConnectionCreateFailed, err, "creating '%s' end node", endEntity.Name())
	}
	key = created[endEntity.KeyField()]
	end, err := e.lookup(ctx, key, endEntity)
	if err != nil {
		return nil, err
	}
	if end == nil {
		return nil, errors.NewDetf(class.ConnectionCreateFailed, "created '%s' end node: '%v' not found", endEntity.Name(), key)
	}
	return end, nil
}

// connects checks if the relationship resolved from the start node links the start and end nodes.
func connects(rel *repository.Relationship, startID, endID string, direction mapping.Direction) bool {
	switch direction {
	case mapping.DirectionOut:
		return rel.StartID == startID && rel.EndID == endID
	case mapping.DirectionIn:
		return rel.StartID == endID && rel.EndID == startID
	default:
		return (rel.StartID == startID && rel.EndID == endID) || (rel.StartID == endID && rel.EndID == startID)
	}
}

// DeleteRelationship deletes the relationship with 'relationshipName' between the 'startEntity' node with
// the 'startKey' and the 'endEntity' node with the 'endKey'.
func (e *Engine) DeleteRelationship(ctx context.Context, startEntity *mapping.Entity, startKey interface{}, endEntity *mapping.Entity, endKey interface{}, relationshipName string) error {
	slot, err := e.resolver.Resolve(startEntity, relationshipName)
	if err != nil {
		return err
	}
	if endEntity == nil {
		endEntity = slot.Target
	}
	if err = e.ensureIndex(ctx, startEntity); err != nil {
		return err
	}
	if err = e.ensureIndex(ctx, endEntity); err != nil {
		return err
	}
	rows, err := e.store.Query(ctx, &repository.Pattern{
		Start:            repository.Anchor{Index: repository.IndexOf(startEntity), Value: startKey},
		End:              &repository.Anchor{Index: repository.IndexOf(endEntity), Value: endKey},
		RelationshipType: slot.RelationshipName,
		Direction:        slot.Direction,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NewDetf(class.ConnectionDeleteNotFound, "relationship: '%s' between %s: '%v' and %s: '%v' not found", relationshipName, startEntity.Name(), startKey, endEntity.Name(), endKey)
	}
	if len(rows) == 1 {
		return e.store.DeleteRelationship(ctx, rows[0].Relationship.ID)
	}
	batch := NewBatch(e.store)
	for _, row := range rows {
		batch.DeleteRelationship(row.Relationship.ID)
	}
	if _, err = batch.Submit(ctx); err != nil {
		return errors.Wrapf(class.ConnectionDeleteFailed, err, "deleting %d '%s' relationships", len(rows), relationshipName)
	}
	return nil
}
