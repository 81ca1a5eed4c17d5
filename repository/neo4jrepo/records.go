package neo4jrepo

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

func firstNode(records []*neo4j.Record, key string) (*repository.Node, error) {
	if len(records) == 0 {
		return nil, nil
	}
	return nodeValue(records[0], key)
}

func nodeValue(record *neo4j.Record, key string) (*repository.Node, error) {
	v, ok := record.Get(key)
	if !ok {
		return nil, errors.NewDetf(class.StoreRemoteCall, "record has no: '%s' value", key)
	}
	n, ok := v.(neo4j.Node)
	if !ok {
		return nil, errors.NewDetf(class.StoreRemoteCall, "record value: '%s' is not a node: %T", key, v)
	}
	return convertNode(n), nil
}

func relationshipValue(record *neo4j.Record, key string) (*repository.Relationship, error) {
	v, ok := record.Get(key)
	if !ok {
		return nil, errors.NewDetf(class.StoreRemoteCall, "record has no: '%s' value", key)
	}
	rel, ok := v.(neo4j.Relationship)
	if !ok {
		return nil, errors.NewDetf(class.StoreRemoteCall, "record value: '%s' is not a relationship: %T", key, v)
	}
	return convertRelationship(rel), nil
}

// rowValues converts the pattern query records with the relationship 'r' and the far node 'e'.
func rowValues(records []*neo4j.Record) ([]repository.Row, error) {
	rows := make([]repository.Row, 0, len(records))
	for _, record := range records {
		rel, err := relationshipValue(record, "r")
		if err != nil {
			return nil, err
		}
		n, err := nodeValue(record, "e")
		if err != nil {
			return nil, err
		}
		rows = append(rows, repository.Row{Relationship: rel, Node: n})
	}
	return rows, nil
}

func countValue(records []*neo4j.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	v, ok := records[0].Get("count")
	if !ok {
		return 0, errors.NewDet(class.StoreRemoteCall, "record has no count value")
	}
	count, ok := v.(int64)
	if !ok {
		return 0, errors.NewDetf(class.StoreRemoteCall, "count value is not an integer: %T", v)
	}
	return count, nil
}

// expectOne checks if the 'count' of the affected entries equals one.
func expectOne(records []*neo4j.Record, kind, id string) error {
	count, err := countValue(records)
	if err != nil {
		return err
	}
	if count != 1 {
		return errors.NewDetf(class.StoreRemoteCall, "%s: '%s' not found", kind, id)
	}
	return nil
}

func convertNode(n neo4j.Node) *repository.Node {
	return &repository.Node{ID: n.ElementId, Properties: properties(n.Props)}
}

func convertRelationship(rel neo4j.Relationship) *repository.Relationship {
	return &repository.Relationship{
		ID:         rel.ElementId,
		Type:       rel.Type,
		StartID:    rel.StartElementId,
		EndID:      rel.EndElementId,
		Properties: properties(rel.Props),
	}
}

func properties(props map[string]any) mapping.Properties {
	p := make(mapping.Properties, len(props))
	for k, v := range props {
		p[k] = v
	}
	return p
}
