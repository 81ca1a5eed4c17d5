package neo4jrepo

import (
	"strings"

	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
)

// statement is the cypher query with its parameters.
type statement struct {
	query  string
	params map[string]any
}

// quote escapes the identifier - label, property or relationship type.
func quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func ensureIndexStatement(index repository.Index) statement {
	return statement{
		query: "CREATE INDEX IF NOT EXISTS FOR (n:" + quote(index.Collection) + ") ON (n." + quote(index.KeyField) + ")",
	}
}

func indexLookupStatement(index repository.Index, value interface{}) statement {
	return statement{
		query:  "MATCH (n:" + quote(index.Collection) + ") WHERE n." + quote(index.KeyField) + " = $value RETURN n LIMIT 1",
		params: map[string]any{"value": value},
	}
}

func indexAddStatement(index repository.Index, value interface{}, nodeID string) statement {
	return statement{
		query:  "MATCH (n) WHERE elementId(n) = $id SET n:" + quote(index.Collection) + ", n." + quote(index.KeyField) + " = $value RETURN n",
		params: map[string]any{"id": nodeID, "value": value},
	}
}

func createNodeStatement(props mapping.Properties) statement {
	return statement{
		query:  "CREATE (n) SET n = $props RETURN n",
		params: map[string]any{"props": map[string]any(props)},
	}
}

func getNodeStatement(id string) statement {
	return statement{
		query:  "MATCH (n) WHERE elementId(n) = $id RETURN n",
		params: map[string]any{"id": id},
	}
}

func deleteNodeStatement(id string) statement {
	return statement{
		query:  "MATCH (n) WHERE elementId(n) = $id DELETE n RETURN count(n) AS count",
		params: map[string]any{"id": id},
	}
}

func setNodePropertiesStatement(id string, props mapping.Properties) statement {
	return statement{
		query:  "MATCH (n) WHERE elementId(n) = $id SET n = $props RETURN count(n) AS count",
		params: map[string]any{"id": id, "props": map[string]any(props)},
	}
}

func deleteNodePropertyStatement(id, property string) statement {
	return statement{
		query:  "MATCH (n) WHERE elementId(n) = $id REMOVE n." + quote(property) + " RETURN count(n) AS count",
		params: map[string]any{"id": id},
	}
}

func nodeRelationshipsStatement(nodeID string, direction mapping.Direction, types []string) statement {
	query := "MATCH " + path("(n)", "r", "", direction, "(m)") + " WHERE elementId(n) = $id"
	params := map[string]any{"id": nodeID}
	if len(types) > 0 {
		query += " AND type(r) IN $types"
		params["types"] = types
	}
	return statement{query: query + " RETURN DISTINCT r ORDER BY elementId(r)", params: params}
}

func createRelationshipStatement(startID, endID, typ string, props mapping.Properties) statement {
	if props == nil {
		props = mapping.Properties{}
	}
	return statement{
		query: "MATCH (a) WHERE elementId(a) = $start MATCH (b) WHERE elementId(b) = $end " +
			"CREATE (a)-[r:" + quote(typ) + "]->(b) SET r = $props RETURN r",
		params: map[string]any{"start": startID, "end": endID, "props": map[string]any(props)},
	}
}

func setRelationshipPropertiesStatement(id string, props mapping.Properties) statement {
	return statement{
		query:  "MATCH ()-[r]->() WHERE elementId(r) = $id SET r = $props RETURN count(r) AS count",
		params: map[string]any{"id": id, "props": map[string]any(props)},
	}
}

func deleteRelationshipStatement(id string) statement {
	return statement{
		query:  "MATCH ()-[r]->() WHERE elementId(r) = $id DELETE r RETURN count(r) AS count",
		params: map[string]any{"id": id},
	}
}

// matchPattern renders the MATCH clause of the traversal pattern.
func matchPattern(p *repository.Pattern) (string, map[string]any) {
	end := "(e)"
	if p.End != nil {
		end = "(e:" + quote(p.End.Index.Collection) + ")"
	}
	query := "MATCH " + path("(s:"+quote(p.Start.Index.Collection)+")", "r", p.RelationshipType, p.Direction, end) +
		" WHERE s." + quote(p.Start.Index.KeyField) + " = $start"
	params := map[string]any{"start": p.Start.Value}
	if p.End != nil {
		query += " AND e." + quote(p.End.Index.KeyField) + " = $end"
		params["end"] = p.End.Value
	}
	return query, params
}

func queryStatement(p *repository.Pattern) statement {
	query, params := matchPattern(p)
	query += " RETURN r, e ORDER BY elementId(r)"
	if p.Skip > 0 {
		query += " SKIP $skip"
		params["skip"] = p.Skip
	}
	if p.Limit > 0 {
		query += " LIMIT $limit"
		params["limit"] = p.Limit
	}
	return statement{query: query, params: params}
}

func countStatement(p *repository.Pattern) statement {
	query, params := matchPattern(p)
	return statement{query: query + " RETURN count(r) AS count", params: params}
}

func batchStatement(op repository.BatchOperation) (statement, bool) {
	switch op.Method {
	case repository.MethodDeleteRelationship:
		return deleteRelationshipStatement(op.Target), true
	}
	return statement{}, false
}

// path renders the relationship pattern with the arrow shape of the direction.
func path(start, variable, typ string, direction mapping.Direction, end string) string {
	rel := "[" + variable
	if typ != "" {
		rel += ":" + quote(typ)
	}
	rel += "]"
	switch direction {
	case mapping.DirectionOut:
		return start + "-" + rel + "->" + end
	case mapping.DirectionIn:
		return start + "<-" + rel + "-" + end
	default:
		return start + "-" + rel + "-" + end
	}
}
