package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// Neo4jLoader bulk-loads a built graph into Neo4j and reads neighbor sets
// back. The in-memory store stays the system of record; Neo4j is the optional
// persistence capability behind it.
type Neo4jLoader struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jLoader connects to a Neo4j instance.
func NewNeo4jLoader(uri, username, password, database string) (*Neo4jLoader, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Neo4jLoader{client: client, database: database}, nil
}

// Close releases the underlying driver.
func (l *Neo4jLoader) Close(ctx context.Context) error {
	return l.client.Close(ctx)
}

// BulkLoad MERGEs every node and edge of the store into Neo4j. Loading the
// same graph twice leaves the database unchanged.
func (l *Neo4jLoader) BulkLoad(ctx context.Context, store *Store) error {
	session := l.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: l.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, id := range store.order {
			node := store.nodes[id]
			query := `
				MERGE (n:Node {id: $id})
				SET n.type = $type, n.label = $label, n.category = $category,
				    n.fine_min = $fine_min, n.fine_max = $fine_max,
				    n.currency = $currency, n.article = $article,
				    n.document_source = $document_source
			`
			if _, err := tx.Run(ctx, query, map[string]any{
				"id":              node.ID,
				"type":            string(node.Type),
				"label":           node.Label,
				"category":        node.Category,
				"fine_min":        node.FineMin,
				"fine_max":        node.FineMax,
				"currency":        node.Currency,
				"article":         node.Article,
				"document_source": node.DocumentSource,
			}); err != nil {
				return nil, err
			}
		}

		for _, edge := range store.Edges() {
			query := `
				MATCH (a:Node {id: $source}), (b:Node {id: $target})
				MERGE (a)-[r:REL {type: $type}]->(b)
				SET r.weight = $weight
			`
			if _, err := tx.Run(ctx, query, map[string]any{
				"source": edge.SourceID,
				"target": edge.TargetID,
				"type":   string(edge.Type),
				"weight": edge.Weight,
			}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("bulk load graph: %w", err)
	}
	return nil
}

// NeighborIDs reads back the neighbor set of a node by (id, edge type,
// direction) from Neo4j.
func (l *Neo4jLoader) NeighborIDs(ctx context.Context, id string, edgeType types.EdgeType, dir types.Direction) ([]string, error) {
	session := l.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: l.database})
	defer session.Close(ctx)

	pattern := `(n:Node {id: $id})-[r:REL {type: $type}]->(m:Node)`
	if dir == types.Incoming {
		pattern = `(m:Node)-[r:REL {type: $type}]->(n:Node {id: $id})`
	}
	query := fmt.Sprintf(`MATCH %s RETURN m.id AS id`, pattern)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"id":   id,
			"type": string(edgeType),
		})
		if err != nil {
			return nil, err
		}

		var ids []string
		for res.Next(ctx) {
			if value, ok := res.Record().Get("id"); ok {
				if s, ok := value.(string); ok {
					ids = append(ids, s)
				}
			}
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neighbor ids of %q: %w", id, err)
	}
	return result.([]string), nil
}
