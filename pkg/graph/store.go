package graph

import (
	"fmt"
	"sort"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// Store is the in-memory knowledge graph: an arena of nodes indexed by ID
// plus adjacency lists keyed by (node ID, edge type). It is populated once by
// Build and read-only afterwards, so concurrent readers need no locking.
type Store struct {
	nodes map[string]*types.Node
	order []string // node IDs in insertion order

	out map[string]map[types.EdgeType][]string
	in  map[string]map[types.EdgeType][]string

	// similarity weights between behavior nodes, symmetric by construction
	simWeights map[string]map[string]float64

	edgeCount int
	built     bool
}

// NewStore creates an empty store. Call Build before serving queries.
func NewStore() *Store {
	return &Store{
		nodes:      make(map[string]*types.Node),
		out:        make(map[string]map[types.EdgeType][]string),
		in:         make(map[string]map[types.EdgeType][]string),
		simWeights: make(map[string]map[string]float64),
	}
}

// GetNode returns the node with the given ID or ErrNotFound.
func (s *Store) GetNode(id string) (*types.Node, error) {
	node, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("get node %q: %w", id, ErrNotFound)
	}
	return node, nil
}

// Neighbors returns the nodes connected to id by edges of the given type, in
// the insertion order established at construction time.
func (s *Store) Neighbors(id string, edgeType types.EdgeType, dir types.Direction) ([]*types.Node, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("neighbors of %q: %w", id, ErrNotFound)
	}

	adj := s.out
	if dir == types.Incoming {
		adj = s.in
	}

	ids := adj[id][edgeType]
	neighbors := make([]*types.Node, 0, len(ids))
	for _, nid := range ids {
		neighbors = append(neighbors, s.nodes[nid])
	}
	return neighbors, nil
}

// WeightedNode pairs a node with its similarity weight.
type WeightedNode struct {
	Node   *types.Node
	Weight float64
}

// SimilarBehaviors returns up to limit behaviors connected to id by
// similar_to edges, sorted by descending weight with ties broken by
// ascending node ID.
func (s *Store) SimilarBehaviors(id string, limit int) ([]WeightedNode, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, fmt.Errorf("similar behaviors of %q: %w", id, ErrNotFound)
	}

	weights := s.simWeights[id]
	similar := make([]WeightedNode, 0, len(weights))
	for nid, w := range weights {
		similar = append(similar, WeightedNode{Node: s.nodes[nid], Weight: w})
	}

	sort.Slice(similar, func(i, j int) bool {
		if similar[i].Weight != similar[j].Weight {
			return similar[i].Weight > similar[j].Weight
		}
		return similar[i].Node.ID < similar[j].Node.ID
	})

	if limit > 0 && len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// SimilarityWeight returns the similar_to weight between two behaviors and
// whether the edge exists.
func (s *Store) SimilarityWeight(a, b string) (float64, bool) {
	w, ok := s.simWeights[a][b]
	return w, ok
}

// BehaviorIDs returns the IDs of all behavior nodes in insertion order.
func (s *Store) BehaviorIDs() []string {
	ids := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if s.nodes[id].Type == types.BehaviorNodeType {
			ids = append(ids, id)
		}
	}
	return ids
}

// BehaviorText returns the text a behavior node is embedded under: the label
// followed by its keywords. The corpus index and query-time scoring must use
// the same composition.
func (s *Store) BehaviorText(id string) (string, error) {
	node, err := s.GetNode(id)
	if err != nil {
		return "", err
	}
	text := node.Label
	for _, kw := range node.Keywords {
		text += " " + kw
	}
	return text, nil
}

// FindNodesByKeywords returns behavior nodes whose keyword set intersects the
// given keywords, in insertion order. Used as the lexical fallback when the
// semantic index is unavailable.
func (s *Store) FindNodesByKeywords(keywords []string) []*types.Node {
	want := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		want[canonicalText(kw)] = true
	}

	var matched []*types.Node
	for _, id := range s.order {
		node := s.nodes[id]
		if node.Type != types.BehaviorNodeType {
			continue
		}
		for _, kw := range node.Keywords {
			if want[canonicalText(kw)] {
				matched = append(matched, node)
				break
			}
		}
	}
	return matched
}

// Edges returns every edge in the graph, including both directions of
// similar_to pairs. Intended for bulk export.
func (s *Store) Edges() []types.Edge {
	var edges []types.Edge
	for _, src := range s.order {
		for edgeType, targets := range s.out[src] {
			for _, dst := range targets {
				weight := 1.0
				if edgeType == types.SimilarToEdge {
					weight = s.simWeights[src][dst]
				}
				edges = append(edges, types.Edge{
					SourceID: src,
					TargetID: dst,
					Type:     edgeType,
					Weight:   weight,
				})
			}
		}
	}
	return edges
}

// Stats summarizes the graph contents.
type Stats struct {
	TotalNodes  int                    `json:"total_nodes"`
	TotalEdges  int                    `json:"total_edges"`
	NodesByType map[types.NodeType]int `json:"nodes_by_type"`
	EdgesByType map[types.EdgeType]int `json:"edges_by_type"`
}

// Stats returns node and edge counts per type.
func (s *Store) Stats() Stats {
	stats := Stats{
		TotalNodes:  len(s.nodes),
		TotalEdges:  s.edgeCount,
		NodesByType: make(map[types.NodeType]int),
		EdgesByType: make(map[types.EdgeType]int),
	}
	for _, node := range s.nodes {
		stats.NodesByType[node.Type]++
	}
	for _, adjacency := range s.out {
		for edgeType, targets := range adjacency {
			stats.EdgesByType[edgeType] += len(targets)
		}
	}
	return stats
}

// addNode inserts a node, preserving insertion order. Returns the existing
// node when the ID is already present (shared, deduplicated nodes).
func (s *Store) addNode(node *types.Node) *types.Node {
	if existing, ok := s.nodes[node.ID]; ok {
		return existing
	}
	s.nodes[node.ID] = node
	s.order = append(s.order, node.ID)
	return node
}

// addEdge appends a directed edge to both adjacency maps. Endpoints must
// already exist.
func (s *Store) addEdge(src, dst string, edgeType types.EdgeType) {
	if s.out[src] == nil {
		s.out[src] = make(map[types.EdgeType][]string)
	}
	if s.in[dst] == nil {
		s.in[dst] = make(map[types.EdgeType][]string)
	}
	s.out[src][edgeType] = append(s.out[src][edgeType], dst)
	s.in[dst][edgeType] = append(s.in[dst][edgeType], src)
	s.edgeCount++
}
