package reason

import (
	"sort"

	"github.com/vietlaw/trafficqa/pkg/graph"
	"github.com/vietlaw/trafficqa/pkg/types"
)

// maxDepth bounds the chain walk. Behaviors sit at most two hops from any
// penalty, law or measure node by construction, so the walk always
// terminates; the visited set guards against a malformed corpus introducing
// a cycle inside the bound.
const maxDepth = 2

// chainEdges are the edge types a penalty-chain walk may follow.
var chainEdges = []types.EdgeType{
	types.LeadsToPenaltyEdge,
	types.BasedOnLawEdge,
	types.HasAdditionalEdge,
}

// requiredTypes maps each intent to the node types its reasoning path must
// reach to count as complete.
var requiredTypes = map[types.Intent][]types.NodeType{
	types.PenaltyInquiryIntent:     {types.PenaltyNodeType, types.AdditionalMeasureNodeType},
	types.LawReferenceIntent:       {types.LawArticleNodeType},
	types.AdditionalMeasuresIntent: {types.AdditionalMeasureNodeType},
	types.BehaviorCheckIntent:      {types.PenaltyNodeType, types.LawArticleNodeType},
	types.GeneralInfoIntent:        {types.PenaltyNodeType, types.LawArticleNodeType},
}

// Reasoner expands matched behavior candidates into reasoning paths over the
// knowledge graph.
type Reasoner struct {
	store *graph.Store
}

// NewReasoner creates a reasoner over the given store.
func NewReasoner(store *graph.Store) *Reasoner {
	return &Reasoner{store: store}
}

// RequiredTypes returns the node types the given intent targets.
func RequiredTypes(intent types.Intent) []types.NodeType {
	return requiredTypes[intent]
}

// BuildPath walks the penalty chain from a behavior node, depth-first,
// collecting the full chain (penalty, law articles, additional measures) and
// recording which of the intent's required node types were not reached.
func (r *Reasoner) BuildPath(behaviorID string, intent types.Intent) (*types.ReasoningPath, error) {
	behavior, err := r.store.GetNode(behaviorID)
	if err != nil {
		return nil, err
	}

	path := &types.ReasoningPath{
		BehaviorID: behaviorID,
		Nodes:      []*types.Node{behavior},
	}
	visited := map[string]bool{behaviorID: true}
	r.walk(behaviorID, 0, visited, path)

	reached := make(map[types.NodeType]bool, len(path.Nodes))
	for _, node := range path.Nodes {
		reached[node.Type] = true
	}
	for _, want := range requiredTypes[intent] {
		if !reached[want] {
			path.Missing = append(path.Missing, want)
		}
	}
	return path, nil
}

func (r *Reasoner) walk(id string, depth int, visited map[string]bool, path *types.ReasoningPath) {
	if depth >= maxDepth {
		return
	}
	for _, edgeType := range chainEdges {
		neighbors, err := r.store.Neighbors(id, edgeType, types.Outgoing)
		if err != nil {
			continue
		}
		for _, neighbor := range neighbors {
			if visited[neighbor.ID] {
				continue
			}
			visited[neighbor.ID] = true
			path.Nodes = append(path.Nodes, neighbor)
			r.walk(neighbor.ID, depth+1, visited, path)
		}
	}
}

// SimilarCases resolves the similar_to neighbor set of a behavior, ordered by
// descending similarity weight.
func (r *Reasoner) SimilarCases(behaviorID string, limit int) ([]types.SimilarCase, error) {
	similar, err := r.store.SimilarBehaviors(behaviorID, limit)
	if err != nil {
		return nil, err
	}

	cases := make([]types.SimilarCase, 0, len(similar))
	for _, wn := range similar {
		cases = append(cases, types.SimilarCase{
			BehaviorID:  wn.Node.ID,
			Description: wn.Node.Label,
			Category:    wn.Node.Category,
			Weight:      wn.Weight,
		})
	}
	return cases, nil
}

// PromoteVehicleMatches reorders candidates so that those whose
// applies_to_vehicle edges agree with an extracted vehicle entity come before
// equally-similar candidates that don't. The reorder is stable: relative
// order inside each group is preserved.
func (r *Reasoner) PromoteVehicleMatches(candidates []types.Candidate, vehicles []string) []types.Candidate {
	if len(vehicles) == 0 || len(candidates) == 0 {
		return candidates
	}

	want := make(map[string]bool, len(vehicles))
	for _, v := range vehicles {
		want[v] = true
	}

	promoted := make([]types.Candidate, len(candidates))
	copy(promoted, candidates)
	for i := range promoted {
		promoted[i].VehicleMatch = r.vehicleAgrees(promoted[i].BehaviorID, want)
	}

	sort.SliceStable(promoted, func(i, j int) bool {
		return promoted[i].VehicleMatch && !promoted[j].VehicleMatch
	})
	return promoted
}

func (r *Reasoner) vehicleAgrees(behaviorID string, want map[string]bool) bool {
	neighbors, err := r.store.Neighbors(behaviorID, types.AppliesToVehicleEdge, types.Outgoing)
	if err != nil {
		return false
	}
	for _, vehicle := range neighbors {
		if want[vehicle.Label] {
			return true
		}
	}
	return false
}
