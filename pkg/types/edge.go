package types

// EdgeType identifies the variant of a knowledge graph edge.
type EdgeType string

const (
	// LeadsToPenaltyEdge connects a behavior to its penalty.
	LeadsToPenaltyEdge EdgeType = "leads_to_penalty"
	// BasedOnLawEdge connects a penalty to the article it is grounded in.
	BasedOnLawEdge EdgeType = "based_on_law"
	// HasAdditionalEdge connects a penalty to an additional measure.
	HasAdditionalEdge EdgeType = "has_additional"
	// AppliesToVehicleEdge connects a behavior to a vehicle category.
	AppliesToVehicleEdge EdgeType = "applies_to_vehicle"
	// InContextEdge connects a behavior to a violation context.
	InContextEdge EdgeType = "in_context"
	// SimilarToEdge connects two behaviors with a precomputed similarity
	// weight. Always present in both directions with equal weight.
	SimilarToEdge EdgeType = "similar_to"
)

// Direction selects which adjacency to follow from a node.
type Direction int

const (
	// Outgoing follows edges whose source is the given node.
	Outgoing Direction = iota
	// Incoming follows edges whose target is the given node.
	Incoming
)

// Edge is a directed, typed edge between two nodes. Weight is meaningful only
// for SimilarToEdge; every other edge type carries weight 1.
type Edge struct {
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
	Type     EdgeType `json:"type"`
	Weight   float64  `json:"weight"`
}
