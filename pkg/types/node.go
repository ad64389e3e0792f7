package types

// NodeType identifies the variant of a knowledge graph node.
type NodeType string

const (
	// BehaviorNodeType represents one traffic-violation behavior description.
	BehaviorNodeType NodeType = "behavior"
	// PenaltyNodeType represents a monetary penalty range.
	PenaltyNodeType NodeType = "penalty"
	// LawArticleNodeType represents a legal citation (article + document).
	LawArticleNodeType NodeType = "law_article"
	// AdditionalMeasureNodeType represents a non-monetary sanction
	// (license suspension, vehicle impoundment, ...).
	AdditionalMeasureNodeType NodeType = "additional_measure"
	// VehicleTypeNodeType represents a vehicle category a behavior applies to.
	VehicleTypeNodeType NodeType = "vehicle_type"
	// ViolationContextNodeType represents the circumstances of a violation
	// (highway, school zone, ...).
	ViolationContextNodeType NodeType = "violation_context"
)

// Node is a typed node in the traffic-law knowledge graph. Variant-specific
// fields are populated according to Type and left zero otherwise.
type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`

	// Behavior-specific fields
	Category string   `json:"category,omitempty"`
	Severity string   `json:"severity,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	RecordID string   `json:"record_id,omitempty"`

	// Penalty-specific fields
	FineMin     int64  `json:"fine_min,omitempty"`
	FineMax     int64  `json:"fine_max,omitempty"`
	Currency    string `json:"currency,omitempty"`
	PenaltyText string `json:"penalty_text,omitempty"`

	// Law-article-specific fields
	Article        string `json:"article,omitempty"`
	DocumentSource string `json:"document_source,omitempty"`
}

// IsBehavior reports whether the node is a behavior node.
func (n *Node) IsBehavior() bool {
	return n.Type == BehaviorNodeType
}
