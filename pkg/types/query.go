package types

import "time"

// Intent classifies the purpose of a user question.
type Intent string

const (
	PenaltyInquiryIntent     Intent = "penalty_inquiry"
	LawReferenceIntent       Intent = "law_reference"
	BehaviorCheckIntent      Intent = "behavior_check"
	SimilarCasesIntent       Intent = "similar_cases"
	AdditionalMeasuresIntent Intent = "additional_measures"
	GeneralInfoIntent        Intent = "general_info"
)

// EntityKind identifies the kind of an extracted entity.
type EntityKind string

const (
	VehicleEntity EntityKind = "VEHICLE"
	SpeedEntity   EntityKind = "SPEED"
	AlcoholEntity EntityKind = "ALCOHOL"
	KeywordEntity EntityKind = "KEYWORD"
)

// Entity is one structured field pulled out of a query. Canonical holds the
// normalized value ("motorcycle" for "xe máy", a numeric string for speeds)
// and Position the byte offset of the first occurrence in the normalized text.
type Entity struct {
	Kind      EntityKind `json:"kind"`
	Text      string     `json:"text"`
	Canonical string     `json:"canonical"`
	Position  int        `json:"position"`
}

// Candidate is one semantically matched behavior node.
type Candidate struct {
	BehaviorID string  `json:"behavior_id"`
	Score      float64 `json:"score"`
	// VehicleMatch is set by the reasoner when an extracted VEHICLE entity
	// agrees with the candidate's applies_to_vehicle edges.
	VehicleMatch bool `json:"vehicle_match,omitempty"`
}

// ReasoningPath is the node chain from a behavior to the node types the
// detected intent requires. Missing lists the required types not reached.
type ReasoningPath struct {
	BehaviorID string     `json:"behavior_id"`
	Nodes      []*Node    `json:"nodes"`
	Missing    []NodeType `json:"missing,omitempty"`
}

// Complete reports whether every required node type was reached.
func (p *ReasoningPath) Complete() bool {
	return len(p.Missing) == 0
}

// QueryContext carries the per-request state through the pipeline. It is
// created for each incoming question and discarded after the answer is
// rendered; it is never shared across requests.
type QueryContext struct {
	RequestID      string
	Query          string
	Normalized     string
	Intent         Intent
	Entities       []Entity
	Candidates     []Candidate
	Paths          []*ReasoningPath
	Similar        []SimilarCase
	KeywordOnly    bool // semantic index unavailable, lexical fallback used
	StartedAt      time.Time
	EmbeddingModel string
}

// SimilarCase is one entry of a similar_cases answer.
type SimilarCase struct {
	BehaviorID  string  `json:"behavior_id"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Weight      float64 `json:"weight"`
}
