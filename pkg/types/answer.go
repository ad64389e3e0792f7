package types

import "time"

// Confidence is the discrete reliability level of an answer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	// ConfidenceNone marks the canonical "no data" refusal: no candidate
	// cleared the similarity threshold and no legal content is returned.
	ConfidenceNone Confidence = "none"
)

// Citation is one legal reference backing an answer.
type Citation struct {
	Article  string `json:"article"`
	Document string `json:"document"`
}

// PenaltyInfo is the rendered penalty of an answer.
type PenaltyInfo struct {
	FineMin  int64  `json:"fine_min"`
	FineMax  int64  `json:"fine_max"`
	Currency string `json:"currency"`
	Text     string `json:"text,omitempty"`
}

// Answer is the structured result returned to the caller. Presentation
// formatting (HTML/Markdown) belongs to the consumer; the core only fills
// this record.
type Answer struct {
	RequestID string `json:"request_id"`
	Question  string `json:"question"`

	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities,omitempty"`

	Behavior           string        `json:"behavior,omitempty"`
	Category           string        `json:"category,omitempty"`
	Penalty            *PenaltyInfo  `json:"penalty,omitempty"`
	AdditionalMeasures []string      `json:"additional_measures,omitempty"`
	Citations          []Citation    `json:"citations,omitempty"`
	SimilarCases       []SimilarCase `json:"similar_cases,omitempty"`

	Confidence Confidence `json:"confidence"`
	MatchScore float64    `json:"match_score"`

	// Message carries the canonical refusal text when Confidence is none.
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	ProcessingTime time.Duration `json:"processing_time"`
}

// HasData reports whether the answer carries legal content.
func (a *Answer) HasData() bool {
	return a.Confidence != ConfidenceNone
}
