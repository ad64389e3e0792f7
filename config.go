package trafficqa

import "github.com/vietlaw/trafficqa/pkg/answer"

// Config holds the tunable parameters of the QA pipeline. The thresholds are
// empirically tuned; callers should treat them as configuration and pass the
// values their deployment was calibrated with.
type Config struct {
	// SimilarityThreshold is the minimum cosine similarity for a semantic
	// match to be considered valid. Scores exactly at the threshold pass.
	SimilarityThreshold float64

	// HighConfidence and MediumConfidence are the confidence cut-offs on the
	// top match score.
	HighConfidence   float64
	MediumConfidence float64

	// TopK bounds how many candidates the matcher returns and the reasoner
	// expands.
	TopK int

	// SimilarLimit bounds the similar-case list for similar_cases answers.
	SimilarLimit int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.6,
		HighConfidence:      0.8,
		MediumConfidence:    0.6,
		TopK:                5,
		SimilarLimit:        5,
	}
}

func (c *Config) thresholds() answer.Thresholds {
	return answer.Thresholds{High: c.HighConfidence, Medium: c.MediumConfidence}
}
