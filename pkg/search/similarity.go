package search

import (
	"math"
	"strings"
)

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// keywordOverlap scores how much of either keyword set is shared, relative to
// the larger set.
func keywordOverlap(query, node []string) float64 {
	if len(query) == 0 || len(node) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(node))
	for _, kw := range node {
		seen[strings.ToLower(kw)] = true
	}
	shared := 0
	for _, kw := range query {
		if seen[strings.ToLower(kw)] {
			shared++
		}
	}

	larger := len(query)
	if len(node) > larger {
		larger = len(node)
	}
	return float64(shared) / float64(larger)
}
