package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/vietlaw/trafficqa/pkg/embedder"
	"github.com/vietlaw/trafficqa/pkg/graph"
	"github.com/vietlaw/trafficqa/pkg/types"
)

// Matcher ranks behavior nodes by semantic similarity to a query. The corpus
// index is built once from the store's behavior texts and is immutable
// afterwards, so Match is safe for concurrent use.
type Matcher struct {
	store    *graph.Store
	embedder embedder.Client

	// threshold is the minimum cosine similarity for a match to count.
	// A score exactly equal to the threshold is included.
	threshold float64

	ids     []string    // behavior IDs, insertion order
	vectors [][]float32 // corpus embeddings, aligned with ids
	model   string
}

// NewMatcher creates a matcher over the given store and embedding client.
func NewMatcher(store *graph.Store, client embedder.Client, threshold float64) *Matcher {
	return &Matcher{
		store:     store,
		embedder:  client,
		threshold: threshold,
	}
}

// Index embeds every behavior node's text in one batch. Must be called once
// before Match; query-time embeddings then come from the same model that
// produced the corpus vectors.
func (m *Matcher) Index(ctx context.Context) error {
	ids := m.store.BehaviorIDs()
	texts := make([]string, len(ids))
	for i, id := range ids {
		text, err := m.store.BehaviorText(id)
		if err != nil {
			return err
		}
		texts[i] = text
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("index behavior corpus: %w", err)
	}

	m.ids = ids
	m.vectors = vectors
	m.model = m.embedder.Model()
	return nil
}

// Indexed reports whether the corpus index has been built.
func (m *Matcher) Indexed() bool {
	return len(m.vectors) > 0
}

// Model returns the model name/version that produced the corpus embeddings.
func (m *Matcher) Model() string {
	return m.model
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match embeds the (preprocessed) query and returns up to topK behavior
// candidates with cosine similarity at or above the threshold, descending,
// ties broken by behavior ID ascending. An empty result is a normal outcome,
// not an error: it drives the "no data" answer path.
func (m *Matcher) Match(ctx context.Context, query string, topK int) ([]types.Candidate, error) {
	if !m.Indexed() {
		return nil, fmt.Errorf("match: %w: corpus index not built", embedder.ErrUnavailable)
	}

	queryVector, err := m.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(m.ids))
	for i, id := range m.ids {
		score := cosineSimilarity(queryVector, m.vectors[i])
		if score >= m.threshold {
			candidates = append(candidates, types.Candidate{BehaviorID: id, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].BehaviorID < candidates[j].BehaviorID
	})

	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates, nil
}

// MatchKeywords is the lexical fallback ranking used when the semantic index
// could not be built. Scores are keyword-overlap ratios, not cosine
// similarities; callers must cap the resulting confidence accordingly.
func (m *Matcher) MatchKeywords(keywords []string, topK int) []types.Candidate {
	if len(keywords) == 0 {
		return nil
	}

	matched := m.store.FindNodesByKeywords(keywords)
	candidates := make([]types.Candidate, 0, len(matched))
	for _, node := range matched {
		score := keywordOverlap(keywords, node.Keywords)
		if score > 0 {
			candidates = append(candidates, types.Candidate{BehaviorID: node.ID, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].BehaviorID < candidates[j].BehaviorID
	})

	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}
