package trafficqa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vietlaw/trafficqa/pkg/answer"
	"github.com/vietlaw/trafficqa/pkg/embedder"
	"github.com/vietlaw/trafficqa/pkg/graph"
	"github.com/vietlaw/trafficqa/pkg/nlp"
	"github.com/vietlaw/trafficqa/pkg/reason"
	"github.com/vietlaw/trafficqa/pkg/search"
	"github.com/vietlaw/trafficqa/pkg/telemetry"
	"github.com/vietlaw/trafficqa/pkg/types"
)

// Client answers Vietnamese traffic-law questions over an in-memory knowledge
// graph. The graph and the semantic index are built once; after that Ask is
// safe for concurrent use. Each request gets its own query context, so
// concurrent questions never share mutable state.
type Client struct {
	store       *graph.Store
	matcher     *search.Matcher
	reasoner    *reason.Reasoner
	synthesizer *answer.Synthesizer
	config      *Config
	logger      *slog.Logger
	recorder    *telemetry.Recorder
	hasEmbedder bool
}

// Option configures optional client behavior.
type Option func(*Client)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRecorder attaches a telemetry recorder. Queries are logged after each
// answer is rendered.
func WithRecorder(recorder *telemetry.Recorder) Option {
	return func(c *Client) { c.recorder = recorder }
}

// NewClient creates a QA client over a built knowledge graph store. The
// embedding client may be nil, in which case matching runs in keyword-only
// fallback mode and confidence is capped at low.
func NewClient(store *graph.Store, emb embedder.Client, cfg *Config, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("new client: nil store")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	c := &Client{
		store:       store,
		reasoner:    reason.NewReasoner(store),
		synthesizer: answer.NewSynthesizer(cfg.thresholds()),
		config:      cfg,
		logger:      slog.Default(),
	}
	c.matcher = search.NewMatcher(store, emb, cfg.SimilarityThreshold)
	c.hasEmbedder = emb != nil
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Index embeds the behavior corpus. A failure here is not fatal: the client
// keeps answering through the keyword fallback until Index succeeds.
func (c *Client) Index(ctx context.Context) error {
	if !c.hasEmbedder {
		return fmt.Errorf("index: %w: no embedding client configured", embedder.ErrUnavailable)
	}
	if err := c.matcher.Index(ctx); err != nil {
		return err
	}
	c.logger.Info("behavior corpus indexed",
		"behaviors", len(c.store.BehaviorIDs()),
		"model", c.matcher.Model())
	return nil
}

// Stats returns node and edge counts of the underlying graph.
func (c *Client) Stats() graph.Stats {
	return c.store.Stats()
}

// SimilarCases returns behaviors similar to the given behavior node, ordered
// by descending similarity weight.
func (c *Client) SimilarCases(behaviorID string, limit int) ([]types.SimilarCase, error) {
	if limit <= 0 {
		limit = c.config.SimilarLimit
	}
	return c.reasoner.SimilarCases(behaviorID, limit)
}

// Ask runs the full pipeline for one question: normalize, detect intent,
// extract entities, match behaviors, reason over the graph, synthesize. An
// empty match set is a normal outcome and yields the no-data answer; only
// infrastructure failures (embedding calls) surface as errors.
func (c *Client) Ask(ctx context.Context, question string) (*types.Answer, error) {
	qc := &types.QueryContext{
		RequestID: uuid.New().String(),
		Query:     question,
		StartedAt: time.Now(),
	}

	qc.Normalized = nlp.Normalize(question)
	qc.Intent = nlp.DetectIntent(qc.Normalized)
	qc.Entities = nlp.ExtractEntities(qc.Normalized)

	if err := c.match(ctx, qc); err != nil {
		c.logger.Error("match failed", "request_id", qc.RequestID, "error", err)
		return nil, err
	}

	qc.Candidates = c.reasoner.PromoteVehicleMatches(qc.Candidates, nlp.Vehicles(qc.Entities))

	if len(qc.Candidates) > 0 {
		if err := c.reasonOver(qc); err != nil {
			return nil, err
		}
	}

	a := c.synthesizer.Render(qc)
	c.record(qc, a)

	c.logger.Info("question answered",
		"request_id", qc.RequestID,
		"intent", string(qc.Intent),
		"candidates", len(qc.Candidates),
		"confidence", string(a.Confidence),
		"duration", a.ProcessingTime)
	return a, nil
}

// match fills the candidate list, preferring the semantic index and falling
// back to keyword overlap when no index is available.
func (c *Client) match(ctx context.Context, qc *types.QueryContext) error {
	if c.matcher.Indexed() {
		candidates, err := c.matcher.Match(ctx, qc.Normalized, c.config.TopK)
		if err != nil {
			return fmt.Errorf("semantic match: %w", err)
		}
		qc.Candidates = candidates
		qc.EmbeddingModel = c.matcher.Model()
		return nil
	}

	qc.KeywordOnly = true
	qc.Candidates = c.matcher.MatchKeywords(fallbackKeywords(qc), c.config.TopK)
	return nil
}

// reasonOver expands every candidate into a reasoning path and, for
// similar_cases questions, resolves the similar-behavior neighborhood of the
// top candidate.
func (c *Client) reasonOver(qc *types.QueryContext) error {
	qc.Paths = make([]*types.ReasoningPath, 0, len(qc.Candidates))
	for _, cand := range qc.Candidates {
		path, err := c.reasoner.BuildPath(cand.BehaviorID, qc.Intent)
		if err != nil {
			return fmt.Errorf("reason over %s: %w", cand.BehaviorID, err)
		}
		qc.Paths = append(qc.Paths, path)
	}

	if qc.Intent == types.SimilarCasesIntent {
		similar, err := c.reasoner.SimilarCases(qc.Candidates[0].BehaviorID, c.config.SimilarLimit)
		if err != nil {
			return fmt.Errorf("similar cases for %s: %w", qc.Candidates[0].BehaviorID, err)
		}
		qc.Similar = similar
	}
	return nil
}

func (c *Client) record(qc *types.QueryContext, a *types.Answer) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(telemetry.QueryRecord{
		ID:           qc.RequestID,
		Query:        qc.Query,
		Intent:       string(qc.Intent),
		Confidence:   string(a.Confidence),
		MatchScore:   a.MatchScore,
		CandidateCnt: len(qc.Candidates),
		KeywordOnly:  qc.KeywordOnly,
		DurationMs:   a.ProcessingTime.Milliseconds(),
	})
}

// fallbackKeywords gathers lexical terms for keyword matching: extracted
// keyword entities first, then the remaining query words long enough to be
// meaningful.
func fallbackKeywords(qc *types.QueryContext) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(w string) {
		if len([]rune(w)) >= 3 && !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	for _, k := range nlp.Keywords(qc.Entities) {
		add(k)
	}
	for _, w := range strings.Fields(qc.Normalized) {
		add(w)
	}
	return keywords
}
