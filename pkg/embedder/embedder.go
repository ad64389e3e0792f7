package embedder

import (
	"context"
	"errors"
)

// ErrUnavailable marks a failure of the external embedding capability. The
// pipeline reports it to the caller instead of silently returning empty
// matches.
var ErrUnavailable = errors.New("embedding capability unavailable")

// Client is the embedding capability consumed by the semantic matcher.
// Corpus and query embeddings must come from the same model/version; mixing
// versions silently degrades score calibration.
type Client interface {
	// Embed generates embeddings for a batch of texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Model returns the model name/version producing the embeddings.
	Model() string

	// Dimensions returns the embedding vector length.
	Dimensions() int

	// Close releases any resources held by the client.
	Close() error
}

// Config holds embedding client configuration.
type Config struct {
	Model      string
	BaseURL    string
	Dimensions int
}
