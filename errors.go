package trafficqa

import (
	"github.com/vietlaw/trafficqa/pkg/embedder"
	"github.com/vietlaw/trafficqa/pkg/graph"
)

// Re-exported sentinels so callers can match pipeline failures without
// importing the internal packages.
var (
	// ErrEmbeddingUnavailable marks a failed embedding call. The request
	// fails with this error instead of silently returning empty matches.
	ErrEmbeddingUnavailable = embedder.ErrUnavailable

	// ErrNodeNotFound marks a lookup of a nonexistent node ID. Should not
	// occur in normal query flow.
	ErrNodeNotFound = graph.ErrNotFound
)
