package embedder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlaw/trafficqa/pkg/embedder"
)

func TestNewOpenAIEmbedder(t *testing.T) {
	tests := []struct {
		name      string
		config    embedder.Config
		wantModel string
	}{
		{
			name:      "defaults",
			config:    embedder.Config{},
			wantModel: "text-embedding-3-small",
		},
		{
			name:      "custom model",
			config:    embedder.Config{Model: "text-embedding-3-large", Dimensions: 3072},
			wantModel: "text-embedding-3-large",
		},
		{
			name:      "custom base URL",
			config:    embedder.Config{BaseURL: "https://api.example.com/v1"},
			wantModel: "text-embedding-3-small",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := embedder.NewOpenAIEmbedder("test-key", tt.config)
			require.NotNil(t, client)
			assert.Equal(t, tt.wantModel, client.Model())
			assert.Greater(t, client.Dimensions(), 0)
			assert.NoError(t, client.Close())
		})
	}
}

func TestClientInterface(t *testing.T) {
	var _ embedder.Client = (*embedder.OpenAIEmbedder)(nil)
	var _ embedder.Client = (*embedder.CircuitBreakerClient)(nil)
}

// flakyClient fails every call until healed.
type flakyClient struct {
	calls  int
	broken bool
}

func (f *flakyClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.broken {
		return nil, errors.New("backend down")
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (f *flakyClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.broken {
		return nil, errors.New("backend down")
	}
	return []float32{1, 0}, nil
}

func (f *flakyClient) Model() string   { return "flaky-v1" }
func (f *flakyClient) Dimensions() int { return 2 }
func (f *flakyClient) Close() error    { return nil }

func TestCircuitBreakerPassesThrough(t *testing.T) {
	inner := &flakyClient{}
	client := embedder.NewCircuitBreakerClient(inner, embedder.BreakerConfig{})

	vec, err := client.EmbedSingle(context.Background(), "vượt đèn đỏ")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)

	vecs, err := client.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)

	assert.Equal(t, "flaky-v1", client.Model())
	assert.Equal(t, 2, client.Dimensions())
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	inner := &flakyClient{broken: true}
	client := embedder.NewCircuitBreakerClient(inner, embedder.BreakerConfig{
		ReadyToTripRatio: 0.6,
	})

	// enough consecutive failures to trip the breaker
	for i := 0; i < 5; i++ {
		_, err := client.EmbedSingle(context.Background(), "x")
		require.Error(t, err)
	}

	callsBeforeOpen := inner.calls
	_, err := client.EmbedSingle(context.Background(), "x")
	require.Error(t, err)
	// the breaker is open: the backend is no longer called
	assert.Equal(t, callsBeforeOpen, inner.calls)
	assert.ErrorIs(t, err, embedder.ErrUnavailable)
}
