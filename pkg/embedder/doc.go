// Package embedder defines the external embedding capability: the Client
// interface consumed by the semantic matcher, an OpenAI-compatible
// implementation and a circuit-breaker wrapper.
package embedder
