// Package search implements the semantic matcher: a cosine-similarity
// ranking of behavior nodes against query embeddings, with a keyword-overlap
// fallback for when the embedding capability is absent.
package search
