// Package graph implements the knowledge graph store: an immutable in-memory
// arena of typed nodes and adjacency lists built once from the violation
// corpus, with neighbor, similarity and keyword lookups, a tolerant corpus
// loader, and an optional Neo4j bulk-load path.
package graph
