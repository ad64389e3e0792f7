// Package trafficqa answers Vietnamese traffic-law questions over an
// in-memory knowledge graph built from a violations corpus.
//
// The pipeline normalizes the question, classifies its intent with an ordered
// rule table, extracts vehicle, speed, alcohol and keyword entities, matches
// behavior nodes by embedding cosine similarity, walks the penalty chain in
// the graph, and renders a structured answer with a discrete confidence
// level. When nothing clears the similarity threshold the engine refuses with
// a canonical "no data" answer instead of guessing.
//
// # Basic Usage
//
// Build the graph from a corpus, index it, and ask:
//
//	records, err := graph.LoadRecords("data/violations.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := graph.NewStore()
//	if err := store.Build(records); err != nil {
//		log.Fatal(err)
//	}
//
//	embConfig := embedder.Config{Model: "text-embedding-3-small"}
//	emb := embedder.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"), embConfig)
//
//	client, err := trafficqa.NewClient(store, emb, trafficqa.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Index(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	answer, err := client.Ask(ctx, "Vượt đèn đỏ phạt bao nhiêu tiền?")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(answer.Penalty.Text, answer.Confidence)
//
// # Degraded Mode
//
// If the embedding backend is unreachable the client falls back to keyword
// overlap matching and caps the answer confidence at low. Passing a nil
// embedding client to NewClient selects this mode permanently.
//
// # Concurrency
//
// The store and the semantic index are immutable after construction. Ask
// allocates a fresh query context per call, so a single Client serves
// concurrent requests without locking.
package trafficqa
